package infra_postgres_session

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	"github.com/krishkpatil/getflix/internal/model"
	usecase_session "github.com/krishkpatil/getflix/internal/usecase/session"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

// JSONB columns travel as text, pq would encode []byte as bytea.
type sessionDTO struct {
	ID           string         `db:"id"`
	CreatedBy    string         `db:"created_by"`
	CreatedAt    time.Time      `db:"created_at"`
	Movies       string         `db:"movies"`
	Filters      string         `db:"filters"`
	Participants pq.StringArray `db:"participants"`
	Status       string         `db:"status"`
}

type swipesDTO struct {
	Swipes      string       `db:"swipes"`
	CompletedAt sql.NullTime `db:"completed_at"`
}

func (d *Driver) CreateSession(ctx context.Context, session model.MatchSession) error {
	movies, err := json.Marshal(session.Movies)
	if err != nil {
		return err
	}
	filters, err := json.Marshal(session.Filters)
	if err != nil {
		return err
	}

	dto := sessionDTO{
		ID:           session.ID,
		CreatedBy:    session.CreatedBy,
		CreatedAt:    session.CreatedAt.UTC(),
		Movies:       string(movies),
		Filters:      string(filters),
		Participants: pq.StringArray(session.Participants),
		Status:       string(session.Status),
	}

	query := `
		INSERT INTO sessions (id, created_by, created_at, movies, filters, participants, status)
		VALUES (:id, :created_by, :created_at, :movies, :filters, :participants, :status)
	`

	if _, err := d.db.NamedExecContext(ctx, query, dto); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return usecase_session.ErrIDConflict
		}
		return err
	}
	return nil
}

func (d *Driver) GetSession(ctx context.Context, id model.SessionID) (model.MatchSession, error) {
	var dto sessionDTO

	query := `
		SELECT id, created_by, created_at, movies, filters, participants, status
		FROM sessions
		WHERE id = $1
	`

	if err := d.db.GetContext(ctx, &dto, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MatchSession{}, usecase_session.ErrResourceNotFound
		}
		return model.MatchSession{}, err
	}

	session := model.MatchSession{
		ID:           dto.ID,
		CreatedBy:    dto.CreatedBy,
		CreatedAt:    dto.CreatedAt,
		Participants: []model.ParticipantID(dto.Participants),
		Status:       model.SessionStatus(dto.Status),
	}
	if err := json.Unmarshal([]byte(dto.Movies), &session.Movies); err != nil {
		return model.MatchSession{}, err
	}
	if err := json.Unmarshal([]byte(dto.Filters), &session.Filters); err != nil {
		return model.MatchSession{}, err
	}
	return session, nil
}

func (d *Driver) AddParticipant(ctx context.Context, id model.SessionID, participantID model.ParticipantID) error {
	query := `
		UPDATE sessions
		SET participants = CASE
			WHEN $2 = ANY(participants) THEN participants
			ELSE array_append(participants, $2)
		END
		WHERE id = $1
	`

	return d.execOne(ctx, query, id, participantID)
}

func (d *Driver) RecordSwipe(
	ctx context.Context,
	sessionID model.SessionID,
	participantID model.ParticipantID,
	movieID model.MovieID,
	action model.SwipeAction,
) error {
	query := `
		INSERT INTO swipes (session_id, participant_id, swipes)
		VALUES ($1, $2, jsonb_build_object($3::text, $4::text))
		ON CONFLICT (session_id, participant_id)
		DO UPDATE SET swipes = swipes.swipes || EXCLUDED.swipes
	`

	_, err := d.db.ExecContext(ctx, query, sessionID, participantID, strconv.FormatInt(movieID, 10), string(action))
	return err
}

func (d *Driver) GetUserSwipes(ctx context.Context, sessionID model.SessionID, participantID model.ParticipantID) (model.UserSwipes, error) {
	var dto swipesDTO

	query := `
		SELECT swipes, completed_at
		FROM swipes
		WHERE session_id = $1 AND participant_id = $2
	`

	if err := d.db.GetContext(ctx, &dto, query, sessionID, participantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserSwipes{}, usecase_session.ErrResourceNotFound
		}
		return model.UserSwipes{}, err
	}

	var raw map[string]model.SwipeAction
	if err := json.Unmarshal([]byte(dto.Swipes), &raw); err != nil {
		return model.UserSwipes{}, err
	}
	swipes := make(model.Swipes, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return model.UserSwipes{}, err
		}
		swipes[id] = v
	}

	res := model.UserSwipes{
		SessionID:     sessionID,
		ParticipantID: participantID,
		Swipes:        swipes,
	}
	if dto.CompletedAt.Valid {
		at := dto.CompletedAt.Time
		res.CompletedAt = &at
	}
	return res, nil
}

func (d *Driver) MarkCompleted(ctx context.Context, sessionID model.SessionID, participantID model.ParticipantID, at time.Time) error {
	query := `
		UPDATE swipes
		SET completed_at = $3
		WHERE session_id = $1 AND participant_id = $2
	`

	return d.execOne(ctx, query, sessionID, participantID, at.UTC())
}

func (d *Driver) SetStatus(ctx context.Context, id model.SessionID, status model.SessionStatus) error {
	query := `
		UPDATE sessions
		SET status = $2
		WHERE id = $1
	`

	return d.execOne(ctx, query, id, string(status))
}

// Swipes go away with their session through ON DELETE CASCADE.
func (d *Driver) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE created_at < $1
	`

	result, err := d.db.ExecContext(ctx, query, before.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (d *Driver) execOne(ctx context.Context, query string, args ...any) error {
	result, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_session.ErrResourceNotFound
	}

	return nil
}
