package infra_mongo_session

import (
	"context"
	"errors"
	"strconv"
	"time"

	infra_mongo_init "github.com/krishkpatil/getflix/internal/infra/mongo/init"
	"github.com/krishkpatil/getflix/internal/model"
	usecase_session "github.com/krishkpatil/getflix/internal/usecase/session"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Driver struct {
	sessions *mongo.Collection
	swipes   *mongo.Collection
}

func New(db *mongo.Database) *Driver {
	return &Driver{
		sessions: db.Collection(infra_mongo_init.SessionsCollection),
		swipes:   db.Collection(infra_mongo_init.SwipesCollection),
	}
}

type sessionDoc struct {
	ID           string               `bson:"_id"`
	CreatedBy    string               `bson:"created_by"`
	CreatedAt    time.Time            `bson:"created_at"`
	Movies       []model.Movie        `bson:"movies"`
	Filters      model.SessionFilters `bson:"filters"`
	Participants []string             `bson:"participants"`
	Status       string               `bson:"status"`
}

// Swipes are keyed by the decimal movie id since document keys must be strings.
type swipesDoc struct {
	ID            string            `bson:"_id"`
	SessionID     string            `bson:"session_id"`
	ParticipantID string            `bson:"participant_id"`
	Swipes        map[string]string `bson:"swipes"`
	CompletedAt   *time.Time        `bson:"completed_at,omitempty"`
}

func (d *Driver) CreateSession(ctx context.Context, session model.MatchSession) error {
	doc := sessionDoc{
		ID:           session.ID,
		CreatedBy:    session.CreatedBy,
		CreatedAt:    session.CreatedAt.UTC(),
		Movies:       session.Movies,
		Filters:      session.Filters,
		Participants: session.Participants,
		Status:       string(session.Status),
	}

	if _, err := d.sessions.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase_session.ErrIDConflict
		}
		return err
	}
	return nil
}

func (d *Driver) GetSession(ctx context.Context, id model.SessionID) (model.MatchSession, error) {
	var doc sessionDoc
	err := d.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.MatchSession{}, usecase_session.ErrResourceNotFound
	}
	if err != nil {
		return model.MatchSession{}, err
	}

	return model.MatchSession{
		ID:           doc.ID,
		CreatedBy:    doc.CreatedBy,
		CreatedAt:    doc.CreatedAt,
		Movies:       doc.Movies,
		Filters:      doc.Filters,
		Participants: doc.Participants,
		Status:       model.SessionStatus(doc.Status),
	}, nil
}

func (d *Driver) AddParticipant(ctx context.Context, id model.SessionID, participantID model.ParticipantID) error {
	res, err := d.sessions.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"participants": participantID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usecase_session.ErrResourceNotFound
	}
	return nil
}

func (d *Driver) RecordSwipe(
	ctx context.Context,
	sessionID model.SessionID,
	participantID model.ParticipantID,
	movieID model.MovieID,
	action model.SwipeAction,
) error {
	_, err := d.swipes.UpdateOne(ctx,
		bson.M{"_id": model.SwipesKey(sessionID, participantID)},
		bson.M{"$set": bson.M{
			"session_id":                  sessionID,
			"participant_id":              participantID,
			"swipes." + movieKey(movieID): string(action),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (d *Driver) GetUserSwipes(ctx context.Context, sessionID model.SessionID, participantID model.ParticipantID) (model.UserSwipes, error) {
	var doc swipesDoc
	err := d.swipes.FindOne(ctx, bson.M{"_id": model.SwipesKey(sessionID, participantID)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.UserSwipes{}, usecase_session.ErrResourceNotFound
	}
	if err != nil {
		return model.UserSwipes{}, err
	}

	swipes := make(model.Swipes, len(doc.Swipes))
	for k, v := range doc.Swipes {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return model.UserSwipes{}, err
		}
		swipes[id] = model.SwipeAction(v)
	}

	return model.UserSwipes{
		SessionID:     sessionID,
		ParticipantID: participantID,
		Swipes:        swipes,
		CompletedAt:   doc.CompletedAt,
	}, nil
}

func (d *Driver) MarkCompleted(ctx context.Context, sessionID model.SessionID, participantID model.ParticipantID, at time.Time) error {
	res, err := d.swipes.UpdateOne(ctx,
		bson.M{"_id": model.SwipesKey(sessionID, participantID)},
		bson.M{"$set": bson.M{"completed_at": at.UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usecase_session.ErrResourceNotFound
	}
	return nil
}

func (d *Driver) SetStatus(ctx context.Context, id model.SessionID, status model.SessionStatus) error {
	res, err := d.sessions.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usecase_session.ErrResourceNotFound
	}
	return nil
}

// DeleteExpired removes sessions created before the deadline together with their swipes.
func (d *Driver) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	filter := bson.M{"created_at": bson.M{"$lt": before.UTC()}}

	cur, err := d.sessions.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, err
	}
	var expired []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &expired); err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(expired))
	for _, e := range expired {
		ids = append(ids, e.ID)
	}

	if _, err := d.swipes.DeleteMany(ctx, bson.M{"session_id": bson.M{"$in": ids}}); err != nil {
		return 0, err
	}
	res, err := d.sessions.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func movieKey(id model.MovieID) string {
	return strconv.FormatInt(id, 10)
}
