package infra_memory_session

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/krishkpatil/getflix/internal/model"
	usecase_session "github.com/krishkpatil/getflix/internal/usecase/session"
)

// Driver keeps sessions in process memory. Values are copied on the way in
// and out so callers never share maps or slices with the store.
type Driver struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]model.MatchSession
	swipes   map[string]model.UserSwipes
}

func New() *Driver {
	return &Driver{
		sessions: make(map[model.SessionID]model.MatchSession),
		swipes:   make(map[string]model.UserSwipes),
	}
}

func (d *Driver) CreateSession(_ context.Context, session model.MatchSession) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.sessions[session.ID]; ok {
		return usecase_session.ErrIDConflict
	}
	d.sessions[session.ID] = cloneSession(session)
	return nil
}

func (d *Driver) GetSession(_ context.Context, id model.SessionID) (model.MatchSession, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	session, ok := d.sessions[id]
	if !ok {
		return model.MatchSession{}, usecase_session.ErrResourceNotFound
	}
	return cloneSession(session), nil
}

func (d *Driver) AddParticipant(_ context.Context, id model.SessionID, participantID model.ParticipantID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	session, ok := d.sessions[id]
	if !ok {
		return usecase_session.ErrResourceNotFound
	}
	if !slices.Contains(session.Participants, participantID) {
		session.Participants = append(slices.Clone(session.Participants), participantID)
		d.sessions[id] = session
	}
	return nil
}

func (d *Driver) RecordSwipe(
	_ context.Context,
	sessionID model.SessionID,
	participantID model.ParticipantID,
	movieID model.MovieID,
	action model.SwipeAction,
) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := model.SwipesKey(sessionID, participantID)
	rec, ok := d.swipes[key]
	if !ok {
		rec = model.UserSwipes{
			SessionID:     sessionID,
			ParticipantID: participantID,
			Swipes:        model.Swipes{},
		}
	}
	rec.Swipes[movieID] = action
	d.swipes[key] = rec
	return nil
}

func (d *Driver) GetUserSwipes(_ context.Context, sessionID model.SessionID, participantID model.ParticipantID) (model.UserSwipes, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, ok := d.swipes[model.SwipesKey(sessionID, participantID)]
	if !ok {
		return model.UserSwipes{}, usecase_session.ErrResourceNotFound
	}
	return cloneSwipes(rec), nil
}

func (d *Driver) MarkCompleted(_ context.Context, sessionID model.SessionID, participantID model.ParticipantID, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := model.SwipesKey(sessionID, participantID)
	rec, ok := d.swipes[key]
	if !ok {
		return usecase_session.ErrResourceNotFound
	}
	at = at.UTC()
	rec.CompletedAt = &at
	d.swipes[key] = rec
	return nil
}

func (d *Driver) SetStatus(_ context.Context, id model.SessionID, status model.SessionStatus) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	session, ok := d.sessions[id]
	if !ok {
		return usecase_session.ErrResourceNotFound
	}
	session.Status = status
	d.sessions[id] = session
	return nil
}

func (d *Driver) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var deleted int64
	for id, session := range d.sessions {
		if !session.CreatedAt.Before(before) {
			continue
		}
		for _, p := range session.Participants {
			delete(d.swipes, model.SwipesKey(id, p))
		}
		delete(d.sessions, id)
		deleted++
	}
	// Swipes of participants that never made it into the session list.
	for key, rec := range d.swipes {
		if _, ok := d.sessions[rec.SessionID]; !ok {
			delete(d.swipes, key)
		}
	}
	return deleted, nil
}

func cloneSession(s model.MatchSession) model.MatchSession {
	s.Movies = slices.Clone(s.Movies)
	s.Participants = slices.Clone(s.Participants)
	s.Filters.Genres = slices.Clone(s.Filters.Genres)
	return s
}

func cloneSwipes(u model.UserSwipes) model.UserSwipes {
	u.Swipes = maps.Clone(u.Swipes)
	if u.CompletedAt != nil {
		at := *u.CompletedAt
		u.CompletedAt = &at
	}
	return u
}
