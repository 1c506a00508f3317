package usecase_session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/krishkpatil/getflix/internal/model"
	"github.com/krishkpatil/getflix/internal/service/matching"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrIDConflict          = errors.New("session id conflict")
	ErrSessionsUnavailable = errors.New("no available session ids")
	ErrInternal            = errors.New("internal error")
	ErrResourceNotFound    = errors.New("no such resource")

	ErrInvalidInput     = errors.New("invalid input")
	ErrEmptyResult      = errors.New("no movies match the selected filters")
	ErrUpstream         = errors.New("catalog unavailable")
	ErrNotParticipant   = errors.New("not a participant of the session")
	ErrSessionFull      = errors.New("session already has two participants")
	ErrAlreadyCompleted = errors.New("participant already completed the deck")
	ErrOutOfOrder       = errors.New("swipe does not target the current movie")
	ErrMovieNotInDeck   = errors.New("movie is not in the session deck")
)

//go:generate mockery --name=SessionStore --output=./mocks/session/store --filename=store.go
type SessionStore interface {
	CreateSession(ctx context.Context, session model.MatchSession) error
	GetSession(ctx context.Context, id model.SessionID) (model.MatchSession, error)
	AddParticipant(ctx context.Context, id model.SessionID, participantID model.ParticipantID) error
	RecordSwipe(ctx context.Context, sessionID model.SessionID, participantID model.ParticipantID, movieID model.MovieID, action model.SwipeAction) error
	GetUserSwipes(ctx context.Context, sessionID model.SessionID, participantID model.ParticipantID) (model.UserSwipes, error)
	MarkCompleted(ctx context.Context, sessionID model.SessionID, participantID model.ParticipantID, at time.Time) error
	SetStatus(ctx context.Context, id model.SessionID, status model.SessionStatus) error

	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

//go:generate mockery --name=Catalog --output=./mocks/session/catalog --filename=catalog.go
type Catalog interface {
	Discover(ctx context.Context, q model.DiscoverQuery) (model.Page[model.Movie], error)
}

//go:generate mockery --name=Notifier --output=./mocks/session/notifier --filename=notifier.go
type Notifier interface {
	Notify(sessionID model.SessionID, event model.SessionEvent)
}

const (
	sessionIDLen = 12

	defaultMinRating = 6.0
	defaultMaxPages  = 1
)

type Usecase struct {
	store    SessionStore
	catalog  Catalog
	notifier Notifier

	baseURL   string
	minRating float64
	maxPages  int
	retention time.Duration
	now       func() time.Time
}

type Option func(*Usecase)

func WithBaseURL(baseURL string) Option {
	return func(u *Usecase) {
		u.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithMinRating(r float64) Option {
	return func(u *Usecase) {
		if r >= 0 {
			u.minRating = r
		}
	}
}

// WithMaxDiscoverPages lets decks larger than one catalog page span several pages.
func WithMaxDiscoverPages(n int) Option {
	return func(u *Usecase) {
		if n > 0 {
			u.maxPages = n
		}
	}
}

// WithRetention sets how long sessions are kept. Zero keeps them forever.
func WithRetention(d time.Duration) Option {
	return func(u *Usecase) {
		u.retention = d
	}
}

func WithNotifier(n Notifier) Option {
	return func(u *Usecase) {
		if n != nil {
			u.notifier = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func New(store SessionStore, catalog Catalog, opts ...Option) *Usecase {
	u := &Usecase{
		store:     store,
		catalog:   catalog,
		notifier:  nopNotifier{},
		minRating: defaultMinRating,
		maxPages:  defaultMaxPages,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type CreateRequest struct {
	Genres     []int
	Timeframe  model.Timeframe
	Region     model.Region
	MovieCount int
	// Empty means a new participant id is generated for the creator.
	CreatorID model.ParticipantID
}

type CreateResult struct {
	Session   model.MatchSession
	CreatorID model.ParticipantID
	ShareURL  string
}

func (u *Usecase) Create(ctx context.Context, req CreateRequest) (CreateResult, error) {
	if req.MovieCount <= 0 {
		return CreateResult{}, fmt.Errorf("%w: movie count must be positive", ErrInvalidInput)
	}
	yearRange, err := req.Timeframe.YearRange(u.now())
	if err != nil {
		return CreateResult{}, errors.Join(ErrInvalidInput, err)
	}
	language, err := req.Region.LanguageCode()
	if err != nil {
		return CreateResult{}, errors.Join(ErrInvalidInput, err)
	}

	filters := model.SessionFilters{
		Genres:     req.Genres,
		YearRange:  yearRange,
		MinRating:  u.minRating,
		MovieCount: req.MovieCount,
		Language:   language,
	}
	if filters.Genres == nil {
		filters.Genres = []int{}
	}

	deck, err := u.collectDeck(ctx, filters)
	if err != nil {
		return CreateResult{}, err
	}
	if len(deck) == 0 {
		return CreateResult{}, ErrEmptyResult
	}

	creatorID := req.CreatorID
	if creatorID == "" {
		creatorID = uuid.NewString()
	}

	session, err := u.createSession(ctx, model.MatchSession{
		CreatedBy:    creatorID,
		CreatedAt:    u.now().UTC(),
		Movies:       deck,
		Filters:      filters,
		Participants: []model.ParticipantID{creatorID},
		Status:       model.StatusActive,
	})
	if err != nil {
		return CreateResult{}, err
	}

	return CreateResult{
		Session:   session,
		CreatorID: creatorID,
		ShareURL:  u.ShareURL(session.ID),
	}, nil
}

func (u *Usecase) collectDeck(ctx context.Context, filters model.SessionFilters) ([]model.Movie, error) {
	yr := filters.YearRange
	deck := make([]model.Movie, 0, filters.MovieCount)
	seen := make(map[model.MovieID]struct{}, filters.MovieCount)

	for page := 1; page <= u.maxPages; page++ {
		res, err := u.catalog.Discover(ctx, model.DiscoverQuery{
			GenreIDs:  filters.Genres,
			Page:      page,
			YearRange: &yr,
			MinRating: filters.MinRating,
			Language:  filters.Language,
		})
		if err != nil {
			return nil, errors.Join(ErrUpstream, err)
		}
		// Popularity paging may repeat a title across pages.
		for _, movie := range res.Results {
			if _, dup := seen[movie.ID]; dup {
				continue
			}
			seen[movie.ID] = struct{}{}
			deck = append(deck, movie)
		}
		if len(deck) >= filters.MovieCount || page >= res.TotalPages {
			break
		}
	}

	if len(deck) > filters.MovieCount {
		deck = deck[:filters.MovieCount]
	}
	return deck, nil
}

// Session ids may collide, the store reports it and a new one is drawn.
func (u *Usecase) createSession(ctx context.Context, draft model.MatchSession) (model.MatchSession, error) {
	var retries = 3
	for retries > 0 {
		id, err := gonanoid.New(sessionIDLen)
		if err != nil {
			return model.MatchSession{}, errors.Join(ErrInternal, err)
		}
		draft.ID = id

		if err := u.store.CreateSession(ctx, draft); err != nil {
			if errors.Is(err, ErrIDConflict) {
				retries--
				continue
			}
			return model.MatchSession{}, errors.Join(ErrInternal, err)
		}
		return draft, nil
	}
	return model.MatchSession{}, ErrSessionsUnavailable
}

func (u *Usecase) Get(ctx context.Context, id model.SessionID) (model.MatchSession, error) {
	return u.getSession(ctx, id)
}

type ParticipantState string

const (
	StateSwiping   ParticipantState = "swiping"
	StateCompleted ParticipantState = "completed"
)

type JoinResult struct {
	Session       model.MatchSession
	ParticipantID model.ParticipantID
	State         ParticipantState
	// Index of the next movie to show. Equals the deck length once completed.
	Cursor int
}

// Join is idempotent: a returning participant resumes where they left off.
func (u *Usecase) Join(ctx context.Context, id model.SessionID, participantID model.ParticipantID) (JoinResult, error) {
	if participantID == "" {
		participantID = uuid.NewString()
	}

	session, err := u.getSession(ctx, id)
	if err != nil {
		return JoinResult{}, err
	}

	firstArrival := !session.HasParticipant(participantID)
	if firstArrival {
		if len(session.Participants) >= model.MaxParticipants {
			return JoinResult{}, ErrSessionFull
		}
		if err := u.store.AddParticipant(ctx, id, participantID); err != nil {
			return JoinResult{}, storeErr(err)
		}
		session.Participants = append(session.Participants, participantID)
	}

	swipes, err := u.userSwipes(ctx, id, participantID)
	if err != nil {
		return JoinResult{}, err
	}

	res := JoinResult{
		Session:       session,
		ParticipantID: participantID,
		State:         StateSwiping,
		Cursor:        model.Cursor(session.Movies, swipes.Swipes),
	}
	if swipes.Completed() {
		res.State = StateCompleted
		res.Cursor = len(session.Movies)
	} else if len(session.Movies) > 0 && res.Cursor == len(session.Movies) {
		if _, err := u.complete(ctx, session, participantID); err != nil {
			return JoinResult{}, err
		}
		res.State = StateCompleted
	}

	if firstArrival {
		u.publish(session, model.EventParticipantJoined, participantID)
	}
	return res, nil
}

type SwipeResult struct {
	Cursor    int
	Completed bool
	// Set when this swipe completed the second participant.
	ResultsReady bool
}

func (u *Usecase) Swipe(
	ctx context.Context,
	id model.SessionID,
	participantID model.ParticipantID,
	movieID model.MovieID,
	action model.SwipeAction,
) (SwipeResult, error) {
	if _, err := model.ParseSwipeAction(string(action)); err != nil {
		return SwipeResult{}, errors.Join(ErrInvalidInput, err)
	}

	session, err := u.getSession(ctx, id)
	if err != nil {
		return SwipeResult{}, err
	}
	if !session.HasParticipant(participantID) {
		return SwipeResult{}, ErrNotParticipant
	}

	swipes, err := u.userSwipes(ctx, id, participantID)
	if err != nil {
		return SwipeResult{}, err
	}
	if swipes.Completed() {
		return SwipeResult{}, ErrAlreadyCompleted
	}

	idx := session.DeckIndex(movieID)
	if idx < 0 {
		return SwipeResult{}, ErrMovieNotInDeck
	}
	cursor := model.Cursor(session.Movies, swipes.Swipes)
	if idx > cursor {
		return SwipeResult{}, ErrOutOfOrder
	}

	if err := u.store.RecordSwipe(ctx, id, participantID, movieID, action); err != nil {
		return SwipeResult{}, storeErr(err)
	}
	if idx < cursor {
		if cursor < len(session.Movies) {
			return SwipeResult{Cursor: cursor}, nil
		}
		// Deck fully swiped but completion was never recorded.
		return u.complete(ctx, session, participantID)
	}

	swipes.Swipes[movieID] = action
	next := model.Cursor(session.Movies, swipes.Swipes)
	if next < len(session.Movies) {
		return SwipeResult{Cursor: next}, nil
	}
	return u.complete(ctx, session, participantID)
}

// complete marks a participant who swiped the whole deck and closes the
// session once the partner is done too. Safe to repeat.
func (u *Usecase) complete(ctx context.Context, session model.MatchSession, participantID model.ParticipantID) (SwipeResult, error) {
	id := session.ID
	if err := u.store.MarkCompleted(ctx, id, participantID, u.now().UTC()); err != nil {
		return SwipeResult{}, storeErr(err)
	}
	u.publish(session, model.EventParticipantCompleted, participantID)

	res := SwipeResult{Cursor: len(session.Movies), Completed: true}

	partner, ok := session.Partner(participantID)
	if !ok {
		return res, nil
	}
	partnerSwipes, err := u.userSwipes(ctx, id, partner)
	if err != nil {
		return SwipeResult{}, err
	}
	if partnerSwipes.Completed() {
		if err := u.store.SetStatus(ctx, id, model.StatusCompleted); err != nil {
			return SwipeResult{}, storeErr(err)
		}
		u.publish(session, model.EventResultsReady, "")
		res.ResultsReady = true
	}
	return res, nil
}

type ResultsStatus string

const (
	ResultsWaitingForPartner ResultsStatus = "waiting_for_partner"
	ResultsReady             ResultsStatus = "ready"
)

type Results struct {
	Status       ResultsStatus
	ShareURL     string
	Participants []model.ParticipantID
	Stats        model.SessionStats
	Matches      []model.MatchResult
}

// Results are computed with the first participant to join as user 1.
// Waiting for a partner is a regular outcome, not an error.
func (u *Usecase) Results(ctx context.Context, id model.SessionID, participantID model.ParticipantID) (Results, error) {
	session, err := u.getSession(ctx, id)
	if err != nil {
		return Results{}, err
	}
	if participantID != "" && !session.HasParticipant(participantID) {
		return Results{}, ErrNotParticipant
	}

	waiting := Results{
		Status:       ResultsWaitingForPartner,
		ShareURL:     u.ShareURL(id),
		Participants: session.Participants,
	}
	if len(session.Participants) < model.MaxParticipants {
		return waiting, nil
	}

	a, err := u.userSwipes(ctx, id, session.Participants[0])
	if err != nil {
		return Results{}, err
	}
	b, err := u.userSwipes(ctx, id, session.Participants[1])
	if err != nil {
		return Results{}, err
	}
	if !a.Completed() || !b.Completed() {
		return waiting, nil
	}

	return Results{
		Status:       ResultsReady,
		ShareURL:     waiting.ShareURL,
		Participants: session.Participants,
		Stats:        matching.SessionStats(a.Swipes, b.Swipes),
		Matches:      matching.MatchResults(session.Movies, a.Swipes, b.Swipes),
	}, nil
}

func (u *Usecase) ShareURL(id model.SessionID) string {
	return u.baseURL + "/match/session/" + id
}

// Sweep removes sessions older than the retention window.
func (u *Usecase) Sweep(ctx context.Context) (int64, error) {
	if u.retention <= 0 {
		return 0, nil
	}
	deleted, err := u.store.DeleteExpired(ctx, u.now().Add(-u.retention))
	if err != nil {
		return 0, errors.Join(ErrInternal, err)
	}
	return deleted, nil
}

func (u *Usecase) getSession(ctx context.Context, id model.SessionID) (model.MatchSession, error) {
	session, err := u.store.GetSession(ctx, id)
	if err != nil {
		return model.MatchSession{}, storeErr(err)
	}
	return session, nil
}

// userSwipes treats a missing record as an empty, uncompleted one.
func (u *Usecase) userSwipes(ctx context.Context, id model.SessionID, participantID model.ParticipantID) (model.UserSwipes, error) {
	swipes, err := u.store.GetUserSwipes(ctx, id, participantID)
	if err != nil && !errors.Is(err, ErrResourceNotFound) {
		return model.UserSwipes{}, errors.Join(ErrInternal, err)
	}
	if err != nil {
		swipes = model.UserSwipes{SessionID: id, ParticipantID: participantID}
	}
	if swipes.Swipes == nil {
		swipes.Swipes = model.Swipes{}
	}
	return swipes, nil
}

func (u *Usecase) publish(session model.MatchSession, t model.EventType, participantID model.ParticipantID) {
	u.notifier.Notify(session.ID, model.SessionEvent{
		Type:          t,
		SessionID:     session.ID,
		ParticipantID: participantID,
		Participants:  len(session.Participants),
		Timestamp:     u.now().UTC(),
	})
}

func storeErr(err error) error {
	if errors.Is(err, ErrResourceNotFound) {
		return ErrResourceNotFound
	}
	return errors.Join(ErrInternal, err)
}

type nopNotifier struct{}

func (nopNotifier) Notify(model.SessionID, model.SessionEvent) {}
