// Package engine implements the session and matching rules of the skill
// exchange: match scoring, the session state machine, rating aggregation
// and profile skill management. It owns no storage; stores are injected.
package engine

import (
	"context"
	"time"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserStore is the user-record capability the engine needs.
type UserStore interface {
	GetUserByID(ctx context.Context, id bson.ObjectID) (*data.User, error)
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
	ListUsersExcept(ctx context.Context, id bson.ObjectID) ([]*data.User, error)
	UpdateProfile(ctx context.Context, id bson.ObjectID, patch data.ProfilePatch) (*data.User, error)
	AddSkill(ctx context.Context, id bson.ObjectID, kind data.SkillKind, skill data.Skill) error
	RemoveSkill(ctx context.Context, id bson.ObjectID, kind data.SkillKind, key string) error
	UpdateRating(ctx context.Context, id bson.ObjectID, rating float64, total int) error
}

// SessionStore persists sessions. UpdateSessionStatus must apply the patch
// only while the stored status equals from, returning data.ErrStale
// otherwise.
type SessionStore interface {
	CreateSession(ctx context.Context, s *data.Session) (*data.Session, error)
	GetSessionByID(ctx context.Context, id bson.ObjectID) (*data.Session, error)
	UpdateSessionStatus(ctx context.Context, id bson.ObjectID, from data.SessionStatus, patch data.SessionPatch) (*data.Session, error)
	ListSessionsForUser(ctx context.Context, userID bson.ObjectID, status data.SessionStatus) ([]*data.Session, error)
}

// RatingStore persists ratings. CreateRating must reject a second rating
// for the same (session, rater) with data.ErrDuplicate.
type RatingStore interface {
	CreateRating(ctx context.Context, r *data.Rating) (*data.Rating, error)
	HasRated(ctx context.Context, sessionID, raterID bson.ObjectID) (bool, error)
	ListRatingsForUser(ctx context.Context, userID bson.ObjectID) ([]*data.Rating, error)
	SummarizeRatings(ctx context.Context, userID bson.ObjectID) (data.RatingSummary, error)
}

// ThreadStore creates chat threads between two users.
type ThreadStore interface {
	EnsureThread(ctx context.Context, a, b bson.ObjectID) (*data.Chat, error)
}

// Engine applies the business rules over the injected stores. It is safe
// for concurrent use; it holds no mutable state of its own.
type Engine struct {
	users    UserStore
	sessions SessionStore
	ratings  RatingStore
	threads  ThreadStore

	log logger.Logger
	now func() time.Time
	loc *time.Location
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreads enables the chat thread side effect on confirm.
func WithThreads(t ThreadStore) Option {
	return func(e *Engine) { e.threads = t }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLocation sets the zone proposed dates and times are read in.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// New returns an Engine over the given stores.
func New(users UserStore, sessions SessionStore, ratings RatingStore, opts ...Option) *Engine {
	e := &Engine{
		users:    users,
		sessions: sessions,
		ratings:  ratings,
		log:      logger.Nop(),
		now:      time.Now,
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// publicUser returns a copy of u without credentials.
func publicUser(u *data.User) *data.User {
	if u == nil {
		return nil
	}
	c := *u
	c.Password = ""
	return &c
}
