package engine

import (
	"context"
	"errors"
	"time"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data/memory"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// fixedNow is the engine clock in tests: 2026-01-10 12:00 UTC.
var fixedNow = time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(opts ...Option) (*Engine, *memory.Store) {
	store := memory.New()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow }), WithThreads(store)}, opts...)
	return New(store, store, store, opts...), store
}

func mustUser(store *memory.Store, email, name string) *data.User {
	u, err := store.CreateUser(context.Background(), email, "hash", name)
	if err != nil {
		panic(err)
	}
	return u
}

func mustSkill(e *Engine, id bson.ObjectID, kind data.SkillKind, name string) {
	if _, err := e.AddSkill(context.Background(), id, kind, SkillInput{Name: name}); err != nil {
		panic(err)
	}
}

// failingUsers wraps a store and fails aggregate writes on demand.
type failingUsers struct {
	*memory.Store
	failRating bool
}

func (f *failingUsers) UpdateRating(ctx context.Context, id bson.ObjectID, rating float64, total int) error {
	if f.failRating {
		return errors.New("write timeout")
	}
	return f.Store.UpdateRating(ctx, id, rating, total)
}

type failingThreads struct{}

func (failingThreads) EnsureThread(context.Context, bson.ObjectID, bson.ObjectID) (*data.Chat, error) {
	return nil, errors.New("chats unavailable")
}

// racingSessions moves the session to a different status just before the
// conditional update runs, as a concurrent writer would.
type racingSessions struct {
	*memory.Store
	to data.SessionStatus
}

func (r *racingSessions) UpdateSessionStatus(ctx context.Context, id bson.ObjectID, from data.SessionStatus, patch data.SessionPatch) (*data.Session, error) {
	if r.to != "" {
		_, _ = r.Store.UpdateSessionStatus(ctx, id, from, data.SessionPatch{Status: r.to, UpdatedAt: patch.UpdatedAt})
		r.to = ""
	}
	return r.Store.UpdateSessionStatus(ctx, id, from, patch)
}

func newRacingFixture() (*racingSessions, context.Context) {
	return &racingSessions{Store: memory.New()}, context.Background()
}
