// Package memory is an in-process implementation of the data stores. It keeps
// the same uniqueness and conditional-update guarantees as the MongoDB stores
// and backs tests and single-node runs without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/normalize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ratingKey struct {
	session bson.ObjectID
	rater   bson.ObjectID
}

// Store holds every collection behind a single mutex. Records are copied on
// the way in and out so callers never share memory with the store.
type Store struct {
	mu sync.RWMutex

	users    map[bson.ObjectID]*data.User
	byEmail  map[string]bson.ObjectID
	sessions map[bson.ObjectID]*data.Session
	ratings  map[bson.ObjectID]*data.Rating
	rated    map[ratingKey]bson.ObjectID
	messages []*data.Message
	chats    map[string]*data.Chat
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:    make(map[bson.ObjectID]*data.User),
		byEmail:  make(map[string]bson.ObjectID),
		sessions: make(map[bson.ObjectID]*data.Session),
		ratings:  make(map[bson.ObjectID]*data.Rating),
		rated:    make(map[ratingKey]bson.ObjectID),
		chats:    make(map[string]*data.Chat),
	}
}

func copyUser(u *data.User) *data.User {
	c := *u
	c.SkillsToTeach = append([]data.Skill{}, u.SkillsToTeach...)
	c.SkillsToLearn = append([]data.Skill{}, u.SkillsToLearn...)
	return &c
}

func copySession(s *data.Session) *data.Session {
	c := *s
	return &c
}

// ---- users ----

// CreateUser stores a new user; the normalized email must be unused.
func (s *Store) CreateUser(_ context.Context, email, hashedPassword, displayName string) (*data.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalize.Email(email)
	if _, ok := s.byEmail[key]; ok {
		return nil, fmt.Errorf("user %s: %w", key, data.ErrDuplicate)
	}

	now := time.Now().UTC()
	u := &data.User{
		ID:            bson.NewObjectID(),
		Email:         key,
		Password:      hashedPassword,
		DisplayName:   displayName,
		SkillsToTeach: []data.Skill{},
		SkillsToLearn: []data.Skill{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.users[u.ID] = u
	s.byEmail[key] = u.ID
	return copyUser(u), nil
}

// GetUserByEmail finds a user by email.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*data.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := normalize.Email(email)
	id, ok := s.byEmail[key]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", key, data.ErrNotFound)
	}
	return copyUser(s.users[id]), nil
}

// GetUserByID finds a user by id.
func (s *Store) GetUserByID(_ context.Context, id bson.ObjectID) (*data.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), data.ErrNotFound)
	}
	return copyUser(u), nil
}

// ListUsersExcept returns every user other than id in registration order.
func (s *Store) ListUsersExcept(_ context.Context, id bson.ObjectID) ([]*data.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*data.User, 0, len(s.users))
	for uid, u := range s.users {
		if uid == id {
			continue
		}
		out = append(out, copyUser(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

// UpdateProfile sets the non-nil fields of patch.
func (s *Store) UpdateProfile(_ context.Context, id bson.ObjectID, patch data.ProfilePatch) (*data.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), data.ErrNotFound)
	}
	if patch.DisplayName != nil {
		u.DisplayName = *patch.DisplayName
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.PhotoURL != nil {
		u.PhotoURL = *patch.PhotoURL
	}
	u.UpdatedAt = time.Now().UTC()
	return copyUser(u), nil
}

// AddSkill appends skill to the selected list unless its key is present.
func (s *Store) AddSkill(_ context.Context, id bson.ObjectID, kind data.SkillKind, skill data.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id.Hex(), data.ErrNotFound)
	}
	for _, existing := range u.Skills(kind) {
		if existing.Key == skill.Key {
			return fmt.Errorf("skill %q: %w", skill.Name, data.ErrDuplicate)
		}
	}
	if kind == data.SkillsToLearn {
		u.SkillsToLearn = append(u.SkillsToLearn, skill)
	} else {
		u.SkillsToTeach = append(u.SkillsToTeach, skill)
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveSkill removes the entry with key from the selected list.
func (s *Store) RemoveSkill(_ context.Context, id bson.ObjectID, kind data.SkillKind, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("skill %q: %w", key, data.ErrNotFound)
	}
	list := u.Skills(kind)
	kept := make([]data.Skill, 0, len(list))
	for _, sk := range list {
		if sk.Key != key {
			kept = append(kept, sk)
		}
	}
	if len(kept) == len(list) {
		return fmt.Errorf("skill %q: %w", key, data.ErrNotFound)
	}
	if kind == data.SkillsToLearn {
		u.SkillsToLearn = kept
	} else {
		u.SkillsToTeach = kept
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateRating overwrites the aggregate rating fields.
func (s *Store) UpdateRating(_ context.Context, id bson.ObjectID, rating float64, total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id.Hex(), data.ErrNotFound)
	}
	u.Rating = rating
	u.TotalRatings = total
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// ---- sessions ----

// CreateSession stores sess and assigns its id.
func (s *Store) CreateSession(_ context.Context, sess *data.Session) (*data.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.ID = bson.NewObjectID()
	s.sessions[sess.ID] = copySession(sess)
	return sess, nil
}

// GetSessionByID finds a session by id.
func (s *Store) GetSessionByID(_ context.Context, id bson.ObjectID) (*data.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id.Hex(), data.ErrNotFound)
	}
	return copySession(sess), nil
}

// UpdateSessionStatus applies patch only if the session is still in status
// from; otherwise it returns data.ErrStale.
func (s *Store) UpdateSessionStatus(_ context.Context, id bson.ObjectID, from data.SessionStatus, patch data.SessionPatch) (*data.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id.Hex(), data.ErrNotFound)
	}
	if sess.Status != from {
		return nil, fmt.Errorf("session %s no longer %s: %w", id.Hex(), from, data.ErrStale)
	}
	patch.Apply(sess)
	return copySession(sess), nil
}

// ListSessionsForUser returns sessions involving userID, optionally filtered
// by status, ordered by scheduled time.
func (s *Store) ListSessionsForUser(_ context.Context, userID bson.ObjectID, status data.SessionStatus) ([]*data.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*data.Session
	for _, sess := range s.sessions {
		if !sess.HasParticipant(userID) {
			continue
		}
		if status != "" && sess.Status != status {
			continue
		}
		out = append(out, copySession(sess))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

// ---- ratings ----

// CreateRating stores r; one rating per (session, rater).
func (s *Store) CreateRating(_ context.Context, r *data.Rating) (*data.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ratingKey{session: r.SessionID, rater: r.RaterID}
	if _, ok := s.rated[key]; ok {
		return nil, fmt.Errorf("rating for session %s by %s: %w", r.SessionID.Hex(), r.RaterID.Hex(), data.ErrDuplicate)
	}
	r.ID = bson.NewObjectID()
	c := *r
	s.ratings[r.ID] = &c
	s.rated[key] = r.ID
	return r, nil
}

// HasRated reports whether raterID already rated sessionID.
func (s *Store) HasRated(_ context.Context, sessionID, raterID bson.ObjectID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.rated[ratingKey{session: sessionID, rater: raterID}]
	return ok, nil
}

// ListRatingsForUser returns ratings received by userID, newest first.
func (s *Store) ListRatingsForUser(_ context.Context, userID bson.ObjectID) ([]*data.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*data.Rating
	for _, r := range s.ratings {
		if r.RatedUserID == userID {
			c := *r
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

// SummarizeRatings sums and counts every rating received by userID.
func (s *Store) SummarizeRatings(_ context.Context, userID bson.ObjectID) (data.RatingSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum data.RatingSummary
	for _, r := range s.ratings {
		if r.RatedUserID == userID {
			sum.Sum += r.Score
			sum.Count++
		}
	}
	return sum, nil
}

// ---- chat ----

// EnsureThread returns the thread between a and b, creating it if needed.
func (s *Store) EnsureThread(_ context.Context, a, b bson.ObjectID) (*data.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := data.ChatID(a, b)
	if c, ok := s.chats[id]; ok {
		cp := *c
		return &cp, nil
	}
	now := time.Now().UTC()
	c := &data.Chat{
		ID:            id,
		Participants:  []bson.ObjectID{a, b},
		LastMessageAt: now,
		CreatedAt:     now,
	}
	s.chats[id] = c
	cp := *c
	return &cp, nil
}

// SaveMessage stores a message and bumps the thread's last message.
func (s *Store) SaveMessage(_ context.Context, senderID, receiverID bson.ObjectID, content string, sentAt time.Time) (*data.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	msg := &data.Message{
		ID:         bson.NewObjectID(),
		ChatID:     data.ChatID(senderID, receiverID),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		SentAt:     sentAt,
		CreatedAt:  now,
	}
	s.messages = append(s.messages, msg)

	c, ok := s.chats[msg.ChatID]
	if !ok {
		c = &data.Chat{ID: msg.ChatID, Participants: []bson.ObjectID{senderID, receiverID}, CreatedAt: now}
		s.chats[msg.ChatID] = c
	}
	c.LastMessage = content
	c.LastMessageAt = sentAt

	cp := *msg
	return &cp, nil
}

// GetMessageHistory returns the last limit messages between two users,
// oldest first.
func (s *Store) GetMessageHistory(_ context.Context, user1, user2 bson.ObjectID, limit int64) ([]*data.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id := data.ChatID(user1, user2)
	var out []*data.Message
	for _, m := range s.messages {
		if m.ChatID == id {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[int64(len(out))-limit:]
	}
	return out, nil
}

// GetRecentChats returns the user's threads, most recently active first.
func (s *Store) GetRecentChats(_ context.Context, userID bson.ObjectID, limit int64) ([]*data.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*data.Chat
	for _, c := range s.chats {
		for _, p := range c.Participants {
			if p == userID {
				cp := *c
				out = append(out, &cp)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageAt.After(out[j].LastMessageAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountUnread counts unread messages in chatID addressed to userID.
func (s *Store) CountUnread(_ context.Context, chatID string, userID bson.ObjectID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, m := range s.messages {
		if m.ChatID == chatID && m.ReceiverID == userID && !m.Read {
			n++
		}
	}
	return n, nil
}

// MarkRead marks messages from partnerID to userID as read.
func (s *Store) MarkRead(_ context.Context, userID, partnerID bson.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := data.ChatID(userID, partnerID)
	var n int64
	for _, m := range s.messages {
		if m.ChatID == id && m.ReceiverID == userID && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}
