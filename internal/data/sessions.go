package data

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// SessionsStore provides session database operations.
type SessionsStore struct {
	coll *mongo.Collection
}

// NewSessionsStore returns a SessionsStore using given collection.
func NewSessionsStore(coll *mongo.Collection) *SessionsStore {
	return &SessionsStore{coll: coll}
}

// CreateSession inserts s and returns it with its generated id.
func (m *SessionsStore) CreateSession(ctx context.Context, s *Session) (*Session, error) {
	result, err := m.coll.InsertOne(ctx, s)
	if err != nil {
		return nil, err
	}
	s.ID = result.InsertedID.(bson.ObjectID)
	return s, nil
}

// GetSessionByID finds a session by ObjectID.
func (m *SessionsStore) GetSessionByID(ctx context.Context, id bson.ObjectID) (*Session, error) {
	var s Session
	if err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("session %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

// UpdateSessionStatus applies patch only if the session is still in status
// from. A session that exists but has moved on yields ErrStale; the caller
// decides how to report the conflict.
func (m *SessionsStore) UpdateSessionStatus(ctx context.Context, id bson.ObjectID, from SessionStatus, patch SessionPatch) (*Session, error) {
	set := bson.M{
		"status":     patch.Status,
		"updated_at": patch.UpdatedAt,
	}
	if patch.RespondedAt != nil {
		set["responded_at"] = *patch.RespondedAt
	}
	if patch.CancelledAt != nil {
		set["cancelled_at"] = *patch.CancelledAt
	}
	if patch.CancelledBy != nil {
		set["cancelled_by"] = *patch.CancelledBy
	}
	if patch.CompletedAt != nil {
		set["completed_at"] = *patch.CompletedAt
	}

	// Compare-and-set on status: the filter is the precondition
	filter := bson.M{"_id": id, "status": from}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s Session
	err := m.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&s)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	n, err := m.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("session %s: %w", id.Hex(), ErrNotFound)
	}
	return nil, fmt.Errorf("session %s no longer %s: %w", id.Hex(), from, ErrStale)
}

// ListSessionsForUser returns sessions where userID is proposer or partner,
// filtered by status when status is non-empty, ordered by scheduled time.
func (m *SessionsStore) ListSessionsForUser(ctx context.Context, userID bson.ObjectID, status SessionStatus) ([]*Session, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"proposer_id": userID},
			bson.M{"partner_id": userID},
		},
	}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
