package data

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// RatingsStore provides rating database operations.
type RatingsStore struct {
	coll *mongo.Collection
}

// NewRatingsStore returns a RatingsStore using given collection.
func NewRatingsStore(coll *mongo.Collection) *RatingsStore {
	return &RatingsStore{coll: coll}
}

// CreateRating inserts r. A second rating for the same (session, rater)
// violates the unique index and returns ErrDuplicate.
func (m *RatingsStore) CreateRating(ctx context.Context, r *Rating) (*Rating, error) {
	result, err := m.coll.InsertOne(ctx, r)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("rating for session %s by %s: %w", r.SessionID.Hex(), r.RaterID.Hex(), ErrDuplicate)
		}
		return nil, err
	}
	r.ID = result.InsertedID.(bson.ObjectID)
	return r, nil
}

// HasRated reports whether raterID already rated sessionID.
func (m *RatingsStore) HasRated(ctx context.Context, sessionID, raterID bson.ObjectID) (bool, error) {
	n, err := m.coll.CountDocuments(ctx, bson.M{"session_id": sessionID, "rater_id": raterID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListRatingsForUser returns ratings received by userID, newest first.
func (m *RatingsStore) ListRatingsForUser(ctx context.Context, userID bson.ObjectID) ([]*Rating, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := m.coll.Find(ctx, bson.M{"rated_user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []*Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// SummarizeRatings sums and counts every rating received by userID in one
// aggregation, so the caller can recompute the mean from the full set.
func (m *RatingsStore) SummarizeRatings(ctx context.Context, userID bson.ObjectID) (RatingSummary, error) {
	pipeline := mongo.Pipeline{
		// Stage 1: $match - only ratings received by the user
		bson.D{{Key: "$match", Value: bson.D{{Key: "rated_user_id", Value: userID}}}},

		// Stage 2: $group - a single bucket with the sum and the count
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "sum", Value: bson.D{{Key: "$sum", Value: "$score"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := m.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return RatingSummary{}, err
	}
	defer cursor.Close(ctx)

	var results []RatingSummary
	if err := cursor.All(ctx, &results); err != nil {
		return RatingSummary{}, err
	}

	// No ratings yet: the $group stage emits nothing
	if len(results) == 0 {
		return RatingSummary{}, nil
	}
	return results[0], nil
}
