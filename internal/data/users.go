// Package data provides DB models and stores.
package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/normalize"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UsersStore performs user DB operations.
type UsersStore struct {
	// coll is reference to "users" collection in MongoDB
	coll *mongo.Collection
}

// NewUsersStore returns a UsersStore using the provided collection.
func NewUsersStore(coll *mongo.Collection) *UsersStore {
	return &UsersStore{coll: coll}
}

// CreateUser inserts a new user document with hashed password and an empty
// profile.
func (u *UsersStore) CreateUser(ctx context.Context, email, hashedPassword, displayName string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Email:       normalize.Email(email),
		Password:    hashedPassword, // Already hashed by auth.HashPassword()
		DisplayName: displayName,
		// Empty (not null) arrays so later $push updates apply
		SkillsToTeach: []Skill{},
		SkillsToLearn: []Skill{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := u.coll.InsertOne(ctx, user)
	if err != nil {
		// Unique index on email (see db.CreateIndexes)
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
		}
		return nil, err
	}

	// MongoDB auto-generates the _id field; extract it and set on User struct
	user.ID = result.InsertedID.(bson.ObjectID)
	return user, nil
}

// GetUserByEmail finds a user by email.
func (u *UsersStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := u.coll.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", normalize.Email(email), ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID finds a user by ObjectID.
func (u *UsersStore) GetUserByID(ctx context.Context, id bson.ObjectID) (*User, error) {
	var user User
	err := u.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		// No document found (user was deleted or never existed)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// ListUsersExcept returns every user other than id in registration order.
func (u *UsersStore) ListUsersExcept(ctx context.Context, id bson.ObjectID) ([]*User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := u.coll.Find(ctx, bson.M{"_id": bson.M{"$ne": id}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile sets the non-nil fields of patch and returns the updated user.
func (u *UsersStore) UpdateProfile(ctx context.Context, id bson.ObjectID, patch ProfilePatch) (*User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.DisplayName != nil {
		set["display_name"] = *patch.DisplayName
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.PhotoURL != nil {
		set["photo_url"] = *patch.PhotoURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user User
	err := u.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// AddSkill appends skill to the selected list unless an entry with the same
// key is already present. The membership test and the push happen in one
// conditional update, so concurrent adds of the same skill cannot both win.
func (u *UsersStore) AddSkill(ctx context.Context, id bson.ObjectID, kind SkillKind, skill Skill) error {
	field := kind.field()
	filter := bson.M{
		"_id":          id,
		field + ".key": bson.M{"$ne": skill.Key},
	}
	update := bson.M{
		"$push": bson.M{field: skill},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := u.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the user is gone or the skill is a duplicate
	n, err := u.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), ErrNotFound)
	}
	return fmt.Errorf("skill %q: %w", skill.Name, ErrDuplicate)
}

// RemoveSkill pulls the entry with key from the selected list.
func (u *UsersStore) RemoveSkill(ctx context.Context, id bson.ObjectID, kind SkillKind, key string) error {
	field := kind.field()
	filter := bson.M{"_id": id, field + ".key": key}
	update := bson.M{
		"$pull": bson.M{field: bson.M{"key": key}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := u.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("skill %q: %w", key, ErrNotFound)
	}
	return nil
}

// UpdateRating overwrites the aggregate rating fields. Only the rating
// aggregator calls this, always with values recomputed from the full set.
func (u *UsersStore) UpdateRating(ctx context.Context, id bson.ObjectID, rating float64, total int) error {
	res, err := u.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"rating":        rating,
		"total_ratings": total,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), ErrNotFound)
	}
	return nil
}
