// Package db manages MongoDB connections and collections.
package db

import (
	"context" // For connection timeout/cancellation
	"fmt"     // Error formatting
	"time"    // Duration for timeouts

	"go.mongodb.org/mongo-driver/v2/bson"           // Index key documents
	"go.mongodb.org/mongo-driver/v2/mongo"          // MongoDB driver
	"go.mongodb.org/mongo-driver/v2/mongo/options"  // MongoDB options
	"go.mongodb.org/mongo-driver/v2/mongo/readpref" // MongoDB read preference
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "skillswap"

// Client wraps mongo.Client and exposes collections.
type Client struct {
	// client is the underlying MongoDB connection (thread-safe, can be reused)
	client *mongo.Client

	// db is the configured database; all collections live here
	db *mongo.Database
}

// New connects to MongoDB and returns a Client bound to database name.
func New(ctx context.Context, mongoURI, name string) (*Client, error) {
	if name == "" {
		name = DefaultDatabase
	}

	// SetConnectTimeout: fail fast if MongoDB is unreachable
	opts := options.Client().
		ApplyURI(mongoURI).
		SetConnectTimeout(10 * time.Second)

	// This doesn't actually connect yet, just creates the client
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// If ping doesn't complete in 5 seconds, fail
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Ping MongoDB to verify connection is working
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(name),
	}, nil
}

// UsersCollection returns the users collection.
func (c *Client) UsersCollection() *mongo.Collection {
	return c.db.Collection("users")
}

// SessionsCollection returns the sessions collection.
func (c *Client) SessionsCollection() *mongo.Collection {
	return c.db.Collection("sessions")
}

// RatingsCollection returns the ratings collection.
func (c *Client) RatingsCollection() *mongo.Collection {
	return c.db.Collection("ratings")
}

// MessagesCollection returns the messages collection.
func (c *Client) MessagesCollection() *mongo.Collection {
	return c.db.Collection("messages")
}

// ChatsCollection returns the chats collection (one document per user pair).
func (c *Client) ChatsCollection() *mongo.Collection {
	return c.db.Collection("chats")
}

// Ping checks the primary is reachable; used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// CreateIndexes creates the indexes every store relies on. The unique
// indexes are the authoritative guard for invariants the application only
// checks optimistically (one account per email, one rating per session and
// rater).
func (c *Client) CreateIndexes(ctx context.Context) error {
	// ===== USERS =====
	// Unique email: prevents duplicate registration
	_, err := c.UsersCollection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	// ===== SESSIONS =====
	// ListSessionsForUser queries by either participant, optionally by status
	_, err = c.SessionsCollection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "proposer_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "partner_id", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	// ===== RATINGS =====
	_, err = c.RatingsCollection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// At most one rating per (session, rater); inserts racing past the
			// application-level check fail with a duplicate key error
			Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "rater_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Used by ListRatingsForUser and SummarizeRatings
			Keys: bson.D{{Key: "rated_user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create rating indexes: %w", err)
	}

	// ===== MESSAGES =====
	_, err = c.MessagesCollection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// GetMessageHistory: all messages of one thread, newest first
			Keys: bson.D{{Key: "chat_id", Value: 1}, {Key: "sent_at", Value: -1}},
		},
		{
			// MarkRead and CountUnread
			Keys: bson.D{{Key: "chat_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "read", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}

	// ===== CHATS =====
	// GetRecentChats: threads of a participant ordered by activity
	_, err = c.ChatsCollection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "participants", Value: 1}, {Key: "last_message_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create chat indexes: %w", err)
	}

	return nil
}
