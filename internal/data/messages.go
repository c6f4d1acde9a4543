package data

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MessagesStore provides chat database operations over the messages and
// chats collections.
type MessagesStore struct {
	// coll is reference to "messages" collection in MongoDB
	coll *mongo.Collection
	// chats holds one thread document per user pair
	chats *mongo.Collection
}

// NewMessagesStore returns a MessagesStore using given collections.
func NewMessagesStore(coll, chats *mongo.Collection) *MessagesStore {
	return &MessagesStore{coll: coll, chats: chats}
}

// EnsureThread returns the chat thread between a and b, creating it if it
// does not exist yet. The upsert keyed by the deterministic chat id makes
// concurrent calls converge on one document.
func (m *MessagesStore) EnsureThread(ctx context.Context, a, b bson.ObjectID) (*Chat, error) {
	id := ChatID(a, b)
	now := time.Now().UTC()

	update := bson.M{"$setOnInsert": bson.M{
		"participants":    bson.A{a, b},
		"last_message":    "",
		"last_message_at": now,
		"created_at":      now,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var chat Chat
	err := m.chats.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&chat)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the insert race to a concurrent upsert; the thread exists now
		err = m.chats.FindOne(ctx, bson.M{"_id": id}).Decode(&chat)
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// SaveMessage inserts a message document, bumps the thread's last message
// and returns the saved record.
func (m *MessagesStore) SaveMessage(ctx context.Context, senderID, receiverID bson.ObjectID, content string, sentAt time.Time) (*Message, error) {
	msg := &Message{
		ChatID:     ChatID(senderID, receiverID),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		SentAt:     sentAt,
		CreatedAt:  time.Now().UTC(), // Server-side timestamp when saved
	}

	result, err := m.coll.InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = result.InsertedID.(bson.ObjectID)

	// Upsert the thread: created on first message, otherwise only the
	// last-message fields move
	update := bson.M{
		"$set": bson.M{
			"last_message":    content,
			"last_message_at": sentAt,
		},
		"$setOnInsert": bson.M{
			"participants": bson.A{senderID, receiverID},
			"created_at":   msg.CreatedAt,
		},
	}
	if _, err := m.chats.UpdateOne(ctx, bson.M{"_id": msg.ChatID}, update, options.UpdateOne().SetUpsert(true)); err != nil {
		return msg, err
	}

	return msg, nil
}

// GetMessageHistory returns recent messages between two users (ordered oldest→newest).
func (m *MessagesStore) GetMessageHistory(ctx context.Context, user1, user2 bson.ObjectID, limit int64) ([]*Message, error) {
	// Newest first so the limit keeps the most recent messages
	opts := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cursor, err := m.coll.Find(ctx, bson.M{"chat_id": ChatID(user1, user2)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	// Reverse: client expects chronological order, oldest message first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// GetRecentChats returns the user's threads, most recently active first.
func (m *MessagesStore) GetRecentChats(ctx context.Context, userID bson.ObjectID, limit int64) ([]*Chat, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "last_message_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := m.chats.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var chats []*Chat
	if err = cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// CountUnread counts messages in chatID addressed to userID not yet read.
func (m *MessagesStore) CountUnread(ctx context.Context, chatID string, userID bson.ObjectID) (int64, error) {
	return m.coll.CountDocuments(ctx, bson.M{
		"chat_id":     chatID,
		"receiver_id": userID,
		"read":        false,
	})
}

// MarkRead marks every message from partnerID to userID as read and returns
// how many changed.
func (m *MessagesStore) MarkRead(ctx context.Context, userID, partnerID bson.ObjectID) (int64, error) {
	res, err := m.coll.UpdateMany(ctx, bson.M{
		"chat_id":     ChatID(userID, partnerID),
		"receiver_id": userID,
		"read":        false,
	}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
