package data

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SkillKind selects one of the two skill lists on a user.
type SkillKind string

const (
	SkillsToTeach SkillKind = "teach"
	SkillsToLearn SkillKind = "learn"
)

// Valid reports whether k names a known skill list.
func (k SkillKind) Valid() bool { return k == SkillsToTeach || k == SkillsToLearn }

// field returns the document field holding the list.
func (k SkillKind) field() string {
	if k == SkillsToLearn {
		return "skills_to_learn"
	}
	return "skills_to_teach"
}

// Skill is one entry of a user's teach or learn list. Key is the normalized
// name and is unique within a list.
type Skill struct {
	Name        string    `bson:"name"`
	Key         string    `bson:"key"`
	Description string    `bson:"description"`
	Level       string    `bson:"level"`
	AddedAt     time.Time `bson:"added_at"`
}

// User maps to users collection (identity, profile, skills, aggregate rating)
type User struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Email         string        `bson:"email"`
	Password      string        `bson:"password"`
	DisplayName   string        `bson:"display_name"`
	Bio           string        `bson:"bio"`
	PhotoURL      string        `bson:"photo_url"`
	SkillsToTeach []Skill       `bson:"skills_to_teach"`
	SkillsToLearn []Skill       `bson:"skills_to_learn"`
	Rating        float64       `bson:"rating"`
	TotalRatings  int           `bson:"total_ratings"`
	CreatedAt     time.Time     `bson:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"`
}

// Skills returns the list selected by kind.
func (u *User) Skills(kind SkillKind) []Skill {
	if kind == SkillsToLearn {
		return u.SkillsToLearn
	}
	return u.SkillsToTeach
}

// ProfilePatch carries the optional profile fields of an update; nil means
// leave unchanged.
type ProfilePatch struct {
	DisplayName *string
	Bio         *string
	PhotoURL    *string
}

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusConfirmed SessionStatus = "confirmed"
	StatusRejected  SessionStatus = "rejected"
	StatusCancelled SessionStatus = "cancelled"
	StatusCompleted SessionStatus = "completed"
)

// ParseSessionStatus validates a status name.
func ParseSessionStatus(s string) (SessionStatus, bool) {
	switch st := SessionStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted:
		return st, true
	}
	return "", false
}

// Terminal reports whether no transition may leave the status.
func (s SessionStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// Session maps to sessions collection
type Session struct {
	ID           bson.ObjectID  `bson:"_id,omitempty"`
	ProposerID   bson.ObjectID  `bson:"proposer_id"`
	PartnerID    bson.ObjectID  `bson:"partner_id"`
	Skill        string         `bson:"skill"`
	ProposedDate string         `bson:"proposed_date"`
	ProposedTime string         `bson:"proposed_time"`
	ScheduledAt  time.Time      `bson:"scheduled_at"`
	Notes        string         `bson:"notes"`
	Status       SessionStatus  `bson:"status"`
	CreatedAt    time.Time      `bson:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at"`
	RespondedAt  *time.Time     `bson:"responded_at,omitempty"`
	CancelledAt  *time.Time     `bson:"cancelled_at,omitempty"`
	CancelledBy  *bson.ObjectID `bson:"cancelled_by,omitempty"`
	CompletedAt  *time.Time     `bson:"completed_at,omitempty"`
}

// HasParticipant reports whether id is the proposer or the partner.
func (s *Session) HasParticipant(id bson.ObjectID) bool {
	return s.ProposerID == id || s.PartnerID == id
}

// OtherParticipant returns the participant that is not id.
func (s *Session) OtherParticipant(id bson.ObjectID) (bson.ObjectID, bool) {
	switch id {
	case s.ProposerID:
		return s.PartnerID, true
	case s.PartnerID:
		return s.ProposerID, true
	}
	return bson.ObjectID{}, false
}

// SessionPatch is applied by a status transition. Status and UpdatedAt are
// always written; the pointer fields only when set.
type SessionPatch struct {
	Status      SessionStatus
	UpdatedAt   time.Time
	RespondedAt *time.Time
	CancelledAt *time.Time
	CancelledBy *bson.ObjectID
	CompletedAt *time.Time
}

// Apply mutates s in place; used by stores that return the updated record.
func (p SessionPatch) Apply(s *Session) {
	s.Status = p.Status
	s.UpdatedAt = p.UpdatedAt
	if p.RespondedAt != nil {
		s.RespondedAt = p.RespondedAt
	}
	if p.CancelledAt != nil {
		s.CancelledAt = p.CancelledAt
	}
	if p.CancelledBy != nil {
		s.CancelledBy = p.CancelledBy
	}
	if p.CompletedAt != nil {
		s.CompletedAt = p.CompletedAt
	}
}

// Rating maps to ratings collection; (session_id, rater_id) is unique.
type Rating struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	SessionID   bson.ObjectID `bson:"session_id"`
	RaterID     bson.ObjectID `bson:"rater_id"`
	RatedUserID bson.ObjectID `bson:"rated_user_id"`
	Score       int           `bson:"score"`
	Review      string        `bson:"review"`
	CreatedAt   time.Time     `bson:"created_at"`
}

// RatingSummary is the full-set aggregate of a user's received ratings.
type RatingSummary struct {
	Sum   int `bson:"sum"`
	Count int `bson:"count"`
}

// Message maps to messages collection (sender, receiver, content, sent_at)
type Message struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	ChatID     string        `bson:"chat_id"`
	SenderID   bson.ObjectID `bson:"sender_id"`
	ReceiverID bson.ObjectID `bson:"receiver_id"`
	Content    string        `bson:"content"`
	Read       bool          `bson:"read"`
	SentAt     time.Time     `bson:"sent_at"`
	CreatedAt  time.Time     `bson:"created_at"`
}

// Chat maps to chats collection: one thread per unordered user pair.
type Chat struct {
	ID            string          `bson:"_id"`
	Participants  []bson.ObjectID `bson:"participants"`
	LastMessage   string          `bson:"last_message"`
	LastMessageAt time.Time       `bson:"last_message_at"`
	CreatedAt     time.Time       `bson:"created_at"`
}

// Partner returns the participant of the chat that is not id.
func (c *Chat) Partner(id bson.ObjectID) bson.ObjectID {
	for _, p := range c.Participants {
		if p != id {
			return p
		}
	}
	return id
}

// ChatID is the thread id for a pair of users, independent of order.
func ChatID(a, b bson.ObjectID) string {
	ids := []string{a.Hex(), b.Hex()}
	sort.Strings(ids)
	return ids[0] + "_" + ids[1]
}
