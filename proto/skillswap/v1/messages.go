package skillswapv1

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Auth

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (x *RegisterRequest) GetEmail() string {
	if x == nil {
		return ""
	}
	return x.Email
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (x *LoginRequest) GetEmail() string {
	if x == nil {
		return ""
	}
	return x.Email
}

type AuthResponse struct {
	Token     string                 `json:"token"`
	UserId    string                 `json:"user_id"`
	ExpiresAt *timestamppb.Timestamp `json:"expires_at,omitempty"`
}

// Profiles and skills

type Skill struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Level       string                 `json:"level"`
	AddedAt     *timestamppb.Timestamp `json:"added_at,omitempty"`
}

type Profile struct {
	UserId        string                 `json:"user_id"`
	Email         string                 `json:"email,omitempty"`
	DisplayName   string                 `json:"display_name"`
	Bio           string                 `json:"bio,omitempty"`
	PhotoUrl      string                 `json:"photo_url,omitempty"`
	SkillsToTeach []*Skill               `json:"skills_to_teach"`
	SkillsToLearn []*Skill               `json:"skills_to_learn"`
	Rating        float64                `json:"rating"`
	TotalRatings  int32                  `json:"total_ratings"`
	CreatedAt     *timestamppb.Timestamp `json:"created_at,omitempty"`
}

// GetProfileRequest with an empty UserId returns the caller's own profile.
type GetProfileRequest struct {
	UserId string `json:"user_id,omitempty"`
}

// UpdateProfileRequest leaves nil fields unchanged.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	PhotoUrl    *string `json:"photo_url,omitempty"`
}

// AddSkillRequest.Type is "teach" or "learn".
type AddSkillRequest struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Level       string `json:"level,omitempty"`
}

type RemoveSkillRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// SearchBySkillRequest.Type "learn" finds teachers; anything else finds
// learners.
type SearchBySkillRequest struct {
	Query string `json:"query"`
	Type  string `json:"type,omitempty"`
}

type SearchBySkillResponse struct {
	Users []*Profile `json:"users"`
}

// Matches

type Match struct {
	User            *Profile `json:"user"`
	Score           int32    `json:"score"`
	TheyCanTeach    []string `json:"they_can_teach"`
	TheyWantToLearn []string `json:"they_want_to_learn"`
}

type ListMatchesResponse struct {
	Matches []*Match `json:"matches"`
}

// Sessions

type ProposeSessionRequest struct {
	PartnerEmail string `json:"partner_email"`
	Skill        string `json:"skill"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Notes        string `json:"notes,omitempty"`
}

// RespondToSessionRequest.Action is "confirm" or "reject".
type RespondToSessionRequest struct {
	SessionId string `json:"session_id"`
	Action    string `json:"action"`
}

// SessionRequest addresses a single session.
type SessionRequest struct {
	SessionId string `json:"session_id"`
}

type ListSessionsRequest struct {
	Status string `json:"status,omitempty"`
}

type Session struct {
	Id           string                 `json:"id"`
	ProposerId   string                 `json:"proposer_id"`
	PartnerId    string                 `json:"partner_id"`
	Skill        string                 `json:"skill"`
	ProposedDate string                 `json:"proposed_date"`
	ProposedTime string                 `json:"proposed_time"`
	ScheduledAt  *timestamppb.Timestamp `json:"scheduled_at,omitempty"`
	Notes        string                 `json:"notes,omitempty"`
	Status       string                 `json:"status"`
	CreatedAt    *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt    *timestamppb.Timestamp `json:"updated_at,omitempty"`
	RespondedAt  *timestamppb.Timestamp `json:"responded_at,omitempty"`
	CancelledAt  *timestamppb.Timestamp `json:"cancelled_at,omitempty"`
	CancelledBy  string                 `json:"cancelled_by,omitempty"`
	CompletedAt  *timestamppb.Timestamp `json:"completed_at,omitempty"`

	// Set on reads: the caller's role and the other participant.
	Role    string   `json:"role,omitempty"`
	Partner *Profile `json:"partner,omitempty"`
}

type ListSessionsResponse struct {
	Sessions []*Session `json:"sessions"`
}

// Ratings

type SubmitRatingRequest struct {
	SessionId   string `json:"session_id"`
	RatedUserId string `json:"rated_user_id"`
	Score       int32  `json:"score"`
	Review      string `json:"review,omitempty"`
}

type Rating struct {
	Id          string                 `json:"id"`
	SessionId   string                 `json:"session_id"`
	RaterId     string                 `json:"rater_id"`
	RatedUserId string                 `json:"rated_user_id"`
	Score       int32                  `json:"score"`
	Review      string                 `json:"review,omitempty"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
}

// SubmitRatingResponse.AggregateStale reports a stored rating whose
// aggregate update failed; the server reconciles it on a later rating or
// recompute.
type SubmitRatingResponse struct {
	Rating         *Rating `json:"rating"`
	AggregateStale bool    `json:"aggregate_stale,omitempty"`
}

type GetUserRatingsRequest struct {
	UserId string `json:"user_id"`
}

type GetUserRatingsResponse struct {
	Ratings      []*Rating `json:"ratings"`
	Rating       float64   `json:"rating"`
	TotalRatings int32     `json:"total_ratings"`
}

// Chat

type SendMessageRequest struct {
	ReceiverId string `json:"receiver_id"`
	Content    string `json:"content"`
}

type ChatMessage struct {
	Id         string                 `json:"id"`
	ChatId     string                 `json:"chat_id"`
	SenderId   string                 `json:"sender_id"`
	ReceiverId string                 `json:"receiver_id"`
	Content    string                 `json:"content"`
	Read       bool                   `json:"read"`
	SentAt     *timestamppb.Timestamp `json:"sent_at,omitempty"`
}

type GetChatHistoryRequest struct {
	PartnerId string `json:"partner_id"`
	Limit     int32  `json:"limit,omitempty"`
}

type ListChatsRequest struct {
	Limit int32 `json:"limit,omitempty"`
}

type ChatSummary struct {
	ChatId        string                 `json:"chat_id"`
	PartnerId     string                 `json:"partner_id"`
	PartnerName   string                 `json:"partner_name,omitempty"`
	LastMessage   string                 `json:"last_message"`
	LastMessageAt *timestamppb.Timestamp `json:"last_message_at,omitempty"`
	UnreadCount   int64                  `json:"unread_count"`
}

type MarkChatReadRequest struct {
	PartnerId string `json:"partner_id"`
}

type MarkChatReadResponse struct {
	Updated int64 `json:"updated"`
}
