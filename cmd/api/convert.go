package main

import (
	"time"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/engine"
	v1 "github.com/PaulBabatuyi/skillSwap-gRPC/proto/skillswap/v1"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// optionalTime converts an unset time to a nil timestamp.
func optionalTime(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return timestamppb.New(*t)
}

func toSkills(in []data.Skill) []*v1.Skill {
	out := make([]*v1.Skill, 0, len(in))
	for _, s := range in {
		out = append(out, &v1.Skill{
			Name:        s.Name,
			Description: s.Description,
			Level:       s.Level,
			AddedAt:     timestamppb.New(s.AddedAt),
		})
	}
	return out
}

// toProfile renders a user; the email is only included for the owner.
func toProfile(u *data.User, self bool) *v1.Profile {
	if u == nil {
		return nil
	}
	p := &v1.Profile{
		UserId:        u.ID.Hex(),
		DisplayName:   u.DisplayName,
		Bio:           u.Bio,
		PhotoUrl:      u.PhotoURL,
		SkillsToTeach: toSkills(u.SkillsToTeach),
		SkillsToLearn: toSkills(u.SkillsToLearn),
		Rating:        u.Rating,
		TotalRatings:  int32(u.TotalRatings),
		CreatedAt:     timestamppb.New(u.CreatedAt),
	}
	if self {
		p.Email = u.Email
	}
	return p
}

func toSession(s *data.Session) *v1.Session {
	out := &v1.Session{
		Id:           s.ID.Hex(),
		ProposerId:   s.ProposerID.Hex(),
		PartnerId:    s.PartnerID.Hex(),
		Skill:        s.Skill,
		ProposedDate: s.ProposedDate,
		ProposedTime: s.ProposedTime,
		ScheduledAt:  timestamppb.New(s.ScheduledAt),
		Notes:        s.Notes,
		Status:       string(s.Status),
		CreatedAt:    timestamppb.New(s.CreatedAt),
		UpdatedAt:    timestamppb.New(s.UpdatedAt),
		RespondedAt:  optionalTime(s.RespondedAt),
		CancelledAt:  optionalTime(s.CancelledAt),
		CompletedAt:  optionalTime(s.CompletedAt),
	}
	if s.CancelledBy != nil {
		out.CancelledBy = s.CancelledBy.Hex()
	}
	return out
}

func toSessionView(v engine.SessionView) *v1.Session {
	out := toSession(v.Session)
	out.Role = string(v.Role)
	out.Partner = toProfile(v.Partner, false)
	return out
}

func toRating(r *data.Rating) *v1.Rating {
	return &v1.Rating{
		Id:          r.ID.Hex(),
		SessionId:   r.SessionID.Hex(),
		RaterId:     r.RaterID.Hex(),
		RatedUserId: r.RatedUserID.Hex(),
		Score:       int32(r.Score),
		Review:      r.Review,
		CreatedAt:   timestamppb.New(r.CreatedAt),
	}
}

func toMessage(m *data.Message) *v1.ChatMessage {
	return &v1.ChatMessage{
		Id:         m.ID.Hex(),
		ChatId:     m.ChatID,
		SenderId:   m.SenderID.Hex(),
		ReceiverId: m.ReceiverID.Hex(),
		Content:    m.Content,
		Read:       m.Read,
		SentAt:     timestamppb.New(m.SentAt),
	}
}
