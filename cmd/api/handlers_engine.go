package main

import (
	"context"
	"errors"
	"strings"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/engine"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/logger"
	v1 "github.com/PaulBabatuyi/skillSwap-gRPC/proto/skillswap/v1"

	"go.mongodb.org/mongo-driver/v2/bson"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// skillKind validates the teach/learn selector of a skill request.
func skillKind(s string) (data.SkillKind, error) {
	k := data.SkillKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", status.Errorf(codes.InvalidArgument, "type must be %q or %q", data.SkillsToTeach, data.SkillsToLearn)
	}
	return k, nil
}

// targetUser resolves an optional user id, defaulting to the caller.
func targetUser(ctx context.Context, hex string) (target, caller bson.ObjectID, err error) {
	if caller, err = callerID(ctx); err != nil {
		return
	}
	if hex == "" {
		return caller, caller, nil
	}
	target, err = parseID("user_id", hex)
	return
}

// GetProfile returns the requested profile, or the caller's own.
func (s *Server) GetProfile(ctx context.Context, req *v1.GetProfileRequest) (*v1.Profile, error) {
	target, me, err := targetUser(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	u, err := s.engine.GetProfile(ctx, target)
	if err != nil {
		return nil, toStatus(err)
	}
	return toProfile(u, target == me), nil
}

// UpdateProfile changes the caller's display name, bio or photo.
func (s *Server) UpdateProfile(ctx context.Context, req *v1.UpdateProfileRequest) (*v1.Profile, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.engine.UpdateProfile(ctx, me, data.ProfilePatch{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		PhotoURL:    req.PhotoUrl,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return toProfile(u, true), nil
}

// AddSkill appends a skill to one of the caller's lists.
func (s *Server) AddSkill(ctx context.Context, req *v1.AddSkillRequest) (*v1.Profile, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	kind, err := skillKind(req.Type)
	if err != nil {
		return nil, err
	}
	u, err := s.engine.AddSkill(ctx, me, kind, engine.SkillInput{
		Name:        req.Name,
		Description: req.Description,
		Level:       req.Level,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return toProfile(u, true), nil
}

// RemoveSkill drops a skill from one of the caller's lists.
func (s *Server) RemoveSkill(ctx context.Context, req *v1.RemoveSkillRequest) (*v1.Profile, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	kind, err := skillKind(req.Type)
	if err != nil {
		return nil, err
	}
	u, err := s.engine.RemoveSkill(ctx, me, kind, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return toProfile(u, true), nil
}

// SearchBySkill finds other users by a skill they teach (type "learn") or
// want to learn.
func (s *Server) SearchBySkill(ctx context.Context, req *v1.SearchBySkillRequest) (*v1.SearchBySkillResponse, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	kind := data.SkillsToTeach
	if strings.EqualFold(strings.TrimSpace(req.Type), string(data.SkillsToLearn)) {
		kind = data.SkillsToLearn
	}

	users, err := s.engine.SearchBySkill(ctx, me, req.Query, kind)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &v1.SearchBySkillResponse{Users: make([]*v1.Profile, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, toProfile(u, false))
	}
	return resp, nil
}

// ListMatches returns the caller's ranked matches.
func (s *Server) ListMatches(ctx context.Context, _ *emptypb.Empty) (*v1.ListMatchesResponse, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := s.engine.ComputeMatches(ctx, me)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &v1.ListMatchesResponse{Matches: make([]*v1.Match, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, &v1.Match{
			User:            toProfile(m.User, false),
			Score:           int32(m.Score),
			TheyCanTeach:    m.TheyCanTeach,
			TheyWantToLearn: m.TheyWantToLearn,
		})
	}
	return resp, nil
}

// ProposeSession creates a pending session with the partner named by email.
func (s *Server) ProposeSession(ctx context.Context, req *v1.ProposeSessionRequest) (*v1.Session, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	sess, err := s.engine.ProposeSession(ctx, engine.ProposeInput{
		ProposerID:   me,
		PartnerEmail: req.PartnerEmail,
		Skill:        req.Skill,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	out := toSession(sess)
	out.Role = string(engine.RoleProposer)
	return out, nil
}

// RespondToSession confirms or rejects a pending session as its partner.
func (s *Server) RespondToSession(ctx context.Context, req *v1.RespondToSessionRequest) (*v1.Session, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID("session_id", req.SessionId)
	if err != nil {
		return nil, err
	}
	action := engine.Action(strings.ToLower(strings.TrimSpace(req.Action)))
	if action != engine.ActionConfirm && action != engine.ActionReject {
		return nil, status.Errorf(codes.InvalidArgument, "action must be %q or %q", engine.ActionConfirm, engine.ActionReject)
	}

	sess, err := s.engine.RespondToSession(ctx, id, me, action)
	if err != nil {
		return nil, toStatus(err)
	}
	return toSession(sess), nil
}

// CancelSession cancels a pending or confirmed session.
func (s *Server) CancelSession(ctx context.Context, req *v1.SessionRequest) (*v1.Session, error) {
	return s.sessionCall(ctx, req, s.engine.CancelSession)
}

// CompleteSession marks a confirmed session completed.
func (s *Server) CompleteSession(ctx context.Context, req *v1.SessionRequest) (*v1.Session, error) {
	return s.sessionCall(ctx, req, s.engine.CompleteSession)
}

func (s *Server) sessionCall(ctx context.Context, req *v1.SessionRequest, call func(context.Context, bson.ObjectID, bson.ObjectID) (*data.Session, error)) (*v1.Session, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID("session_id", req.SessionId)
	if err != nil {
		return nil, err
	}
	sess, err := call(ctx, id, me)
	if err != nil {
		return nil, toStatus(err)
	}
	return toSession(sess), nil
}

// GetSession returns one of the caller's sessions with the partner profile.
func (s *Server) GetSession(ctx context.Context, req *v1.SessionRequest) (*v1.Session, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID("session_id", req.SessionId)
	if err != nil {
		return nil, err
	}
	view, err := s.engine.GetSession(ctx, id, me)
	if err != nil {
		return nil, toStatus(err)
	}
	return toSessionView(*view), nil
}

// ListSessions returns the caller's sessions, optionally by status.
func (s *Server) ListSessions(ctx context.Context, req *v1.ListSessionsRequest) (*v1.ListSessionsResponse, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.engine.ListSessions(ctx, me, req.Status)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &v1.ListSessionsResponse{Sessions: make([]*v1.Session, 0, len(views))}
	for _, v := range views {
		resp.Sessions = append(resp.Sessions, toSessionView(v))
	}
	return resp, nil
}

// SubmitRating rates the other participant of a completed session. A rating
// that was stored but whose aggregate update failed is still returned, with
// AggregateStale set.
func (s *Server) SubmitRating(ctx context.Context, req *v1.SubmitRatingRequest) (*v1.SubmitRatingResponse, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	sessionID, err := parseID("session_id", req.SessionId)
	if err != nil {
		return nil, err
	}
	rated, err := parseID("rated_user_id", req.RatedUserId)
	if err != nil {
		return nil, err
	}

	r, err := s.engine.SubmitRating(ctx, engine.RatingInput{
		SessionID:   sessionID,
		RaterID:     me,
		RatedUserID: rated,
		Score:       int(req.Score),
		Review:      req.Review,
	})
	if err != nil {
		if r != nil && errors.Is(err, engine.ErrAggregateStale) {
			s.log.Warn(ctx, "rating accepted with stale aggregate",
				logger.String("rating_id", r.ID.Hex()),
				logger.String("request_id", requestID(ctx)))
			return &v1.SubmitRatingResponse{Rating: toRating(r), AggregateStale: true}, nil
		}
		return nil, toStatus(err)
	}
	return &v1.SubmitRatingResponse{Rating: toRating(r)}, nil
}

// GetUserRatings returns the ratings a user received with their aggregate.
func (s *Server) GetUserRatings(ctx context.Context, req *v1.GetUserRatingsRequest) (*v1.GetUserRatingsResponse, error) {
	target, _, err := targetUser(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	ratings, err := s.engine.GetUserRatings(ctx, target)
	if err != nil {
		return nil, toStatus(err)
	}
	u, err := s.engine.GetProfile(ctx, target)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &v1.GetUserRatingsResponse{
		Ratings:      make([]*v1.Rating, 0, len(ratings)),
		Rating:       u.Rating,
		TotalRatings: int32(u.TotalRatings),
	}
	for _, r := range ratings {
		resp.Ratings = append(resp.Ratings, toRating(r))
	}
	return resp, nil
}

// RecomputeUserRating rebuilds a user's aggregate from their ratings.
func (s *Server) RecomputeUserRating(ctx context.Context, req *v1.GetUserRatingsRequest) (*v1.Profile, error) {
	target, me, err := targetUser(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	u, err := s.engine.RecomputeUserRating(ctx, target)
	if err != nil {
		return nil, toStatus(err)
	}
	return toProfile(u, target == me), nil
}
