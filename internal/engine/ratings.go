package engine

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/logger"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/metrics"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	minScore     = 1
	maxScore     = 5
	maxReviewLen = 1000
)

// RatingInput is one participant's rating of the other for a session.
type RatingInput struct {
	SessionID   bson.ObjectID
	RaterID     bson.ObjectID
	RatedUserID bson.ObjectID
	Score       int
	Review      string
}

// aggregate is the rounded mean of a rating summary, one decimal place.
func aggregate(sum data.RatingSummary) float64 {
	if sum.Count == 0 {
		return 0
	}
	return math.Round(float64(sum.Sum)/float64(sum.Count)*10) / 10
}

// SubmitRating stores a rating for a completed session and recomputes the
// rated user's aggregate from all of their ratings.
//
// If the rating is stored but the aggregate write fails, the stored rating
// is returned together with a dependency error wrapping ErrAggregateStale.
func (e *Engine) SubmitRating(ctx context.Context, in RatingInput) (*data.Rating, error) {
	const op = "SubmitRating"

	review := strings.TrimSpace(in.Review)
	switch {
	case in.Score < minScore || in.Score > maxScore:
		return nil, validationf(op, "score must be between %d and %d", minScore, maxScore)
	case utf8.RuneCountInString(review) > maxReviewLen:
		return nil, validationf(op, "review must be at most %d characters", maxReviewLen)
	case in.RaterID == in.RatedUserID:
		return nil, validationf(op, "cannot rate yourself")
	}

	s, err := e.sessions.GetSessionByID(ctx, in.SessionID)
	if err != nil {
		return nil, storeErr(op, "session", err)
	}
	other, ok := s.OtherParticipant(in.RaterID)
	if !ok {
		return nil, permission(op, "only participants can rate a session")
	}
	if in.RatedUserID != other {
		return nil, validationf(op, "rated user must be the other participant of the session")
	}
	if s.Status != data.StatusCompleted {
		return nil, conflict(op, "only completed sessions can be rated; session is "+string(s.Status), s.Status)
	}

	// Early exit only; the unique index is what enforces one rating
	rated, err := e.ratings.HasRated(ctx, in.SessionID, in.RaterID)
	if err != nil {
		return nil, storeErr(op, "rating", err)
	}
	if rated {
		return nil, conflict(op, "session already rated by this user", s.Status)
	}

	r, err := e.ratings.CreateRating(ctx, &data.Rating{
		SessionID:   in.SessionID,
		RaterID:     in.RaterID,
		RatedUserID: in.RatedUserID,
		Score:       in.Score,
		Review:      review,
		CreatedAt:   e.now().UTC(),
	})
	if errors.Is(err, data.ErrDuplicate) {
		return nil, conflict(op, "session already rated by this user", s.Status)
	}
	if err != nil {
		return nil, storeErr(op, "rating", err)
	}
	metrics.RecordRatingSubmitted()

	if _, _, err := e.recompute(ctx, in.RatedUserID); err != nil {
		metrics.RecordAggregateFailure()
		e.log.Error(ctx, "rating stored but aggregate not updated",
			logger.String("rating_id", r.ID.Hex()),
			logger.String("user_id", in.RatedUserID.Hex()),
			logger.Error(err))
		return r, &Error{
			Kind: ErrDependency,
			Op:   op,
			Msg:  "rating stored; aggregate update failed",
			Err:  errors.Join(ErrAggregateStale, err),
		}
	}
	return r, nil
}

// recompute rebuilds and stores userID's aggregate from the full rating set.
func (e *Engine) recompute(ctx context.Context, userID bson.ObjectID) (float64, int, error) {
	sum, err := e.ratings.SummarizeRatings(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	rating := aggregate(sum)
	if err := e.users.UpdateRating(ctx, userID, rating, sum.Count); err != nil {
		return 0, 0, err
	}
	return rating, sum.Count, nil
}

// RecomputeUserRating rebuilds a user's aggregate rating from every rating
// they received and returns the updated profile.
func (e *Engine) RecomputeUserRating(ctx context.Context, userID bson.ObjectID) (*data.User, error) {
	const op = "RecomputeUserRating"

	if _, err := e.users.GetUserByID(ctx, userID); err != nil {
		return nil, storeErr(op, "user", err)
	}
	if _, _, err := e.recompute(ctx, userID); err != nil {
		return nil, storeErr(op, "user", err)
	}
	u, err := e.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeErr(op, "user", err)
	}
	return publicUser(u), nil
}

// GetUserRatings returns the ratings a user received, newest first.
func (e *Engine) GetUserRatings(ctx context.Context, userID bson.ObjectID) ([]*data.Rating, error) {
	const op = "GetUserRatings"

	if _, err := e.users.GetUserByID(ctx, userID); err != nil {
		return nil, storeErr(op, "user", err)
	}
	ratings, err := e.ratings.ListRatingsForUser(ctx, userID)
	if err != nil {
		return nil, storeErr(op, "ratings", err)
	}
	return ratings, nil
}
