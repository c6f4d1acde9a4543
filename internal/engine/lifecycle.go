package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/logger"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/metrics"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Action is a request to move a session along the state machine.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionReject   Action = "reject"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

// Role is the caller's side of a session.
type Role string

const (
	RoleProposer Role = "proposer"
	RolePartner  Role = "partner"
)

const (
	maxSkillLen = 100
	maxNotesLen = 1000

	dateLayout = "2006-01-02"
)

var timeLayouts = []string{"15:04", "15:04:05"}

// transitions is the complete state machine: from-status × action →
// to-status. Anything absent is rejected.
var transitions = map[data.SessionStatus]map[Action]data.SessionStatus{
	data.StatusPending: {
		ActionConfirm: data.StatusConfirmed,
		ActionReject:  data.StatusRejected,
		ActionCancel:  data.StatusCancelled,
	},
	data.StatusConfirmed: {
		ActionComplete: data.StatusCompleted,
		ActionCancel:   data.StatusCancelled,
	},
}

// partnerOnly lists the actions the proposer may never take.
var partnerOnly = map[Action]bool{
	ActionConfirm: true,
	ActionReject:  true,
}

// nextStatus decides the outcome of actor applying a to s. Checks run in a
// fixed order: participation, role, then the transition table.
func nextStatus(op string, s *data.Session, actor bson.ObjectID, a Action) (data.SessionStatus, error) {
	if !s.HasParticipant(actor) {
		return "", permission(op, "access denied")
	}
	if partnerOnly[a] && actor != s.PartnerID {
		return "", permission(op, fmt.Sprintf("only the partner can %s a session", a))
	}
	to, ok := transitions[s.Status][a]
	if !ok {
		return "", conflict(op, fmt.Sprintf("cannot %s a session that is %s", a, s.Status), s.Status)
	}
	return to, nil
}

func roleOf(s *data.Session, id bson.ObjectID) Role {
	if s.ProposerID == id {
		return RoleProposer
	}
	return RolePartner
}

// ProposeInput is the raw proposal as received from the caller.
type ProposeInput struct {
	ProposerID   bson.ObjectID
	PartnerEmail string
	Skill        string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM or HH:MM:SS
	Notes        string
}

func (e *Engine) parseWhen(op, date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, date, e.loc)
	if err != nil {
		return time.Time{}, validationf(op, "date %q must be YYYY-MM-DD", date)
	}
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, e.loc), nil
	}
	return time.Time{}, validationf(op, "time %q must be HH:MM", clock)
}

// ProposeSession creates a pending session from the proposer to the user
// registered under in.PartnerEmail. Nothing is written unless every check
// passes.
func (e *Engine) ProposeSession(ctx context.Context, in ProposeInput) (*data.Session, error) {
	const op = "ProposeSession"

	skill := strings.TrimSpace(in.Skill)
	notes := strings.TrimSpace(in.Notes)
	date := strings.TrimSpace(in.Date)
	clock := strings.TrimSpace(in.Time)

	switch {
	case strings.TrimSpace(in.PartnerEmail) == "":
		return nil, validationf(op, "partner email is required")
	case skill == "":
		return nil, validationf(op, "skill is required")
	case date == "":
		return nil, validationf(op, "date is required")
	case clock == "":
		return nil, validationf(op, "time is required")
	case utf8.RuneCountInString(skill) > maxSkillLen:
		return nil, validationf(op, "skill must be at most %d characters", maxSkillLen)
	case utf8.RuneCountInString(notes) > maxNotesLen:
		return nil, validationf(op, "notes must be at most %d characters", maxNotesLen)
	}

	when, err := e.parseWhen(op, date, clock)
	if err != nil {
		return nil, err
	}

	partner, err := e.users.GetUserByEmail(ctx, in.PartnerEmail)
	if err != nil {
		return nil, storeErr(op, "partner", err)
	}
	if partner.ID == in.ProposerID {
		return nil, validationf(op, "cannot propose a session to yourself")
	}

	now := e.now()
	if !when.After(now) {
		return nil, validationf(op, "session time %s is not in the future", when.Format(time.RFC3339))
	}

	s := &data.Session{
		ProposerID:   in.ProposerID,
		PartnerID:    partner.ID,
		Skill:        skill,
		ProposedDate: date,
		ProposedTime: clock,
		ScheduledAt:  when.UTC(),
		Notes:        notes,
		Status:       data.StatusPending,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	created, err := e.sessions.CreateSession(ctx, s)
	if err != nil {
		return nil, storeErr(op, "session", err)
	}

	metrics.RecordSessionProposed()
	e.log.Info(ctx, "session proposed",
		logger.String("session_id", created.ID.Hex()),
		logger.String("proposer_id", in.ProposerID.Hex()),
		logger.String("partner_id", partner.ID.Hex()))
	return created, nil
}

// RespondToSession lets the partner confirm or reject a pending session.
func (e *Engine) RespondToSession(ctx context.Context, sessionID, callerID bson.ObjectID, action Action) (*data.Session, error) {
	const op = "RespondToSession"
	if action != ActionConfirm && action != ActionReject {
		return nil, validationf(op, "action must be %q or %q", ActionConfirm, ActionReject)
	}
	return e.transition(ctx, op, sessionID, callerID, action)
}

// CancelSession lets either participant cancel a pending or confirmed
// session.
func (e *Engine) CancelSession(ctx context.Context, sessionID, callerID bson.ObjectID) (*data.Session, error) {
	return e.transition(ctx, "CancelSession", sessionID, callerID, ActionCancel)
}

// CompleteSession lets either participant mark a confirmed session done.
func (e *Engine) CompleteSession(ctx context.Context, sessionID, callerID bson.ObjectID) (*data.Session, error) {
	return e.transition(ctx, "CompleteSession", sessionID, callerID, ActionComplete)
}

func (e *Engine) transition(ctx context.Context, op string, sessionID, callerID bson.ObjectID, a Action) (*data.Session, error) {
	s, err := e.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, storeErr(op, "session", err)
	}

	to, err := nextStatus(op, s, callerID, a)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	patch := data.SessionPatch{Status: to, UpdatedAt: now}
	switch a {
	case ActionConfirm, ActionReject:
		patch.RespondedAt = &now
	case ActionCancel:
		patch.CancelledAt = &now
		patch.CancelledBy = &callerID
	case ActionComplete:
		patch.CompletedAt = &now
	}

	updated, err := e.sessions.UpdateSessionStatus(ctx, sessionID, s.Status, patch)
	if errors.Is(err, data.ErrStale) {
		metrics.RecordTransitionConflict()
		// Report the status the other writer left behind
		current, rerr := e.sessions.GetSessionByID(ctx, sessionID)
		if rerr != nil {
			return nil, storeErr(op, "session", rerr)
		}
		return nil, conflict(op, fmt.Sprintf("cannot %s a session that is %s", a, current.Status), current.Status)
	}
	if err != nil {
		return nil, storeErr(op, "session", err)
	}

	metrics.RecordSessionTransition(string(s.Status), string(to))
	e.log.Info(ctx, "session transition",
		logger.String("session_id", sessionID.Hex()),
		logger.String("from", string(s.Status)),
		logger.String("to", string(to)),
		logger.String("actor_id", callerID.Hex()))

	if a == ActionConfirm {
		e.ensureThread(ctx, updated)
	}
	return updated, nil
}

// ensureThread opens a chat thread for the participants of a confirmed
// session. Failures are logged only.
func (e *Engine) ensureThread(ctx context.Context, s *data.Session) {
	if e.threads == nil {
		return
	}
	if _, err := e.threads.EnsureThread(ctx, s.ProposerID, s.PartnerID); err != nil {
		metrics.RecordThreadFailure()
		e.log.Warn(ctx, "chat thread not created",
			logger.String("session_id", s.ID.Hex()),
			logger.Error(err))
	}
}

// SessionView is a session as seen by one of its participants.
type SessionView struct {
	Session *data.Session
	Role    Role
	// Partner is the other participant's profile; nil if that user is gone.
	Partner *data.User
}

// GetSession returns a session to one of its participants.
func (e *Engine) GetSession(ctx context.Context, sessionID, callerID bson.ObjectID) (*SessionView, error) {
	const op = "GetSession"

	s, err := e.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, storeErr(op, "session", err)
	}
	other, ok := s.OtherParticipant(callerID)
	if !ok {
		return nil, permission(op, "access denied")
	}

	view := &SessionView{Session: s, Role: roleOf(s, callerID)}
	partner, err := e.users.GetUserByID(ctx, other)
	switch {
	case err == nil:
		view.Partner = publicUser(partner)
	case !errors.Is(err, data.ErrNotFound):
		return nil, storeErr(op, "user", err)
	}
	return view, nil
}

// ListSessions returns the caller's sessions, optionally filtered by a
// status name, ordered by scheduled time.
func (e *Engine) ListSessions(ctx context.Context, callerID bson.ObjectID, status string) ([]SessionView, error) {
	const op = "ListSessions"

	var st data.SessionStatus
	if strings.TrimSpace(status) != "" {
		var ok bool
		if st, ok = data.ParseSessionStatus(status); !ok {
			return nil, validationf(op, "unknown status %q", status)
		}
	}

	sessions, err := e.sessions.ListSessionsForUser(ctx, callerID, st)
	if err != nil {
		return nil, storeErr(op, "sessions", err)
	}

	partners := make(map[bson.ObjectID]*data.User)
	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		other, ok := s.OtherParticipant(callerID)
		if !ok {
			continue
		}
		p, seen := partners[other]
		if !seen {
			u, err := e.users.GetUserByID(ctx, other)
			if err != nil && !errors.Is(err, data.ErrNotFound) {
				return nil, storeErr(op, "user", err)
			}
			p = publicUser(u)
			partners[other] = p
		}
		views = append(views, SessionView{Session: s, Role: roleOf(s, callerID), Partner: p})
	}
	return views, nil
}
