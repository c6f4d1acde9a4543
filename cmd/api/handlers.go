package main

import (
	"context"
	"errors"
	"html"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/auth"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/normalize"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/logger"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/metrics"
	v1 "github.com/PaulBabatuyi/skillSwap-gRPC/proto/skillswap/v1"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	minPasswordLen    = 6
	maxDisplayNameLen = 100
	maxMessageLen     = 2000

	defaultHistoryLimit = 100
	maxHistoryLimit     = 500
	defaultChatsLimit   = 50
	maxChatsLimit       = 200
)

// storeStatus maps an error from a store called directly by a handler.
func (s *Server) storeStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, data.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, data.ErrDuplicate):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	}
	s.log.Error(ctx, "store call failed",
		logger.String("op", op),
		logger.String("request_id", requestID(ctx)),
		logger.Error(err))
	return status.Error(codes.Unavailable, "storage unavailable")
}

// clampLimit applies a default and an upper bound to a requested page size.
func clampLimit(requested int32, def, ceiling int64) int64 {
	n := int64(requested)
	if n <= 0 {
		return def
	}
	if n > ceiling {
		return ceiling
	}
	return n
}

// issueToken builds the auth response for user.
func (s *Server) issueToken(user *data.User) (*v1.AuthResponse, error) {
	token, expiresAt, err := s.auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to generate token: %v", err)
	}
	return &v1.AuthResponse{
		Token:     token,
		UserId:    user.ID.Hex(),
		ExpiresAt: timestamppb.New(expiresAt),
	}, nil
}

// Register handles user registration: validates input, hashes password,
// stores user, returns JWT token
func (s *Server) Register(ctx context.Context, req *v1.RegisterRequest) (*v1.AuthResponse, error) {
	email := normalize.Email(req.GetEmail())
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, status.Error(codes.InvalidArgument, "valid email is required")
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLen {
		return nil, status.Errorf(codes.InvalidArgument, "password must be at least %d characters", minPasswordLen)
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "display name is required")
	}
	if utf8.RuneCountInString(name) > maxDisplayNameLen {
		return nil, status.Errorf(codes.InvalidArgument, "display name must be at most %d characters", maxDisplayNameLen)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to hash password: %v", err)
	}

	user, err := s.users.CreateUser(ctx, email, hashed, name)
	if err != nil {
		if errors.Is(err, data.ErrDuplicate) {
			return nil, status.Error(codes.AlreadyExists, "email already registered")
		}
		return nil, s.storeStatus(ctx, "CreateUser", err)
	}

	s.log.Info(ctx, "user registered", logger.String("user_id", user.ID.Hex()))
	return s.issueToken(user)
}

// Login authenticates a user and returns a JWT token. Unknown emails and
// wrong passwords get the same answer.
func (s *Server) Login(ctx context.Context, req *v1.LoginRequest) (*v1.AuthResponse, error) {
	if normalize.Email(req.GetEmail()) == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, req.GetEmail())
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, status.Error(codes.Unauthenticated, "invalid credentials")
		}
		return nil, s.storeStatus(ctx, "GetUserByEmail", err)
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	return s.issueToken(user)
}

// SendMessage stores a message to another user and bumps their shared
// thread. Content is HTML-escaped before it is persisted.
func (s *Server) SendMessage(ctx context.Context, req *v1.SendMessageRequest) (*v1.ChatMessage, error) {
	sender, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	receiver, err := parseID("receiver_id", req.ReceiverId)
	if err != nil {
		return nil, err
	}
	if receiver == sender {
		return nil, status.Error(codes.InvalidArgument, "cannot message yourself")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, status.Error(codes.InvalidArgument, "content is required")
	}
	if utf8.RuneCountInString(content) > maxMessageLen {
		return nil, status.Errorf(codes.InvalidArgument, "content must be at most %d characters", maxMessageLen)
	}

	// Verify recipient exists before persisting
	if _, err := s.users.GetUserByID(ctx, receiver); err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "recipient not found")
		}
		return nil, s.storeStatus(ctx, "GetUserByID", err)
	}

	msg, err := s.msgs.SaveMessage(ctx, sender, receiver, html.EscapeString(content), s.now().UTC())
	if err != nil {
		if msg == nil {
			return nil, s.storeStatus(ctx, "SaveMessage", err)
		}
		// Message stored; only the thread summary lags behind
		s.log.Warn(ctx, "chat thread not updated",
			logger.String("chat_id", msg.ChatID),
			logger.Error(err))
	}

	metrics.RecordMessageSent()
	return toMessage(msg), nil
}

// GetChatHistory streams conversation history with the requested user,
// oldest message first.
func (s *Server) GetChatHistory(req *v1.GetChatHistoryRequest, stream grpc.ServerStreamingServer[v1.ChatMessage]) error {
	ctx := stream.Context()
	me, err := callerID(ctx)
	if err != nil {
		return err
	}
	partner, err := parseID("partner_id", req.PartnerId)
	if err != nil {
		return err
	}

	limit := clampLimit(req.Limit, defaultHistoryLimit, maxHistoryLimit)
	msgs, err := s.msgs.GetMessageHistory(ctx, me, partner, limit)
	if err != nil {
		return s.storeStatus(ctx, "GetMessageHistory", err)
	}

	for _, m := range msgs {
		if err := stream.Send(toMessage(m)); err != nil {
			return status.Errorf(codes.Internal, "failed to send message: %v", err)
		}
	}
	return nil
}

// ListChats streams the caller's threads, most recently active first, with
// the partner's name and the caller's unread count.
func (s *Server) ListChats(req *v1.ListChatsRequest, stream grpc.ServerStreamingServer[v1.ChatSummary]) error {
	ctx := stream.Context()
	me, err := callerID(ctx)
	if err != nil {
		return err
	}

	limit := clampLimit(req.Limit, defaultChatsLimit, maxChatsLimit)
	chats, err := s.msgs.GetRecentChats(ctx, me, limit)
	if err != nil {
		return s.storeStatus(ctx, "GetRecentChats", err)
	}

	for _, c := range chats {
		partnerID := c.Partner(me)
		summary := &v1.ChatSummary{
			ChatId:        c.ID,
			PartnerId:     partnerID.Hex(),
			LastMessage:   c.LastMessage,
			LastMessageAt: timestamppb.New(c.LastMessageAt),
		}

		partner, err := s.users.GetUserByID(ctx, partnerID)
		switch {
		case err == nil:
			summary.PartnerName = partner.DisplayName
		case !errors.Is(err, data.ErrNotFound):
			return s.storeStatus(ctx, "GetUserByID", err)
		}

		if summary.UnreadCount, err = s.msgs.CountUnread(ctx, c.ID, me); err != nil {
			return s.storeStatus(ctx, "CountUnread", err)
		}

		if err := stream.Send(summary); err != nil {
			return status.Errorf(codes.Internal, "failed to send chat: %v", err)
		}
	}
	return nil
}

// MarkChatRead marks every message the partner sent the caller as read.
func (s *Server) MarkChatRead(ctx context.Context, req *v1.MarkChatReadRequest) (*v1.MarkChatReadResponse, error) {
	me, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	partner, err := parseID("partner_id", req.PartnerId)
	if err != nil {
		return nil, err
	}

	n, err := s.msgs.MarkRead(ctx, me, partner)
	if err != nil {
		return nil, s.storeStatus(ctx, "MarkRead", err)
	}
	return &v1.MarkChatReadResponse{Updated: n}, nil
}
