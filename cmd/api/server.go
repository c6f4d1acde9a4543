package main

import (
	"context"
	"time"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/auth"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/engine"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/logger"
	v1 "github.com/PaulBabatuyi/skillSwap-gRPC/proto/skillswap/v1"

	"go.mongodb.org/mongo-driver/v2/bson"
	"google.golang.org/grpc"
)

// accountStore is the subset of the user store the auth and chat handlers
// need directly; everything else goes through the engine.
type accountStore interface {
	CreateUser(ctx context.Context, email, hashedPassword, displayName string) (*data.User, error)
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
	GetUserByID(ctx context.Context, id bson.ObjectID) (*data.User, error)
}

// chatStore is the subset of the messages store used by the chat handlers.
type chatStore interface {
	SaveMessage(ctx context.Context, senderID, receiverID bson.ObjectID, content string, sentAt time.Time) (*data.Message, error)
	GetMessageHistory(ctx context.Context, user1, user2 bson.ObjectID, limit int64) ([]*data.Message, error)
	GetRecentChats(ctx context.Context, userID bson.ObjectID, limit int64) ([]*data.Chat, error)
	CountUnread(ctx context.Context, chatID string, userID bson.ObjectID) (int64, error)
	MarkRead(ctx context.Context, userID, partnerID bson.ObjectID) (int64, error)
}

// Server implements the skill-exchange service and contains references to
// the engine, the stores it talks to directly and auth logic.
type Server struct {
	v1.UnimplementedSkillSwapServiceServer

	engine *engine.Engine
	users  accountStore
	msgs   chatStore
	auth   *auth.JWTManager
	log    logger.Logger
	now    func() time.Time
}

// newServer returns a ready-to-use Server.
func newServer(eng *engine.Engine, users accountStore, msgs chatStore, authMgr *auth.JWTManager, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		engine: eng,
		users:  users,
		msgs:   msgs,
		auth:   authMgr,
		log:    log,
		now:    time.Now,
	}
}

// registerService registers the SkillSwapService on the given gRPC server.
func registerService(s *grpc.Server, srv *Server) {
	v1.RegisterSkillSwapServiceServer(s, srv)
}
