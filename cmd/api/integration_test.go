package main

import (
	"context"
	"io"
	"net"
	"os"
	"testing"
	"time"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/auth"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data/memory"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/db"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/engine"
	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/middleware"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/logger"
	v1 "github.com/PaulBabatuyi/skillSwap-gRPC/proto/skillswap/v1"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

const bufSize = 1024 * 1024

// startBufServer serves a fully wired Server over bufconn with the same
// interceptor chain as main, and returns a connected client.
func startBufServer(t *testing.T, st stores) v1.SkillSwapServiceClient {
	t.Helper()

	jwtMgr := auth.NewJWTManager("test-secret", time.Hour)
	eng := engine.New(st, st, st, engine.WithThreads(st))
	srv := newServer(eng, st, st, jwtMgr, logger.Nop())

	limiterStore := middleware.NewLimiterStore(600, 20, time.Minute)
	t.Cleanup(limiterStore.Stop)

	// set up bufconn server
	lis := bufconn.Listen(bufSize)
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingUnaryInterceptor(logger.Nop()),
			middleware.RateLimitUnaryInterceptor(limiterStore, limitedMethods),
			authUnaryInterceptor(jwtMgr),
		),
		grpc.ChainStreamInterceptor(
			loggingStreamInterceptor(logger.Nop()),
			authStreamInterceptor(jwtMgr),
		),
	)
	registerService(s, srv)

	go func() {
		_ = s.Serve(lis)
	}()
	t.Cleanup(s.GracefulStop)

	// Dialer via bufconn
	dialer := func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufnet: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return v1.NewSkillSwapServiceClient(conn)
}

func withToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

// exerciseService drives the whole exchange flow over the wire.
func exerciseService(t *testing.T, client v1.SkillSwapServiceClient) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	suffix := time.Now().UTC().Format("20060102-150405.000000")
	annEmail := "ann-" + suffix + "@example.com"
	bobEmail := "bob-" + suffix + "@example.com"

	// Register
	ann, err := client.Register(ctx, &v1.RegisterRequest{Email: annEmail, Password: "testPass123", DisplayName: "Ann"})
	if err != nil {
		t.Fatalf("Register RPC failed: %v", err)
	}
	if ann.Token == "" || ann.UserId == "" {
		t.Fatalf("Register response missing token or user_id")
	}
	if _, err := client.Register(ctx, &v1.RegisterRequest{Email: bobEmail, Password: "testPass123", DisplayName: "Bob"}); err != nil {
		t.Fatalf("Register RPC failed: %v", err)
	}

	// Login
	bob, err := client.Login(ctx, &v1.LoginRequest{Email: bobEmail, Password: "testPass123"})
	if err != nil {
		t.Fatalf("Login RPC failed: %v", err)
	}

	// No token, no access
	_, err = client.ListMatches(ctx, &emptypb.Empty{})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}

	annCtx, bobCtx := withToken(ctx, ann.Token), withToken(ctx, bob.Token)

	for _, req := range []struct {
		ctx context.Context
		in  *v1.AddSkillRequest
	}{
		{annCtx, &v1.AddSkillRequest{Type: "teach", Name: "Go"}},
		{annCtx, &v1.AddSkillRequest{Type: "learn", Name: "Spanish"}},
		{bobCtx, &v1.AddSkillRequest{Type: "teach", Name: "spanish"}},
	} {
		if _, err := client.AddSkill(req.ctx, req.in); err != nil {
			t.Fatalf("AddSkill RPC failed: %v", err)
		}
	}

	matches, err := client.ListMatches(annCtx, &emptypb.Empty{})
	if err != nil {
		t.Fatalf("ListMatches RPC failed: %v", err)
	}
	if len(matches.Matches) == 0 || matches.Matches[0].User.UserId != bob.UserId || matches.Matches[0].Score != 1 {
		t.Fatalf("unexpected matches: %+v", matches.Matches)
	}

	date := time.Now().UTC().Add(72 * time.Hour).Format("2006-01-02")
	sess, err := client.ProposeSession(annCtx, &v1.ProposeSessionRequest{PartnerEmail: bobEmail, Skill: "Spanish", Date: date, Time: "18:30"})
	if err != nil {
		t.Fatalf("ProposeSession RPC failed: %v", err)
	}
	if sess.ScheduledAt == nil || sess.Status != string(data.StatusPending) {
		t.Fatalf("unexpected proposal: %+v", sess)
	}

	if _, err := client.RespondToSession(bobCtx, &v1.RespondToSessionRequest{SessionId: sess.Id, Action: "confirm"}); err != nil {
		t.Fatalf("RespondToSession RPC failed: %v", err)
	}
	// A second confirm loses: the session is no longer pending
	_, err = client.RespondToSession(bobCtx, &v1.RespondToSessionRequest{SessionId: sess.Id, Action: "confirm"})
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %v", err)
	}

	if _, err := client.CompleteSession(bobCtx, &v1.SessionRequest{SessionId: sess.Id}); err != nil {
		t.Fatalf("CompleteSession RPC failed: %v", err)
	}
	rated, err := client.SubmitRating(annCtx, &v1.SubmitRatingRequest{SessionId: sess.Id, RatedUserId: bob.UserId, Score: 5, Review: "muy bien"})
	if err != nil {
		t.Fatalf("SubmitRating RPC failed: %v", err)
	}
	if rated.AggregateStale {
		t.Fatalf("aggregate unexpectedly stale")
	}

	profile, err := client.GetProfile(annCtx, &v1.GetProfileRequest{UserId: bob.UserId})
	if err != nil {
		t.Fatalf("GetProfile RPC failed: %v", err)
	}
	if profile.Rating != 5 || profile.TotalRatings != 1 {
		t.Fatalf("unexpected rating on profile: %+v", profile)
	}

	if _, err := client.SendMessage(bobCtx, &v1.SendMessageRequest{ReceiverId: ann.UserId, Content: "gracias"}); err != nil {
		t.Fatalf("SendMessage RPC failed: %v", err)
	}

	stream, err := client.GetChatHistory(annCtx, &v1.GetChatHistoryRequest{PartnerId: bob.UserId})
	if err != nil {
		t.Fatalf("GetChatHistory RPC failed: %v", err)
	}
	var history []*v1.ChatMessage
	for {
		m, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("GetChatHistory recv: %v", err)
		}
		history = append(history, m)
	}
	if len(history) != 1 || history[0].Content != "gracias" {
		t.Fatalf("unexpected history: %+v", history)
	}

	chats, err := client.ListChats(annCtx, &v1.ListChatsRequest{})
	if err != nil {
		t.Fatalf("ListChats RPC failed: %v", err)
	}
	summary, err := chats.Recv()
	if err != nil {
		t.Fatalf("ListChats recv: %v", err)
	}
	if summary.PartnerId != bob.UserId || summary.UnreadCount != 1 {
		t.Fatalf("unexpected chat summary: %+v", summary)
	}
}

func TestServiceOverBufconn(t *testing.T) {
	exerciseService(t, startBufServer(t, memory.New()))
}

func TestServiceOverBufconnMongo(t *testing.T) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set; skipping integration test")
	}

	ctx := context.Background()
	dbClient, err := db.New(ctx, uri, "skillswap_api_test")
	if err != nil {
		t.Fatalf("db.New failed: %v", err)
	}
	t.Cleanup(func() { _ = dbClient.Close(context.Background()) })
	if err := dbClient.CreateIndexes(ctx); err != nil {
		t.Fatalf("CreateIndexes failed: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		_ = dbClient.UsersCollection().Drop(ctx)
		_ = dbClient.SessionsCollection().Drop(ctx)
		_ = dbClient.RatingsCollection().Drop(ctx)
		_ = dbClient.MessagesCollection().Drop(ctx)
		_ = dbClient.ChatsCollection().Drop(ctx)
	})

	st := mongoStores{
		UsersStore:    data.NewUsersStore(dbClient.UsersCollection()),
		SessionsStore: data.NewSessionsStore(dbClient.SessionsCollection()),
		RatingsStore:  data.NewRatingsStore(dbClient.RatingsCollection()),
		MessagesStore: data.NewMessagesStore(dbClient.MessagesCollection(), dbClient.ChatsCollection()),
	}
	exerciseService(t, startBufServer(t, st))
}

func TestRateLimitedLoginOverBufconn(t *testing.T) {
	st := memory.New()
	jwtMgr := auth.NewJWTManager("test-secret", time.Hour)
	eng := engine.New(st, st, st)
	srv := newServer(eng, st, st, jwtMgr, logger.Nop())

	// one request per minute, no burst beyond it
	limiterStore := middleware.NewLimiterStore(1, 1, time.Minute)
	defer limiterStore.Stop()

	lis := bufconn.Listen(bufSize)
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		middleware.RateLimitUnaryInterceptor(limiterStore, limitedMethods),
		authUnaryInterceptor(jwtMgr),
	))
	registerService(s, srv)
	go func() { _ = s.Serve(lis) }()
	defer s.GracefulStop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial bufnet: %v", err)
	}
	defer conn.Close()
	client := v1.NewSkillSwapServiceClient(conn)

	ctx := context.Background()
	req := &v1.LoginRequest{Email: "ann@example.com", Password: "secret123"}
	if _, err := client.Login(ctx, req); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("first login: expected Unauthenticated, got %v", err)
	}
	if _, err := client.Login(ctx, req); status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("second login: expected ResourceExhausted, got %v", err)
	}
}
