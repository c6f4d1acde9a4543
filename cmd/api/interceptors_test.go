package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/auth"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/logger"
	v1 "github.com/PaulBabatuyi/skillSwap-gRPC/proto/skillswap/v1"

	"go.mongodb.org/mongo-driver/v2/bson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestAuthUnaryInterceptor(t *testing.T) {
	j := auth.NewJWTManager("test-secret", time.Hour)
	interceptor := authUnaryInterceptor(j)
	id := bson.NewObjectID()
	token, _, err := j.GenerateToken(id, "ann@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var gotCaller bson.ObjectID
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		caller, err := callerID(ctx)
		if err != nil {
			return nil, err
		}
		gotCaller = caller
		return "ok", nil
	}
	protected := &grpc.UnaryServerInfo{FullMethod: v1.SkillSwapService_GetProfile_FullMethodName}

	cases := []struct {
		name string
		md   metadata.MD
		want codes.Code
	}{
		{"no metadata", nil, codes.Unauthenticated},
		{"no header", metadata.Pairs("x-other", "1"), codes.Unauthenticated},
		{"empty bearer", metadata.Pairs("authorization", "Bearer "), codes.Unauthenticated},
		{"garbage", metadata.Pairs("authorization", "Bearer abc.def.ghi"), codes.Unauthenticated},
		{"valid", metadata.Pairs("authorization", "Bearer "+token), codes.OK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			if tc.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tc.md)
			}
			_, err := interceptor(ctx, nil, protected, handler)
			if got := status.Code(err); got != tc.want {
				t.Fatalf("expected %v, got %v (err=%v)", tc.want, got, err)
			}
		})
	}
	if gotCaller != id {
		t.Fatalf("handler saw caller %s, want %s", gotCaller.Hex(), id.Hex())
	}

	// Register and Login skip authentication
	public := &grpc.UnaryServerInfo{FullMethod: v1.SkillSwapService_Login_FullMethodName}
	resp, err := interceptor(context.Background(), nil, public, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "public", nil
	})
	if err != nil || resp != "public" {
		t.Fatalf("public method blocked: resp=%v err=%v", resp, err)
	}
}

func TestAuthStreamInterceptor(t *testing.T) {
	j := auth.NewJWTManager("test-secret", time.Hour)
	interceptor := authStreamInterceptor(j)
	info := &grpc.StreamServerInfo{FullMethod: v1.SkillSwapService_ListChats_FullMethodName, IsServerStream: true}

	token, _, err := j.GenerateToken(bson.NewObjectID(), "ann@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	called := false
	handler := func(srv interface{}, ss grpc.ServerStream) error {
		if _, ok := getClaimsFromContext(ss.Context()); !ok {
			return errors.New("claims missing from stream context")
		}
		called = true
		return nil
	}

	unauth := &fakeStream[v1.ChatSummary]{ctx: context.Background()}
	if got := status.Code(interceptor(nil, unauth, info, handler)); got != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", got)
	}

	authed := &fakeStream[v1.ChatSummary]{ctx: metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))}
	if err := interceptor(nil, authed, info, handler); err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if !called {
		t.Fatalf("handler not called")
	}
}

func TestLoggingInterceptorRequestID(t *testing.T) {
	interceptor := loggingUnaryInterceptor(logger.Nop())
	info := &grpc.UnaryServerInfo{FullMethod: v1.SkillSwapService_GetSession_FullMethodName}

	var seen string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = requestID(ctx)
		return nil, status.Error(codes.NotFound, "missing")
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(requestIDHeader, "req-123"))
	_, err := interceptor(ctx, nil, info, handler)
	if status.Code(err) != codes.NotFound {
		t.Fatalf("handler error not passed through: %v", err)
	}
	if seen != "req-123" {
		t.Fatalf("expected propagated request id, got %q", seen)
	}

	if _, err := interceptor(context.Background(), nil, info, handler); status.Code(err) != codes.NotFound {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 36 {
		t.Fatalf("expected generated uuid request id, got %q", seen)
	}
}
