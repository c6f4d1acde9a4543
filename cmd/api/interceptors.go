package main

import (
	"context"
	"strings"
	"time"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/auth"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/logger"
	"github.com/PaulBabatuyi/skillSwap-gRPC/pkg/metrics"
	v1 "github.com/PaulBabatuyi/skillSwap-gRPC/proto/skillswap/v1"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

// publicMethods do not require authentication.
var publicMethods = map[string]bool{
	v1.SkillSwapService_Register_FullMethodName: true,
	v1.SkillSwapService_Login_FullMethodName:    true,
}

// context key types for values attached by the interceptors
type (
	authContextKey      struct{}
	requestIDContextKey struct{}
)

// getClaimsFromContext extracts auth claims from the context, if present.
func getClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	v := ctx.Value(authContextKey{})
	if v == nil {
		return nil, false
	}
	c, ok := v.(*auth.Claims)
	return c, ok
}

// callerID returns the authenticated user's id from the context claims.
func callerID(ctx context.Context) (bson.ObjectID, error) {
	claims, ok := getClaimsFromContext(ctx)
	if !ok {
		return bson.ObjectID{}, status.Error(codes.Unauthenticated, "missing auth claims")
	}
	id, err := claims.ObjectID()
	if err != nil {
		return bson.ObjectID{}, status.Error(codes.Unauthenticated, "invalid subject")
	}
	return id, nil
}

// requestID returns the id attached by the logging interceptor.
func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

// authenticate verifies the bearer token in the incoming metadata and
// returns ctx with the claims attached.
func authenticate(ctx context.Context, j *auth.JWTManager) (context.Context, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Errorf(codes.Unauthenticated, "missing metadata")
	}
	authHeaders := md.Get("authorization")
	if len(authHeaders) == 0 {
		return nil, status.Errorf(codes.Unauthenticated, "missing authorization header")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeaders[0], "Bearer"))
	if token == "" {
		return nil, status.Errorf(codes.Unauthenticated, "invalid token")
	}

	claims, err := j.VerifyToken(token)
	if err != nil {
		return nil, status.Errorf(codes.Unauthenticated, "unauthenticated: %v", err)
	}
	if _, err := claims.ObjectID(); err != nil {
		return nil, status.Errorf(codes.Unauthenticated, "invalid subject")
	}

	// attach claims into context for handlers
	return context.WithValue(ctx, authContextKey{}, claims), nil
}

// authUnaryInterceptor returns a UnaryServerInterceptor that enforces JWT
// authentication for all methods except publicMethods.
func authUnaryInterceptor(j *auth.JWTManager) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}
		ctx, err := authenticate(ctx, j)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// authStreamInterceptor is the stream equivalent of authUnaryInterceptor.
func authStreamInterceptor(j *auth.JWTManager) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if publicMethods[info.FullMethod] {
			return handler(srv, ss)
		}
		ctx, err := authenticate(ss.Context(), j)
		if err != nil {
			return err
		}
		return handler(srv, grpcmiddlewareServerStream{ServerStream: ss, ctx: ctx})
	}
}

// incomingRequestID reuses the caller's x-request-id or mints one.
func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(requestIDHeader); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return uuid.NewString()
}

// observe logs a finished RPC and records its count and latency.
func observe(ctx context.Context, log logger.Logger, method string, start time.Time, err error) {
	code := status.Code(err)
	elapsed := time.Since(start)
	metrics.RecordRPC(method, code.String(), float64(elapsed.Microseconds())/1000)

	fields := []logger.Field{
		logger.String("method", method),
		logger.String("code", code.String()),
		logger.Duration("duration", elapsed),
		logger.String("request_id", requestID(ctx)),
	}
	switch code {
	case codes.OK:
		log.Debug(ctx, "rpc", fields...)
	case codes.Internal, codes.Unavailable, codes.Unknown:
		log.Error(ctx, "rpc failed", append(fields, logger.Error(err))...)
	default:
		log.Info(ctx, "rpc rejected", append(fields, logger.Error(err))...)
	}
}

// loggingUnaryInterceptor tags the request with an id, returns it in the
// response header and logs the outcome. It runs outermost so rate-limited
// and unauthenticated calls are observed too.
func loggingUnaryInterceptor(log logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		id := incomingRequestID(ctx)
		ctx = context.WithValue(ctx, requestIDContextKey{}, id)
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, id))

		resp, err := handler(ctx, req)
		observe(ctx, log, info.FullMethod, start, err)
		return resp, err
	}
}

// loggingStreamInterceptor is the stream equivalent of loggingUnaryInterceptor.
func loggingStreamInterceptor(log logger.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		id := incomingRequestID(ss.Context())
		ctx := context.WithValue(ss.Context(), requestIDContextKey{}, id)
		_ = ss.SetHeader(metadata.Pairs(requestIDHeader, id))

		err := handler(srv, grpcmiddlewareServerStream{ServerStream: ss, ctx: ctx})
		observe(ctx, log, info.FullMethod, start, err)
		return err
	}
}

// grpcmiddlewareServerStream wraps grpc.ServerStream to override Context()
type grpcmiddlewareServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context returns the wrapped context (with claims)
func (g grpcmiddlewareServerStream) Context() context.Context { return g.ctx }
