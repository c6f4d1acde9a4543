package main

import (
	"context"
	"errors"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/engine"

	"go.mongodb.org/mongo-driver/v2/bson"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps engine errors onto gRPC status codes. Errors that are not
// engine errors are internal and their text is not sent to the client.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var ee *engine.Error
	if !errors.As(err, &ee) {
		switch {
		case errors.Is(err, context.Canceled):
			return status.Error(codes.Canceled, "request cancelled")
		case errors.Is(err, context.DeadlineExceeded):
			return status.Error(codes.DeadlineExceeded, "deadline exceeded")
		}
		return status.Error(codes.Internal, "internal error")
	}

	msg := ee.Msg
	if msg == "" {
		msg = ee.Kind.Error()
	}
	switch {
	case errors.Is(err, engine.ErrValidation):
		return status.Error(codes.InvalidArgument, msg)
	case errors.Is(err, engine.ErrNotFound):
		return status.Error(codes.NotFound, msg)
	case errors.Is(err, engine.ErrPermission):
		return status.Error(codes.PermissionDenied, msg)
	case errors.Is(err, engine.ErrConflict):
		return status.Error(codes.FailedPrecondition, msg)
	case errors.Is(err, engine.ErrDependency):
		return status.Error(codes.Unavailable, "storage unavailable")
	}
	return status.Error(codes.Internal, "internal error")
}

// parseID decodes a hex object id from a request field.
func parseID(field, hex string) (bson.ObjectID, error) {
	if hex == "" {
		return bson.ObjectID{}, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.ObjectID{}, status.Errorf(codes.InvalidArgument, "invalid %s", field)
	}
	return id, nil
}
