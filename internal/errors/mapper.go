package errors

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Map converts engine/repo/infra errors into gRPC-friendly status errors.
// Keeps the service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")
	}

	switch KindOf(err) {
	case KindNotFound:
		var e *Error
		if errors.As(err, &e) {
			return status.Error(codes.NotFound, e.Msg)
		}
		return status.Error(codes.NotFound, "record not found")
	case KindInvalidArgument:
		return status.Error(codes.InvalidArgument, err.Error())
	case KindPartialMaterialization:
		return status.Error(codes.DataLoss, err.Error())
	default:
		// fallback → bubble up error message for debugging
		return status.Error(codes.Internal, err.Error())
	}
}
