package server

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	svcErr "github.com/oggyb/mealplanner/internal/errors"
)

// UserIDHeader is the metadata key carrying the authenticated caller id.
// It is set by the gateway in front of this service; absent means anonymous.
const UserIDHeader = "x-user-id"

type callerKey struct{}

// WithCaller returns ctx carrying callerID.
func WithCaller(ctx context.Context, callerID uint64) context.Context {
	return context.WithValue(ctx, callerKey{}, callerID)
}

// CallerID returns the caller id stored by IdentityInterceptor, 0 when anonymous.
func CallerID(ctx context.Context) uint64 {
	id, _ := ctx.Value(callerKey{}).(uint64)
	return id
}

// IdentityInterceptor reads UserIDHeader into the request context.
// A malformed id is rejected with InvalidArgument.
func IdentityInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		vals := md.Get(UserIDHeader)
		if len(vals) == 0 || strings.TrimSpace(vals[0]) == "" {
			return handler(ctx, req)
		}
		id, err := strconv.ParseUint(strings.TrimSpace(vals[0]), 10, 64)
		if err != nil {
			return nil, svcErr.Map(svcErr.InvalidArgument("%s must be a valid uint64", UserIDHeader))
		}
		return handler(WithCaller(ctx, id), req)
	}
}

// LoggingInterceptor logs every call with its status code and duration.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		attrs := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start), "caller_id", CallerID(ctx)}
		if err != nil {
			log.Warn("rpc failed", append(attrs, "err", err)...)
		} else {
			log.Debug("rpc", attrs...)
		}
		return resp, err
	}
}
