package testutil

import (
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	"github.com/oggyb/mealplanner/internal/server"
)

// Dial serves registrars on an in-memory listener and returns a client
// connection speaking the JSON codec.
func Dial(t *testing.T, registrars ...server.Registrar) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := server.NewGRPCServer(Logger(), registrars...)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(server.CodecName)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// AsUser returns ctx carrying userID in the identity header.
func AsUser(ctx context.Context, userID uint64) context.Context {
	return metadata.AppendToOutgoingContext(ctx, server.UserIDHeader, strconv.FormatUint(userID, 10))
}
