package server_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oggyb/mealplanner/internal/server"
	"github.com/oggyb/mealplanner/internal/testutil"
)

type echoRequest struct {
	Text string `json:"text"`
}

type echoResponse struct {
	Text     string `json:"text"`
	CallerID uint64 `json:"caller_id"`
}

type echoServer interface {
	Echo(context.Context, *echoRequest) (*echoResponse, error)
}

type echo struct{}

func (echo) Echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	return &echoResponse{Text: req.Text, CallerID: server.CallerID(ctx)}, nil
}

var echoDesc = grpc.ServiceDesc{
	ServiceName: "test.Echo",
	HandlerType: (*echoServer)(nil),
	Methods:     []grpc.MethodDesc{server.Unary("test.Echo", "Echo", echoServer.Echo)},
}

var echoRegistrar = server.ServiceRegistrar{Desc: &echoDesc, Impl: echo{}}

func TestUnaryOverJSONCodec(t *testing.T) {
	conn := testutil.Dial(t, echoRegistrar)

	var resp echoResponse
	err := conn.Invoke(testutil.AsUser(context.Background(), 42), "/test.Echo/Echo", &echoRequest{Text: "hi"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Text)
	assert.Equal(t, uint64(42), resp.CallerID)

	err = conn.Invoke(context.Background(), "/test.Echo/Echo", &echoRequest{Text: "anon"}, &resp)
	require.NoError(t, err)
	assert.Zero(t, resp.CallerID)
}

func TestIdentityRejectsMalformedID(t *testing.T) {
	conn := testutil.Dial(t, echoRegistrar)
	ctx := metadata.AppendToOutgoingContext(context.Background(), server.UserIDHeader, "-1")

	var resp echoResponse
	err := conn.Invoke(ctx, "/test.Echo/Echo", &echoRequest{}, &resp)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHealthService(t *testing.T) {
	conn := testutil.Dial(t)
	// health uses protobuf messages, so override the default JSON subtype
	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{},
		grpc.CallContentSubtype("proto"))
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestCallerIDDefaultsToZero(t *testing.T) {
	assert.Zero(t, server.CallerID(context.Background()))
	assert.Equal(t, uint64(7), server.CallerID(server.WithCaller(context.Background(), 7)))
}

func TestRegisteredServices(t *testing.T) {
	srv := server.NewGRPCServer(testutil.Logger(), echoRegistrar)
	info := srv.GetServiceInfo()

	assert.Contains(t, info, "test.Echo")
	assert.Contains(t, info, healthpb.Health_ServiceDesc.ServiceName)
	assert.NotContains(t, info, "grpc.reflection.v1.ServerReflection")
	assert.NotContains(t, info, "grpc.reflection.v1alpha.ServerReflection")
}
