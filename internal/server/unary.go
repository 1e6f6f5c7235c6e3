package server

import (
	"context"

	"google.golang.org/grpc"
)

// Unary builds the MethodDesc of one unary RPC of service. srv is asserted
// to S, the handler interface registered in the ServiceDesc.
//
// Example:
//
//	server.Unary("recipes.v1.RecipeService", "GetRecipe", RecipeServer.GetRecipe)
func Unary[S any, Req any, Resp any](
	service, method string,
	call func(S, context.Context, *Req) (Resp, error),
) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
