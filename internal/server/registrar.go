package server

import "google.golang.org/grpc"

// Registrar attaches one service to a gRPC server.
type Registrar interface {
	Register(s grpc.ServiceRegistrar)
}

// ServiceRegistrar registers a fixed descriptor/implementation pair.
type ServiceRegistrar struct {
	Desc *grpc.ServiceDesc
	Impl any
}

func (r ServiceRegistrar) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(r.Desc, r.Impl)
}
