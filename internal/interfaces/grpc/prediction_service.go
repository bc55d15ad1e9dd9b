// Package grpc exposes the tsunami potential prediction over gRPC. Messages are
// google.protobuf.Struct values so no generated code is needed:
//
//	request:  {"t0": 50, "td": 5, "mw": 7.5}
//	response: {"tsunamiYes": 0.93, "tsunamiNo": 0.04}
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ecnlab/ecn/internal/application/dto"
	"github.com/ecnlab/ecn/internal/application/service"
	"github.com/ecnlab/ecn/pkg/errors"
	"github.com/ecnlab/ecn/pkg/logger"
)

const (
	// PredictionServiceName is the fully qualified gRPC service name.
	PredictionServiceName = "ecn.tsunamipotential.v1.TsunamiPotential"
	// PredictMethod is the full method name of the Predict RPC.
	PredictMethod = "/" + PredictionServiceName + "/Predict"
)

// PredictionServer is the server API of the prediction service.
type PredictionServer interface {
	Predict(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// PredictionServiceDesc describes the prediction service for grpc.ServiceRegistrar.
var PredictionServiceDesc = grpc.ServiceDesc{
	ServiceName: PredictionServiceName,
	HandlerType: (*PredictionServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Predict", Handler: predictHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ecn/tsunamipotential/v1/prediction.proto",
}

func predictHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PredictionServer).Predict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PredictMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PredictionServer).Predict(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// PredictionGRPCService adapts the prediction app service to gRPC.
type PredictionGRPCService struct {
	svc service.PredictionAppService
	log logger.Logger
}

// NewPredictionGRPCServer creates a server with the prediction and health
// services registered. The health service reports SERVING for both the
// prediction service and the overall server.
func NewPredictionGRPCServer(svc service.PredictionAppService, log logger.Logger, opts ...grpc.ServerOption) *grpc.Server {
	chain := NewInterceptorChain(log)
	server := grpc.NewServer(append([]grpc.ServerOption{chain.ChainUnaryInterceptors()}, opts...)...)
	server.RegisterService(&PredictionServiceDesc, &PredictionGRPCService{svc: svc, log: log})

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(PredictionServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, hs)
	return server
}

// Predict handles the gRPC request to score an earthquake.
func (s *PredictionGRPCService) Predict(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := predictRequestFromStruct(req)
	if err != nil {
		return nil, err
	}
	out, err := s.svc.Predict(ctx, in)
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(map[string]interface{}{
		"tsunamiYes": out.TsunamiYes,
		"tsunamiNo":  out.TsunamiNo,
	})
}

// predictRequestFromStruct reads t0, td and mw. Absent and null fields stay nil
// so Validate reports them; any other non-number kind is rejected here.
func predictRequestFromStruct(s *structpb.Struct) (*dto.PredictRequest, error) {
	fields := s.GetFields()
	read := func(name string) (*float64, error) {
		v, ok := fields[name]
		if !ok {
			return nil, nil
		}
		switch k := v.GetKind().(type) {
		case *structpb.Value_NullValue:
			return nil, nil
		case *structpb.Value_NumberValue:
			f := k.NumberValue
			return &f, nil
		default:
			return nil, errors.InvalidInput("field %s must be a number", name)
		}
	}

	var req dto.PredictRequest
	var err error
	if req.T0, err = read("t0"); err != nil {
		return nil, err
	}
	if req.Td, err = read("td"); err != nil {
		return nil, err
	}
	if req.Mw, err = read("mw"); err != nil {
		return nil, err
	}
	return &req, nil
}
