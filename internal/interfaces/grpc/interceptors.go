package grpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/errors"
	"github.com/ecnlab/ecn/pkg/logger"
)

// InterceptorChain holds the unary interceptors of the prediction server.
type InterceptorChain struct {
	log logger.Logger
}

func NewInterceptorChain(log logger.Logger) *InterceptorChain {
	return &InterceptorChain{log: log}
}

// UnaryRecoveryInterceptor turns a handler panic into codes.Internal.
func (ic *InterceptorChain) UnaryRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				ic.log.Error(ctx, "gRPC handler panic recovered", fmt.Errorf("%v", r),
					logger.Fields{"method": info.FullMethod})
				err = status.Error(codes.Internal, errors.ErrInternal.Message)
			}
		}()
		return handler(ctx, req)
	}
}

// UnaryRequestIDInterceptor copies x-request-id metadata into the context so
// log lines carry it.
func (ic *InterceptorChain) UnaryRequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(constants.HeaderRequestID); len(ids) > 0 && ids[0] != "" {
				ctx = context.WithValue(ctx, constants.ContextKeyRequestID, ids[0])
			}
		}
		return handler(ctx, req)
	}
}

// UnaryLoggingInterceptor logs each call with its status and duration.
func (ic *InterceptorChain) UnaryLoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := logger.Fields{
			"method":      info.FullMethod,
			"status":      status.Code(err).String(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if status.Code(err) == codes.Internal || status.Code(err) == codes.Unavailable {
			ic.log.Warn(ctx, "gRPC request failed", fields)
		} else {
			ic.log.Info(ctx, "gRPC request completed", fields)
		}
		return resp, err
	}
}

// UnaryErrorInterceptor converts application errors into gRPC statuses.
func (ic *InterceptorChain) UnaryErrorInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, toStatus(err)
	}
}

func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return status.Error(codes.Internal, errors.ErrInternal.Message)
	}
	switch appErr.Code {
	case errors.CodeInvalidInput:
		return status.Error(codes.InvalidArgument, appErr.Message)
	case errors.CodeNotFound:
		return status.Error(codes.NotFound, appErr.Message)
	case errors.CodeUpstreamUnavailable:
		return status.Error(codes.Unavailable, appErr.Message)
	default:
		return status.Error(codes.Internal, appErr.Message)
	}
}

// ChainUnaryInterceptors returns the interceptors in serving order.
func (ic *InterceptorChain) ChainUnaryInterceptors() grpc.ServerOption {
	return grpc.ChainUnaryInterceptor(
		ic.UnaryRecoveryInterceptor(),
		ic.UnaryRequestIDInterceptor(),
		ic.UnaryLoggingInterceptor(),
		ic.UnaryErrorInterceptor(),
	)
}
