package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"cars-info-processing/internal/constants"
	apperrors "cars-info-processing/internal/errors"
	"cars-info-processing/proto"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// CarGRPCService exposes CarService over gRPC and gRPC-Web.
type CarGRPCService struct {
	proto.UnimplementedCarServiceServer
	carService *CarService
	logger     *zap.Logger
}

func NewCarGRPCService(carService *CarService, logger *zap.Logger) *CarGRPCService {
	return &CarGRPCService{
		carService: carService,
		logger:     logger,
	}
}

func (s *CarGRPCService) Process(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := proto.StructToRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	s.logger.Info(fmt.Sprintf("%s Received gRPC process request", constants.APIName()),
		zap.Int("operation_count", len(req.Operations)))

	result, err := s.carService.Process(ctx, req)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("%s Error processing request", constants.APIName()), zap.Error(err))
		return nil, ToStatusError(err)
	}

	out, err := proto.ResultToStruct(result)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("failed to encode result: %v", err))
	}
	return out, nil
}

func (s *CarGRPCService) HealthCheck(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s.logger.Info(fmt.Sprintf("%s Health check requested", constants.APIName()))

	return structpb.NewStruct(map[string]any{
		"healthy": true,
		"message": "Cars info gRPC API is healthy",
	})
}

// ToStatusError converts service errors into gRPC status errors.
func ToStatusError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case stderrors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	appErr := apperrors.AsAppError(err)
	var code codes.Code
	switch appErr.Kind {
	case apperrors.KindEmptyInput, apperrors.KindFormat:
		code = codes.InvalidArgument
	case apperrors.KindValidation:
		code = codes.FailedPrecondition
	case apperrors.KindNotFound:
		code = codes.NotFound
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}
