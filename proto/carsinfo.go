// Package proto holds the carsinfo.CarService gRPC contract. Messages are
// google.protobuf.Struct values carrying the JSON shape of the REST API.
package proto

import (
	"context"
	"encoding/json"
	"fmt"

	"cars-info-processing/internal/models"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	CarService_Process_FullMethodName     = "/carsinfo.CarService/Process"
	CarService_HealthCheck_FullMethodName = "/carsinfo.CarService/HealthCheck"
)

// CarServiceClient is the client API for CarService.
type CarServiceClient interface {
	Process(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	HealthCheck(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type carServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCarServiceClient(cc grpc.ClientConnInterface) CarServiceClient {
	return &carServiceClient{cc}
}

func (c *carServiceClient) Process(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CarService_Process_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *carServiceClient) HealthCheck(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CarService_HealthCheck_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CarServiceServer is the server API for CarService.
type CarServiceServer interface {
	Process(context.Context, *structpb.Struct) (*structpb.Struct, error)
	HealthCheck(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedCarServiceServer()
}

// UnimplementedCarServiceServer must be embedded by implementations.
type UnimplementedCarServiceServer struct{}

func (UnimplementedCarServiceServer) Process(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Process not implemented")
}

func (UnimplementedCarServiceServer) HealthCheck(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method HealthCheck not implemented")
}

func (UnimplementedCarServiceServer) mustEmbedUnimplementedCarServiceServer() {}

func RegisterCarServiceServer(s grpc.ServiceRegistrar, srv CarServiceServer) {
	s.RegisterService(&CarService_ServiceDesc, srv)
}

func _CarService_Process_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CarServiceServer).Process(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CarService_Process_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CarServiceServer).Process(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _CarService_HealthCheck_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CarServiceServer).HealthCheck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CarService_HealthCheck_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CarServiceServer).HealthCheck(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// CarService_ServiceDesc is the grpc.ServiceDesc for CarService.
var CarService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "carsinfo.CarService",
	HandlerType: (*CarServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Process",
			Handler:    _CarService_Process_Handler,
		},
		{
			MethodName: "HealthCheck",
			Handler:    _CarService_HealthCheck_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "carsinfo.proto",
}

// RequestToStruct encodes a ProcessRequest as a Struct message.
func RequestToStruct(req models.ProcessRequest) (*structpb.Struct, error) {
	return toStruct(req)
}

// StructToRequest decodes a Struct message into a ProcessRequest.
func StructToRequest(s *structpb.Struct) (models.ProcessRequest, error) {
	var req models.ProcessRequest
	if s == nil {
		return req, fmt.Errorf("request message is nil")
	}
	raw, err := s.MarshalJSON()
	if err != nil {
		return req, fmt.Errorf("failed to encode request: %w", err)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

func ResultToStruct(result *models.ProcessResult) (*structpb.Struct, error) {
	return toStruct(result)
}

// StructToResult decodes a Process response.
func StructToResult(s *structpb.Struct) (*models.ProcessResult, error) {
	raw, err := s.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	var result models.ProcessResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("invalid result: %w", err)
	}
	return &result, nil
}

func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}
