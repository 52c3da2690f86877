// Package lambda serves CarService over gRPC-Web behind API Gateway.
package lambda

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"cars-info-processing/internal/constants"
	"cars-info-processing/internal/lambda/grpcweb"
	"cars-info-processing/proto"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	protobuf "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type unaryMethod func(context.Context, *structpb.Struct) (*structpb.Struct, error)

type Handler struct {
	methods map[string]unaryMethod
	logger  *zap.Logger
}

func NewHandler(server proto.CarServiceServer, logger *zap.Logger) *Handler {
	return &Handler{
		methods: map[string]unaryMethod{
			"Process":     server.Process,
			"HealthCheck": server.HealthCheck,
		},
		logger: logger,
	}
}

// Handle routes an API Gateway V2 request to the matching CarService method.
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	path := request.RequestContext.HTTP.Path
	if path == "" {
		path = request.RawPath
	}
	method := request.RequestContext.HTTP.Method
	contentType := header(request.Headers, "content-type")

	h.logger.Info(fmt.Sprintf("%s Lambda gRPC-Web request", constants.APIName()),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("content_type", contentType),
	)

	if method == http.MethodOptions {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusNoContent, Headers: corsHeaders("")}, nil
	}

	serviceName, methodName, err := grpcweb.ParseMethodPath(path)
	if err != nil {
		h.logger.Warn("Invalid gRPC-Web path", zap.Error(err), zap.String("path", path))
		return errorResponse(codes.InvalidArgument, "Invalid path format", contentType), nil
	}
	if !grpcweb.IsGRPCWeb(contentType) {
		return errorResponse(codes.InvalidArgument, "Invalid content type, expected gRPC-Web", contentType), nil
	}

	call, ok := h.methods[methodName]
	if !ok || (serviceName != constants.ServiceName && serviceName != "CarService") {
		return errorResponse(codes.Unimplemented, fmt.Sprintf("Method %s.%s not implemented", serviceName, methodName), contentType), nil
	}

	in, err := h.decode(request, contentType)
	if err != nil {
		h.logger.Warn("Failed to decode gRPC-Web request", zap.Error(err))
		return errorResponse(codes.InvalidArgument, err.Error(), contentType), nil
	}

	out, err := call(ctx, in)
	if err != nil {
		h.logger.Warn(fmt.Sprintf("%s Error handling %s", constants.APIName(), methodName), zap.Error(err))
		return errorResponseFromError(err, contentType), nil
	}

	useText := grpcweb.IsText(contentType)
	body, respContentType, err := grpcweb.EncodeResponse(out, useText)
	if err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
		return errorResponse(codes.Internal, "Failed to encode response", contentType), nil
	}
	return buildResponse(http.StatusOK, body, respContentType, useText), nil
}

// decode unwraps the request message. An empty body decodes to an empty
// Struct so HealthCheck needs no payload.
func (h *Handler) decode(request events.APIGatewayV2HTTPRequest, contentType string) (*structpb.Struct, error) {
	raw := []byte(request.Body)
	if request.IsBase64Encoded && !grpcweb.IsText(contentType) {
		decoded, err := base64.StdEncoding.DecodeString(request.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode request body: %w", err)
		}
		raw = decoded
	}

	in := &structpb.Struct{}
	if len(raw) == 0 {
		return in, nil
	}

	decoded, err := grpcweb.DecodeRequest(contentType, raw)
	if err != nil {
		return nil, err
	}
	payload, _, err := grpcweb.ReadFrame(decoded)
	if err != nil {
		return nil, fmt.Errorf("invalid gRPC-Web frame: %w", err)
	}
	if err := protobuf.Unmarshal(payload, in); err != nil {
		return nil, fmt.Errorf("invalid protobuf message: %w", err)
	}
	return in, nil
}

func errorResponse(code codes.Code, message string, contentType string) events.APIGatewayV2HTTPResponse {
	useText := grpcweb.IsText(contentType)
	body, respContentType, _ := grpcweb.EncodeError(status.Error(code, message), useText)
	return buildResponse(httpStatus(code), body, respContentType, useText)
}

func errorResponseFromError(err error, contentType string) events.APIGatewayV2HTTPResponse {
	st, ok := status.FromError(err)
	if !ok {
		st = status.New(codes.Internal, err.Error())
	}
	return errorResponse(st.Code(), st.Message(), contentType)
}

// httpStatus maps gRPC codes to HTTP status codes for API Gateway.
func httpStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.FailedPrecondition:
		return http.StatusUnprocessableEntity
	case codes.NotFound:
		return http.StatusNotFound
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Canceled, codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// buildResponse base64-encodes binary bodies, which API Gateway requires.
func buildResponse(statusCode int, body []byte, contentType string, useText bool) events.APIGatewayV2HTTPResponse {
	resp := events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    corsHeaders(contentType),
	}
	if useText {
		resp.Body = string(body)
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(body)
		resp.IsBase64Encoded = true
	}
	return resp
}

func corsHeaders(contentType string) map[string]string {
	headers := map[string]string{
		"Access-Control-Allow-Origin":   "*",
		"Access-Control-Allow-Methods":  "POST, OPTIONS",
		"Access-Control-Allow-Headers":  "Content-Type, x-grpc-web, x-user-agent",
		"Access-Control-Expose-Headers": "grpc-status, grpc-message",
	}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}
	return headers
}

func header(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(name) {
			return v
		}
	}
	return ""
}
