// Package grpcweb implements the gRPC-Web framing used by the Lambda handler.
package grpcweb

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

const (
	// ContentTypeProto is the content type for binary protobuf gRPC-Web
	ContentTypeProto = "application/grpc-web+proto"
	// ContentTypeText is the content type for base64 gRPC-Web
	ContentTypeText = "application/grpc-web-text"

	dataFlag    byte = 0x00
	trailerFlag byte = 0x80
	headerLen        = 5
)

// IsText reports whether contentType selects the base64 encoding.
func IsText(contentType string) bool {
	return strings.Contains(contentType, ContentTypeText)
}

// IsGRPCWeb reports whether contentType is one of the gRPC-Web content types.
func IsGRPCWeb(contentType string) bool {
	return IsText(contentType) || strings.Contains(contentType, ContentTypeProto)
}

// DecodeRequest returns the binary request body, decoding base64 for the
// text content type.
func DecodeRequest(contentType string, body []byte) ([]byte, error) {
	switch {
	case IsText(contentType):
		decoded := make([]byte, base64.StdEncoding.DecodedLen(len(body)))
		n, err := base64.StdEncoding.Decode(decoded, body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 gRPC-Web request: %w", err)
		}
		return decoded[:n], nil
	case strings.Contains(contentType, ContentTypeProto):
		return body, nil
	}
	return nil, fmt.Errorf("unsupported content type: %s", contentType)
}

// EncodeResponse frames message followed by an OK trailer frame.
func EncodeResponse(message proto.Message, useText bool) ([]byte, string, error) {
	data, err := proto.Marshal(message)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal protobuf: %w", err)
	}

	body := appendFrame(nil, dataFlag, data)
	body = appendFrame(body, trailerFlag, trailer(codes.OK, ""))
	return finish(body, useText)
}

// EncodeError encodes err as a trailer-only response and returns the gRPC
// status code.
func EncodeError(err error, useText bool) ([]byte, string, codes.Code) {
	st, ok := status.FromError(err)
	if !ok {
		st = status.New(codes.Internal, err.Error())
	}

	body := appendFrame(nil, trailerFlag, trailer(st.Code(), st.Message()))
	encoded, contentType, _ := finish(body, useText)
	return encoded, contentType, st.Code()
}

// ParseMethodPath splits /package.Service/Method into its fully qualified
// service and method names.
func ParseMethodPath(path string) (service, method string, err error) {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid gRPC-Web path format: %s", path)
	}
	return parts[0], parts[1], nil
}

// ReadFrame reads one uncompressed frame and returns its payload and the
// remaining data.
func ReadFrame(data []byte) ([]byte, []byte, error) {
	if len(data) < headerLen {
		return nil, data, io.ErrUnexpectedEOF
	}

	flags := data[0]
	length := int(binary.BigEndian.Uint32(data[1:headerLen]))
	if flags != dataFlag {
		return nil, nil, fmt.Errorf("compression not supported, flags: %d", flags)
	}
	if len(data) < headerLen+length {
		return nil, data, io.ErrUnexpectedEOF
	}

	return data[headerLen : headerLen+length], data[headerLen+length:], nil
}

// Frame wraps payload in an uncompressed data frame.
func Frame(payload []byte) []byte {
	return appendFrame(nil, dataFlag, payload)
}

func appendFrame(dst []byte, flags byte, payload []byte) []byte {
	var header [headerLen]byte
	header[0] = flags
	binary.BigEndian.PutUint32(header[1:], uint32(len(payload)))
	dst = append(dst, header[:]...)
	return append(dst, payload...)
}

func trailer(code codes.Code, message string) []byte {
	return []byte(fmt.Sprintf("grpc-status: %d\r\ngrpc-message: %s\r\n", int(code), message))
}

func finish(body []byte, useText bool) ([]byte, string, error) {
	if useText {
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(body)))
		base64.StdEncoding.Encode(encoded, body)
		return encoded, ContentTypeText, nil
	}
	return body, ContentTypeProto, nil
}
