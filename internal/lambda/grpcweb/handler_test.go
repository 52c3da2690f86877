package grpcweb

import (
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestDecodeRequest_Text(t *testing.T) {
	original := []byte("test data")
	encoded := base64.StdEncoding.EncodeToString(original)

	decoded, err := DecodeRequest(ContentTypeText, []byte(encoded))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeRequest_Proto(t *testing.T) {
	original := []byte("test data")
	decoded, err := DecodeRequest(ContentTypeProto, original)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeRequest_Unsupported(t *testing.T) {
	_, err := DecodeRequest("application/json", []byte("{}"))
	assert.Error(t, err)
}

func TestEncodeResponse(t *testing.T) {
	msg, err := structpb.NewStruct(map[string]any{"count": 3})
	require.NoError(t, err)

	for _, useText := range []bool{false, true} {
		body, contentType, err := EncodeResponse(msg, useText)
		require.NoError(t, err)

		if useText {
			assert.Equal(t, ContentTypeText, contentType)
			body, err = base64.StdEncoding.DecodeString(string(body))
			require.NoError(t, err)
		} else {
			assert.Equal(t, ContentTypeProto, contentType)
		}

		payload, rest, err := ReadFrame(body)
		require.NoError(t, err)

		var decoded structpb.Struct
		require.NoError(t, proto.Unmarshal(payload, &decoded))
		assert.Equal(t, float64(3), decoded.GetFields()["count"].GetNumberValue())

		require.Greater(t, len(rest), 5)
		assert.Equal(t, trailerFlag, rest[0])
		assert.Contains(t, string(rest[5:]), "grpc-status: 0")
	}
}

func TestEncodeError(t *testing.T) {
	err := status.Error(codes.InvalidArgument, "test error")

	body, contentType, code := EncodeError(err, true)

	assert.Equal(t, ContentTypeText, contentType)
	assert.Equal(t, codes.InvalidArgument, code)

	raw, decodeErr := base64.StdEncoding.DecodeString(string(body))
	require.NoError(t, decodeErr)
	assert.Equal(t, trailerFlag, raw[0])
	assert.True(t, strings.Contains(string(raw), "grpc-message: test error"))
}

func TestEncodeError_PlainError(t *testing.T) {
	_, contentType, code := EncodeError(assert.AnError, false)
	assert.Equal(t, ContentTypeProto, contentType)
	assert.Equal(t, codes.Internal, code)
}

func TestParseMethodPath(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		expectService string
		expectMethod  string
		expectError   bool
	}{
		{
			name:          "valid path",
			path:          "/carsinfo.CarService/Process",
			expectService: "carsinfo.CarService",
			expectMethod:  "Process",
		},
		{
			name:          "path without package",
			path:          "/CarService/HealthCheck",
			expectService: "CarService",
			expectMethod:  "HealthCheck",
		},
		{
			name:        "invalid path - no slash",
			path:        "invalid",
			expectError: true,
		},
		{
			name:        "invalid path - too many parts",
			path:        "/a/b/c",
			expectError: true,
		},
		{
			name:        "invalid path - empty method",
			path:        "/carsinfo.CarService/",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, method, err := ParseMethodPath(tt.path)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectService, service)
			assert.Equal(t, tt.expectMethod, method)
		})
	}
}

func TestReadFrame(t *testing.T) {
	framed := Frame([]byte("hello"))
	payload, rest, err := ReadFrame(append(framed, 0x01))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), payload)
	assert.Equal(t, []byte{0x01}, rest)

	_, _, err = ReadFrame([]byte{0x00, 0x00})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, _, err = ReadFrame([]byte{0x00, 0x00, 0x00, 0x00, 0x09, 'a'})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, _, err = ReadFrame([]byte{0x01, 0x00, 0x00, 0x00, 0x00})
	assert.Error(t, err)
}
