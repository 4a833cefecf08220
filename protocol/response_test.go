package protocol

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_Serialize(t *testing.T) {
	tests := []struct {
		name     string
		resp     *Response
		expected string
	}{
		{
			name:     "ok with message",
			resp:     NewOK("cd8abd45-ad36-4cf6-a520-c1c5d0671d96"),
			expected: "0 cd8abd45-ad36-4cf6-a520-c1c5d0671d96",
		},
		{
			name:     "ok without message keeps the separating space",
			resp:     NewOK(""),
			expected: "0 ",
		},
		{
			name:     "error",
			resp:     NewError("empty request"),
			expected: "1 Error: empty request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resp.Serialize())
		})
	}
}

func TestParseResponse(t *testing.T) {
	resp, err := ParseResponse("0 some-id")
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "some-id", resp.Message)
	assert.NoError(t, resp.Err())
}

func TestParseResponse_EmptyMessage(t *testing.T) {
	resp, err := ParseResponse("0 ")
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Empty(t, resp.Message)
}

func TestParseResponse_Error(t *testing.T) {
	resp, err := ParseResponse("1 Error: unknown command: FOO")
	require.NoError(t, err)

	assert.False(t, resp.OK())
	assert.Equal(t, "unknown command: FOO", resp.Message)

	var serverErr *ServerError
	require.ErrorAs(t, resp.Err(), &serverErr)
	assert.Equal(t, "unknown command: FOO", serverErr.Message)
}

func TestParseResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "no space", line: "0"},
		{name: "non-numeric exit code", line: "abc def"},
		{name: "empty line", line: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse(tt.line)
			require.Nil(t, resp)

			var respErr *ResponseError
			assert.ErrorAs(t, err, &respErr)
		})
	}
}

func TestParseResponse_SerializeRoundTrip(t *testing.T) {
	for _, resp := range []*Response{NewOK("id-123"), NewOK(""), NewError("boom")} {
		parsed, err := ParseResponse(resp.Serialize())
		require.NoError(t, err)
		assert.Equal(t, resp, parsed)
	}
}

func TestReadResponse(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("0 some-id\n"))

	resp, err := ReadResponse(reader)
	require.NoError(t, err)
	assert.Equal(t, "some-id", resp.Message)
}

func TestReadResponse_CRLF(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("1 Error: boom\r\n"))

	resp, err := ReadResponse(reader)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, "boom", resp.Message)
}

func TestReadResponse_EOF(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := ReadResponse(reader)
	assert.ErrorIs(t, err, io.EOF)
}
