package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest_Create(t *testing.T) {
	req, err := ParseRequest("CREATE users 7b226e616d65223a22616c696365227d")
	require.NoError(t, err)

	assert.Equal(t, CmdCreate, req.Command)
	assert.Equal(t, "users", req.Pile)
	assert.Equal(t, "7b226e616d65223a22616c696365227d", req.Data)
}

func TestParseRequest_CreateLowercasesPile(t *testing.T) {
	req, err := ParseRequest("CREATE Users 7b7d")
	require.NoError(t, err)

	assert.Equal(t, "users", req.Pile)
}

func TestParseRequest_Ping(t *testing.T) {
	req, err := ParseRequest("PING")
	require.NoError(t, err)

	assert.Equal(t, CmdPing, req.Command)
	assert.Empty(t, req.Pile)
}

func TestParseRequest_PingIgnoresTrailingTokens(t *testing.T) {
	req, err := ParseRequest("PING whatever else")
	require.NoError(t, err)

	assert.Equal(t, CmdPing, req.Command)
}

func TestParseRequest_Find(t *testing.T) {
	req, err := ParseRequest("FIND users email matthew@example.com")
	require.NoError(t, err)

	assert.Equal(t, CmdFind, req.Command)
	assert.Equal(t, "users", req.Pile)
	assert.Equal(t, "email", req.Field)
	assert.Equal(t, "matthew@example.com", req.Compare)
}

func TestParseRequest_FindCompareKeepsSpaces(t *testing.T) {
	req, err := ParseRequest("FIND users name Alice In Chains")
	require.NoError(t, err)

	assert.Equal(t, "Alice In Chains", req.Compare)
}

func TestParseRequest_FindLowercasesPile(t *testing.T) {
	req, err := ParseRequest("FIND USERS name alice")
	require.NoError(t, err)

	assert.Equal(t, "users", req.Pile)
}

func TestParseRequest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		message string
	}{
		{
			name:    "empty line",
			line:    "",
			message: "empty request",
		},
		{
			name:    "unknown verb",
			line:    "FOO bar baz",
			message: "unknown command: FOO",
		},
		{
			name:    "lowercase verb is unknown",
			line:    "create users 7b7d",
			message: "unknown command: create",
		},
		{
			name:    "create without pile",
			line:    "CREATE",
			message: "CREATE must have a pile name specified",
		},
		{
			name:    "create without data",
			line:    "CREATE users",
			message: "CREATE must have data after the pile name",
		},
		{
			name:    "find without pile",
			line:    "FIND",
			message: "FIND must have a pile name specified",
		},
		{
			name:    "find without field",
			line:    "FIND users",
			message: "FIND must have a field name after the pile name",
		},
		{
			name:    "find without compare",
			line:    "FIND users field",
			message: "FIND must have a compare value after the field name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequest(tt.line)
			require.Nil(t, req)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.message, parseErr.Message)
		})
	}
}

func TestRequest_Serialize(t *testing.T) {
	tests := []struct {
		name     string
		req      *Request
		expected string
	}{
		{
			name:     "create",
			req:      &Request{Command: CmdCreate, Pile: "users", Data: "7b7d"},
			expected: "CREATE users 7b7d",
		},
		{
			name:     "ping",
			req:      &Request{Command: CmdPing},
			expected: "PING",
		},
		{
			name:     "find",
			req:      &Request{Command: CmdFind, Pile: "users", Field: "name", Compare: "alice smith"},
			expected: "FIND users name alice smith",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.req.Serialize())
		})
	}
}

func TestRequest_SerializeRoundTrip(t *testing.T) {
	original := &Request{Command: CmdFind, Pile: "users", Field: "name", Compare: "a b c"}

	parsed, err := ParseRequest(original.Serialize())
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}
