package protocol

// Error types for wire protocol parsing and encoding.

// ParseError represents a malformed client request line.
// Always recoverable: the server reports it to the client as a "1 Error: ..."
// response and the connection is not killed by the parser itself.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// DecodeError represents a payload that failed hex or UTF-8 decoding.
//
// Causes:
//   - odd-length hex input
//   - a character pair that is not valid base-16
//   - decoded bytes that are not valid UTF-8
//
// Invalid UTF-8 is a hard error. Decoding never substitutes replacement
// runes, so Decode(Encode(x)) == x holds byte for byte.
type DecodeError struct {
	Message string
	Err     error // Underlying error, if any
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain inspection
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ResponseError represents a client-side failure to parse a response line,
// which suggests either a protocol violation by the server or a bug in the
// client parser. The connection should be closed (it always is: connections
// are single-use).
type ResponseError struct {
	Line string
}

func (e *ResponseError) Error() string {
	return "malformed response line: " + e.Line
}

// ServerError represents an error response (exit code 1) from the server.
// The request reached the server and failed there; the message is the
// server's error text without the "Error: " prefix.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}
