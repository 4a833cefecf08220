package protocol

import (
	"bufio"
	"strconv"
	"strings"
)

// Response represents the outcome of one request. ExitCode 0 means success
// with an optional message (the generated id for CREATE, the hex-encoded
// record or nothing for FIND, nothing for PING). ExitCode 1 means failure
// and Message holds the error text without the "Error: " prefix.
type Response struct {
	ExitCode int
	Message  string
}

// NewOK returns a success response with the given message.
func NewOK(message string) *Response {
	return &Response{ExitCode: ExitOK, Message: message}
}

// NewError returns an error response with the given message.
func NewError(message string) *Response {
	return &Response{ExitCode: ExitErr, Message: message}
}

// OK reports whether the response carries exit code 0.
func (r *Response) OK() bool {
	return r.ExitCode == ExitOK
}

// Err returns nil for a success response and a *ServerError carrying the
// message otherwise.
func (r *Response) Err() error {
	if r.ExitCode == ExitOK {
		return nil
	}
	return &ServerError{Message: r.Message}
}

// Serialize renders the response as one wire line, without trailing newline.
// Success: "<exit_code> <message>". A response without a message serializes
// with a trailing space ("0 "), which clients rely on: the space always
// separates the exit code from the (possibly empty) message.
// Failure: "<exit_code> Error: <message>".
func (r *Response) Serialize() string {
	if r.ExitCode == ExitOK {
		return strconv.Itoa(r.ExitCode) + " " + r.Message
	}
	return strconv.Itoa(r.ExitCode) + " " + errorPrefix + r.Message
}

// ParseResponse parses one response line (without trailing newline).
// Returns a *ResponseError when the line does not carry an exit code
// followed by a space.
func ParseResponse(line string) (*Response, error) {
	code, message, ok := strings.Cut(line, " ")
	if !ok {
		return nil, &ResponseError{Line: line}
	}

	exitCode, err := strconv.Atoi(code)
	if err != nil {
		return nil, &ResponseError{Line: line}
	}

	if exitCode != ExitOK {
		message = strings.TrimPrefix(message, errorPrefix)
	}

	return &Response{ExitCode: exitCode, Message: message}, nil
}

// ReadResponse reads and parses a single response line from r.
// "\r\n" line endings are tolerated.
func ReadResponse(r *bufio.Reader) (*Response, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}

	return ParseResponse(strings.TrimRight(line, "\r\n"))
}
