package dustdb

import (
	"errors"
	"strconv"
)

// Error types for storage engine operations. All of them surface to the
// client as a one-line "1 Error: ..." response; none are process-fatal.

// ErrNoServers is returned by the client when the server list is empty.
var ErrNoServers = errors.New("dustdb: no servers available")

// InvalidPayloadError is returned by Create when the payload fails hex or
// UTF-8 decoding. Wraps the underlying *protocol.DecodeError.
type InvalidPayloadError struct {
	Err error
}

func (e *InvalidPayloadError) Error() string {
	return "invalid payload: " + e.Err.Error()
}

// Unwrap returns the underlying error for error chain inspection
func (e *InvalidPayloadError) Unwrap() error {
	return e.Err
}

// InvalidRecordError is returned by Find when a stored record fails to parse
// as JSON during a scan. The scan aborts rather than skipping the bad record
// silently: a corrupt file is an operator problem, not a cache miss.
type InvalidRecordError struct {
	Path string
	Err  error
}

func (e *InvalidRecordError) Error() string {
	return "invalid record " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for error chain inspection
func (e *InvalidRecordError) Unwrap() error {
	return e.Err
}

// InvalidPileError is returned when a pile name fails validation after
// lowercasing. Pile names become directory names under the storage root, so
// anything that could address outside the root is rejected here.
type InvalidPileError struct {
	Name string
}

func (e *InvalidPileError) Error() string {
	return "invalid pile name: " + strconv.Quote(e.Name)
}

// InvalidRecordIDError is returned when a record id contains characters that
// could address outside the pile directory.
type InvalidRecordIDError struct {
	ID string
}

func (e *InvalidRecordIDError) Error() string {
	return "invalid record id: " + strconv.Quote(e.ID)
}

// NotFoundError is returned by Read when the addressed record file does not
// exist. Note that Find treats a missing pile as an empty result, not as an
// error.
type NotFoundError struct {
	Pile string
	ID   string
}

func (e *NotFoundError) Error() string {
	return "record not found: " + e.Pile + "/" + e.ID
}

// NotImplementedError is returned by the Update and Delete stubs.
type NotImplementedError struct {
	Op string
}

func (e *NotImplementedError) Error() string {
	return e.Op + " is not implemented"
}
