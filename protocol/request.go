package protocol

import "strings"

// Request represents a parsed command line. Only the fields relevant to the
// command are populated: Pile and Data for CREATE, Pile, Field and Compare
// for FIND, nothing for PING.
type Request struct {
	Command CmdType

	// Pile is the target collection, lowercased during parsing.
	Pile string

	// Data is the hex-encoded record payload (CREATE only). It is carried
	// verbatim; decoding happens in the storage engine.
	Data string

	// Field and Compare select a record by exact string match (FIND only).
	Field   string
	Compare string
}

// ParseRequest parses one line of text (without its trailing newline) into a
// Request. Tokens are separated by single spaces; the final token of each
// command consumes the remainder of the line verbatim, so payloads and
// compare values containing spaces are preserved.
//
// Returns a *ParseError for an empty line, an unknown verb, or a command
// with missing tokens. Each missing token produces a distinct message.
func ParseRequest(line string) (*Request, error) {
	if line == "" {
		return nil, &ParseError{Message: "empty request"}
	}

	verb, rest, _ := strings.Cut(line, " ")

	switch CmdType(verb) {
	case CmdCreate:
		pile, data, ok := strings.Cut(rest, " ")
		if pile == "" {
			return nil, &ParseError{Message: "CREATE must have a pile name specified"}
		}
		if !ok {
			return nil, &ParseError{Message: "CREATE must have data after the pile name"}
		}
		return &Request{
			Command: CmdCreate,
			Pile:    strings.ToLower(pile),
			Data:    data,
		}, nil

	case CmdPing:
		// PING takes no arguments; anything after the verb is ignored.
		return &Request{Command: CmdPing}, nil

	case CmdFind:
		pile, rest, _ := strings.Cut(rest, " ")
		if pile == "" {
			return nil, &ParseError{Message: "FIND must have a pile name specified"}
		}
		field, compare, ok := strings.Cut(rest, " ")
		if field == "" {
			return nil, &ParseError{Message: "FIND must have a field name after the pile name"}
		}
		if !ok {
			return nil, &ParseError{Message: "FIND must have a compare value after the field name"}
		}
		return &Request{
			Command: CmdFind,
			Pile:    strings.ToLower(pile),
			Field:   field,
			Compare: compare,
		}, nil

	default:
		return nil, &ParseError{Message: "unknown command: " + verb}
	}
}

// Serialize renders the request as a wire line, without trailing newline.
// It is the inverse of ParseRequest for well-formed requests.
func (r *Request) Serialize() string {
	switch r.Command {
	case CmdCreate:
		return string(CmdCreate) + " " + r.Pile + " " + r.Data
	case CmdFind:
		return string(CmdFind) + " " + r.Pile + " " + r.Field + " " + r.Compare
	default:
		return string(r.Command)
	}
}
