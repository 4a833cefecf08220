package protocol

// CmdType is the command verb of a request. Verbs are case-sensitive
// uppercase on the wire.
type CmdType string

const (
	CmdCreate CmdType = "CREATE"
	CmdPing   CmdType = "PING"
	CmdFind   CmdType = "FIND"
)

// Exit codes carried in the first token of every response line.
const (
	ExitOK  = 0
	ExitErr = 1
)

// errorPrefix precedes the message of every error response.
const errorPrefix = "Error: "

// MaxPileLength bounds pile names. Pile names become directory names, so the
// bound stays well under common filesystem name limits.
const MaxPileLength = 128

// IsValidPile reports whether name is usable as a pile name: non-empty,
// within MaxPileLength, and built only from lowercase letters, digits,
// '-' and '_'. The character set rules out path separators and dot
// sequences, so a valid pile name can never escape the storage root.
func IsValidPile(name string) bool {
	if len(name) == 0 || len(name) > MaxPileLength {
		return false
	}

	for _, b := range []byte(name) {
		switch {
		case b >= 'a' && b <= 'z':
		case b >= '0' && b <= '9':
		case b == '-' || b == '_':
		default:
			return false
		}
	}

	return true
}
