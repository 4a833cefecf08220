package dustdb

import (
	"github.com/dustlabs/dustdb/internal"
	"github.com/zeebo/xxh3"
)

// Servers provides the current list of server addresses.
type Servers interface {
	List() []string
}

// StaticServers is a fixed address list.
type StaticServers []string

// NewStaticServers returns a Servers backed by a fixed address list.
func NewStaticServers(addrs ...string) Servers {
	return StaticServers(addrs)
}

func (s StaticServers) List() []string {
	return s
}

// SelectServerFunc picks which server handles a pile. It receives the pile
// name and the current server count and returns an index into the list.
type SelectServerFunc func(pile string, serverCount int) int

// DefaultSelectServer hashes the pile name with xxh3 and maps it onto a
// server with Jump consistent hashing, so all records of a pile pin to one
// server and adding servers moves as few piles as possible.
func DefaultSelectServer(pile string, serverCount int) int {
	return internal.JumpHash(xxh3.HashString(pile), serverCount)
}
