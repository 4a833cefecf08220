package dustdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustlabs/dustdb/protocol"
)

// Store is the storage engine: it maps (pile, record id) to one file under
// the configured root, as <root>/<pile>/<uuid>.<ext>. Record bodies are
// written as decoded plaintext, not hex. That is a deliberate trade-off:
// plaintext on disk keeps records inspectable with ordinary tooling, and a
// reader with filesystem access could decode hex anyway.
//
// The store keeps no in-memory cache or index; every Find re-reads the
// directory and every candidate file from disk. All methods are safe for
// concurrent use because the filesystem is the only shared state and record
// filenames are probabilistically unique.
type Store struct {
	root string
	ext  string
}

// NewStore returns a storage engine rooted at cfg.StorageRoot, writing
// record files with the cfg.DataExt extension.
func NewStore(cfg Config) *Store {
	return &Store{
		root: cfg.StorageRoot,
		ext:  cfg.DataExt,
	}
}

// Create decodes the hex payload and writes it as a new record file in the
// named pile, creating the pile directory on first use. Returns the
// generated record id.
//
// Failure modes: *InvalidPileError, *InvalidPayloadError for a payload that
// is not valid hex/UTF-8, wrapped I/O errors otherwise. A failed file write
// leaves an already-created pile directory behind; it is not rolled back.
func (s *Store) Create(pile, hexData string) (string, error) {
	pile, err := s.normalizePile(pile)
	if err != nil {
		return "", err
	}

	id := NewUUID()

	data, err := protocol.Decode(hexData)
	if err != nil {
		return "", &InvalidPayloadError{Err: err}
	}

	dir := filepath.Join(s.root, pile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating pile directory: %w", err)
	}

	if err := os.WriteFile(s.recordPath(pile, id), []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("writing record: %w", err)
	}

	return id, nil
}

// Find scans the pile for the first record whose JSON field matches compare
// exactly (case-sensitive string equality, no coercion) and returns the
// record's full content hex-encoded. A missing pile or no match yields an
// empty string and no error. Scan order is whatever the filesystem yields,
// so which of several matches is returned is unspecified.
//
// A record that fails to parse as JSON aborts the scan with a
// *InvalidRecordError. A record whose field exists with a non-string value
// does not match and the scan continues.
func (s *Store) Find(pile, field, compare string) (string, error) {
	pile, err := s.normalizePile(pile)
	if err != nil {
		return "", err
	}

	content, err := s.findFirst(pile, func(record map[string]any) bool {
		value, ok := record[field]
		if !ok {
			return false
		}
		str, ok := value.(string)
		if !ok {
			return false
		}
		return str == compare
	})
	if err != nil || content == nil {
		return "", err
	}

	return protocol.Encode(string(content)), nil
}

// Read returns the raw content of one record addressed by pile and id.
// Returns a *NotFoundError when the record file does not exist.
func (s *Store) Read(pile, id string) (string, error) {
	pile, err := s.normalizePile(pile)
	if err != nil {
		return "", err
	}
	if !isValidRecordID(id) {
		return "", &InvalidRecordIDError{ID: id}
	}

	content, err := os.ReadFile(s.recordPath(pile, id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Pile: pile, ID: id}
		}
		return "", fmt.Errorf("reading record: %w", err)
	}

	return string(content), nil
}

// Update is a stub; record mutation is not implemented.
func (s *Store) Update(pile, id, hexData string) error {
	return &NotImplementedError{Op: "update"}
}

// Delete is a stub; record removal is not implemented.
func (s *Store) Delete(pile, id string) error {
	return &NotImplementedError{Op: "delete"}
}

// findFirst enumerates the pile directory in filesystem order and returns
// the raw content of the first record satisfying pred, short-circuiting the
// scan. Returns (nil, nil) when the pile does not exist or nothing matches:
// the absence of a pile is an empty result, not an error.
//
// The linear scan is deliberately isolated here so a real index could
// replace it without touching the protocol layer.
func (s *Store) findFirst(pile string, pred func(map[string]any) bool) ([]byte, error) {
	dir := filepath.Join(s.root, pile)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading pile directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		var record any
		if err := json.Unmarshal(content, &record); err != nil {
			return nil, &InvalidRecordError{Path: path, Err: err}
		}

		// Non-object JSON has no fields to match.
		obj, ok := record.(map[string]any)
		if !ok {
			continue
		}

		if pred(obj) {
			return content, nil
		}
	}

	return nil, nil
}

// normalizePile lowercases the pile name and validates it. Case
// normalization happens before any filesystem operation, so "Users" and
// "users" resolve to the same pile regardless of which entry point the name
// arrived through.
func (s *Store) normalizePile(pile string) (string, error) {
	normalized := strings.ToLower(pile)
	if !protocol.IsValidPile(normalized) {
		return "", &InvalidPileError{Name: pile}
	}
	return normalized, nil
}

func (s *Store) recordPath(pile, id string) string {
	return filepath.Join(s.root, pile, id+"."+s.ext)
}

// isValidRecordID rejects ids that could address outside the pile
// directory. Generated ids are hex and hyphens only, so this only matters
// for ids arriving from external callers (the CLI front-end).
func isValidRecordID(id string) bool {
	if id == "" {
		return false
	}
	for _, b := range []byte(id) {
		switch {
		case b >= 'a' && b <= 'z':
		case b >= '0' && b <= '9':
		case b == '-':
		default:
			return false
		}
	}
	return true
}
