package dustdb

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dustlabs/dustdb/protocol"
	"golang.org/x/sync/semaphore"
)

// maxLineLength caps a request line. It is also the connection read buffer
// size, so an oversized line never occupies more than this much memory before
// it is treated as a framing error: logged, discarded, and never answered.
const maxLineLength = 1 << 20

// Server accepts connections and serves exactly one request per connection:
// it reads lines until one decodes cleanly, parses it, dispatches to the
// storage engine, writes one response line and closes. Undecodable framing
// (oversized or non-UTF-8 lines) is logged and skipped without closing, so
// the one-request cap applies only after a successful decode.
//
// Each connection is handled by its own goroutine. Admission is bounded by a
// semaphore of Config.MaxConns slots; connections beyond the bound are
// accepted but wait for a slot before being served. Handlers share no state
// except the filesystem behind the Store.
type Server struct {
	cfg   Config
	store *Store
	log   *slog.Logger
	sem   *semaphore.Weighted
	wg    sync.WaitGroup
}

// NewServer returns a server dispatching to store. A nil logger defaults to
// slog.Default().
func NewServer(cfg Config, store *Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = DefaultConfig().MaxConns
	}

	return &Server{
		cfg:   cfg,
		store: store,
		log:   logger,
		sem:   semaphore.NewWeighted(maxConns),
	}
}

// ListenAndServe listens on cfg.ListenAddr() and serves until ctx is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.ListenAddr())
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve runs the accept loop on l until ctx is canceled, then closes the
// listener and waits for in-flight handlers to finish. Accept errors are
// logged and the accept is skipped; they never reach a client.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	go func() {
		<-ctx.Done()
		l.Close()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			s.log.Error("accepting connection", "error", err)
			continue
		}

		if err := s.sem.Acquire(ctx, 1); err != nil {
			conn.Close()
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.sem.Release(1)
			s.handleConn(conn)
		}()
	}
}

// handleConn owns one accepted connection for its whole lifetime.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	if d := s.cfg.ConnDeadline; d > 0 {
		conn.SetDeadline(time.Now().Add(d))
	}

	remote := conn.RemoteAddr().String()
	reader := bufio.NewReaderSize(conn, maxLineLength)

	for {
		slice, err := reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			// The line overflowed the buffer, so it can never decode.
			// Drain its remainder without buffering it.
			s.log.Error("discarding request line", "remote", remote, "reason", "line too long")
			if err := discardLine(reader); err != nil {
				if !errors.Is(err, io.EOF) {
					s.log.Error("reading request line", "remote", remote, "error", err)
				}
				return
			}
			continue
		}
		if err != nil {
			// Peer closed or transport failed before sending a full line.
			// Nothing to answer; a partial line is dropped.
			if !errors.Is(err, io.EOF) {
				s.log.Error("reading request line", "remote", remote, "error", err)
			}
			return
		}

		line := strings.TrimRight(string(slice), "\r\n")

		// Framing errors keep the connection open and the read waiting;
		// only a successfully decoded line consumes the one request this
		// connection gets.
		if !utf8.ValidString(line) {
			s.log.Error("discarding request line", "remote", remote, "reason", "invalid UTF-8")
			continue
		}

		resp := s.handleRequest(line, remote)

		if _, err := io.WriteString(conn, resp.Serialize()+"\n"); err != nil {
			s.log.Error("writing response", "remote", remote, "error", err)
		}

		// One request per connection: respond once, then close regardless
		// of further input.
		return
	}
}

// discardLine consumes the rest of an oversized line without retaining it.
// Returns nil once the terminating newline has been read.
func discardLine(r *bufio.Reader) error {
	for {
		_, err := r.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return err
	}
}

// handleRequest parses one decoded line, dispatches it to the storage
// engine, and returns the response to write. Every request and response is
// logged; parse and storage failures become error responses, never handler
// crashes.
func (s *Server) handleRequest(line, remote string) *protocol.Response {
	req, err := protocol.ParseRequest(line)
	if err != nil {
		s.log.Error("request", "remote", remote, "command", line, "bytes", len(line), "error", err)
		return s.logResponse(remote, protocol.NewError(err.Error()))
	}

	s.log.Info("request", "remote", remote, "command", line, "bytes", len(line))

	var resp *protocol.Response
	switch req.Command {
	case protocol.CmdCreate:
		id, err := s.store.Create(req.Pile, req.Data)
		if err != nil {
			resp = protocol.NewError("creating record: " + err.Error())
		} else {
			resp = protocol.NewOK(id)
		}

	case protocol.CmdPing:
		resp = protocol.NewOK("")

	case protocol.CmdFind:
		match, err := s.store.Find(req.Pile, req.Field, req.Compare)
		if err != nil {
			resp = protocol.NewError("finding record: " + err.Error())
		} else {
			resp = protocol.NewOK(match)
		}
	}

	return s.logResponse(remote, resp)
}

func (s *Server) logResponse(remote string, resp *protocol.Response) *protocol.Response {
	if resp.OK() {
		s.log.Info("response", "remote", remote, "exit_code", resp.ExitCode, "message", resp.Message)
	} else {
		s.log.Error("response", "remote", remote, "exit_code", resp.ExitCode, "message", resp.Message)
	}
	return resp
}
