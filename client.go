package dustdb

import (
	"context"
	"net"
	"sync"

	"github.com/dustlabs/dustdb/protocol"
	"github.com/jackc/puddle/v2"
)

// ClientConfig holds configuration for the dustdb client.
type ClientConfig struct {
	// MaxConnsPerServer bounds the number of concurrent connections per
	// server. Connections are single-use (the server closes after one
	// response), so the pool never reuses a connection; it acts as a
	// bounded, context-aware connection gate. Defaults to 16.
	MaxConnsPerServer int32

	// Dialer is the net.Dialer used to create connections. If nil, the
	// default net.Dialer is used.
	Dialer *net.Dialer

	// SelectServer picks which server handles a pile. If nil,
	// DefaultSelectServer is used.
	SelectServer SelectServerFunc

	// NewCircuitBreaker creates a circuit breaker for a server, called once
	// per server address. If nil, no circuit breaker is used. See
	// NewCircuitBreakerConfig.
	NewCircuitBreaker func(serverAddr string) *CircuitBreaker
}

// serverPool is one server address with its connection gate and optional
// circuit breaker.
type serverPool struct {
	addr    string
	gate    *puddle.Pool[*connection]
	breaker *CircuitBreaker
}

// Client speaks the dustdb wire protocol. It hex-encodes payloads on the way
// out and decodes results on the way back, so callers only ever see
// plaintext records.
//
// With more than one server, each pile is pinned to a server by hashing the
// pile name (see DefaultSelectServer). PING is fanned out to every server.
type Client struct {
	servers      Servers
	selectServer SelectServerFunc
	config       ClientConfig

	mu    sync.RWMutex
	pools map[string]*serverPool
}

// NewClient creates a client for the given servers.
// For a single server: NewClient(NewStaticServers("host:port"), ClientConfig{}).
func NewClient(servers Servers, config ClientConfig) *Client {
	if config.MaxConnsPerServer <= 0 {
		config.MaxConnsPerServer = 16
	}
	if config.Dialer == nil {
		config.Dialer = &net.Dialer{}
	}

	selectServer := config.SelectServer
	if selectServer == nil {
		selectServer = DefaultSelectServer
	}

	return &Client{
		servers:      servers,
		selectServer: selectServer,
		config:       config,
		pools:        make(map[string]*serverPool),
	}
}

// Create stores one plaintext record (JSON by convention) in the named pile
// and returns the generated record id.
func (c *Client) Create(ctx context.Context, pile, record string) (string, error) {
	req := &protocol.Request{
		Command: protocol.CmdCreate,
		Pile:    pile,
		Data:    protocol.Encode(record),
	}

	resp, err := c.do(ctx, pile, req.Serialize())
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", err
	}

	return resp.Message, nil
}

// Find returns the first record in the pile whose JSON field equals compare,
// decoded back to plaintext. found is false when the pile has no matching
// record (or does not exist).
func (c *Client) Find(ctx context.Context, pile, field, compare string) (record string, found bool, err error) {
	req := &protocol.Request{
		Command: protocol.CmdFind,
		Pile:    pile,
		Field:   field,
		Compare: compare,
	}

	resp, err := c.do(ctx, pile, req.Serialize())
	if err != nil {
		return "", false, err
	}
	if err := resp.Err(); err != nil {
		return "", false, err
	}
	if resp.Message == "" {
		return "", false, nil
	}

	record, err = protocol.Decode(resp.Message)
	if err != nil {
		return "", false, err
	}
	return record, true, nil
}

// Ping checks liveness of every configured server.
func (c *Client) Ping(ctx context.Context) error {
	addrs := c.servers.List()
	if len(addrs) == 0 {
		return ErrNoServers
	}

	line := (&protocol.Request{Command: protocol.CmdPing}).Serialize()
	for _, addr := range addrs {
		resp, err := c.execute(ctx, addr, line)
		if err != nil {
			return err
		}
		if err := resp.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Close tears down all connection gates, waiting for in-flight round trips.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, sp := range c.pools {
		sp.gate.Close()
	}
	c.pools = make(map[string]*serverPool)
}

func (c *Client) do(ctx context.Context, pile, line string) (*protocol.Response, error) {
	addrs := c.servers.List()
	if len(addrs) == 0 {
		return nil, ErrNoServers
	}

	addr := addrs[c.selectServer(pile, len(addrs))]
	return c.execute(ctx, addr, line)
}

func (c *Client) execute(ctx context.Context, addr, line string) (*protocol.Response, error) {
	sp, err := c.serverFor(addr)
	if err != nil {
		return nil, err
	}

	if sp.breaker != nil {
		return sp.breaker.Execute(func() (*protocol.Response, error) {
			return c.roundTrip(ctx, sp, line)
		})
	}
	return c.roundTrip(ctx, sp, line)
}

// roundTrip acquires a connection slot, dials, runs the one request this
// connection is good for, and destroys the connection. An error response
// (exit code 1) is a successful round trip; only transport and protocol
// failures count against the circuit breaker.
func (c *Client) roundTrip(ctx context.Context, sp *serverPool, line string) (*protocol.Response, error) {
	res, err := sp.gate.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer res.Destroy()

	return res.Value().roundTrip(ctx, line)
}

// serverFor returns the serverPool for addr, creating it on first use.
func (c *Client) serverFor(addr string) (*serverPool, error) {
	c.mu.RLock()
	sp, ok := c.pools[addr]
	c.mu.RUnlock()
	if ok {
		return sp, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if sp, ok := c.pools[addr]; ok {
		return sp, nil
	}

	gate, err := puddle.NewPool(&puddle.Config[*connection]{
		Constructor: func(ctx context.Context) (*connection, error) {
			return dialConnection(ctx, c.config.Dialer, addr)
		},
		Destructor: func(conn *connection) {
			_ = conn.Close()
		},
		MaxSize: c.config.MaxConnsPerServer,
	})
	if err != nil {
		return nil, err
	}

	sp = &serverPool{addr: addr, gate: gate}
	if c.config.NewCircuitBreaker != nil {
		sp.breaker = c.config.NewCircuitBreaker(addr)
	}

	c.pools[addr] = sp
	return sp, nil
}
