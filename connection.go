package dustdb

import (
	"bufio"
	"context"
	"io"
	"net"
	"time"

	"github.com/dustlabs/dustdb/protocol"
)

// connection is a client-side connection to one server. Connections are
// single-use: the server closes after writing one response, so a connection
// carries exactly one round trip and is then destroyed.
type connection struct {
	conn   net.Conn
	reader *bufio.Reader
}

func dialConnection(ctx context.Context, dialer *net.Dialer, addr string) (*connection, error) {
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	return &connection{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}, nil
}

// roundTrip writes one request line and reads the one response line the
// server sends back. The ctx deadline, if any, covers both.
func (c *connection) roundTrip(ctx context.Context, line string) (*protocol.Response, error) {
	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetDeadline(deadline)
	} else {
		c.conn.SetDeadline(time.Time{})
	}

	if _, err := io.WriteString(c.conn, line+"\n"); err != nil {
		return nil, err
	}

	return protocol.ReadResponse(c.reader)
}

func (c *connection) Close() error {
	return c.conn.Close()
}
