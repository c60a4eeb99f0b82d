// Package feed supplies raw session lines to the client, either from a live
// relay socket or by following a session log on disk.
package feed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
)

// Event is a single line received from the game session.
type Event struct {
	Line string
	Err  error
}

// Conn is one game session. Events delivers lines in order and closes when
// the session ends; Send transmits a command upstream.
type Conn struct {
	events  chan Event
	send    func(string) error
	closeFn func() error
}

func (c *Conn) Events() <-chan Event { return c.events }

func (c *Conn) Send(cmd string) error {
	if c.send == nil {
		return nil
	}
	return c.send(cmd)
}

func (c *Conn) Close() error {
	if c.closeFn == nil {
		return nil
	}
	return c.closeFn()
}

// Connect dials a relay socket (a Lich detached client) and streams its
// lines. The connection closes when ctx is canceled.
func Connect(ctx context.Context, addr string) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	go func() {
		<-ctx.Done()
		nc.Close()
	}()
	c := Attach(ctx, nc)
	c.send = func(cmd string) error {
		_, err := fmt.Fprintf(nc, "%s\n", cmd)
		return err
	}
	c.closeFn = nc.Close
	return c, nil
}

// Attach builds a Conn over any line stream. Feed lines can get long when
// the game dumps a room full of players, so the scanner allows 1 MiB.
func Attach(ctx context.Context, r io.Reader) *Conn {
	out := make(chan Event)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			select {
			case <-ctx.Done():
				return
			case out <- Event{Line: sc.Text()}:
			}
		}
		if err := sc.Err(); err != nil && ctx.Err() == nil {
			select {
			case <-ctx.Done():
			case out <- Event{Err: err}:
			}
		}
	}()
	return &Conn{events: out}
}
