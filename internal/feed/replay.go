package feed

import (
	"context"
	"fmt"

	"github.com/nxadm/tail"
)

// Replay follows a session log on disk, delivering new lines as they are
// written. It shadows a live session logged by another front-end just as
// well as it replays an old one being appended to. Send is a successful
// no-op: there is nobody upstream to talk to.
func Replay(ctx context.Context, path string) (*Conn, error) {
	cfg := tail.Config{Follow: true, ReOpen: true, Logger: tail.DiscardingLogger, MustExist: true}
	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", path, err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer t.Cleanup()
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-t.Lines:
				if !ok {
					return
				}
				ev := Event{Line: line.Text}
				if line.Err != nil {
					ev = Event{Err: line.Err}
				}
				select {
				case <-ctx.Done():
					return
				case out <- ev:
				}
			}
		}
	}()

	return &Conn{
		events:  out,
		send:    func(string) error { return nil },
		closeFn: t.Stop,
	}, nil
}
