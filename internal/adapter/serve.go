package adapter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const maxLine = 1 << 20

// Serve reads one JSON request per line from r and writes one JSON response
// per line to w. Each request runs in its own goroutine, so responses may
// arrive out of order and are matched by id. Malformed lines get a failed
// response; the loop only stops at EOF, on a write error, or when ctx is done.
// Serve returns after every in-flight request has answered.
func Serve(ctx context.Context, d Dispatcher, r io.Reader, w io.Writer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	var mu sync.Mutex
	enc := json.NewEncoder(w)
	write := func(resp Response) error {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for scanner.Scan() {
		if gctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			logger.Warn("malformed request", "error", err)
			resp := Response{ID: uuid.NewString(), Message: fmt.Sprintf("malformed request: %v", err)}
			if err := write(resp); err != nil {
				_ = g.Wait()
				return err
			}
			continue
		}
		if strings.TrimSpace(req.ID) == "" {
			req.ID = uuid.NewString()
		}
		logger.Debug("request", "id", req.ID, "action", req.Action, "version", req.Version)
		g.Go(func() error {
			return write(d.Handle(gctx, req))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read requests: %w", err)
	}
	return nil
}
