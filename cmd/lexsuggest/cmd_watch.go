package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/phrazzld/lexsuggest/internal/events"
	"github.com/phrazzld/lexsuggest/internal/suggest"
	"github.com/spf13/cobra"
)

// submitCommand flushes the pending query immediately.
const submitCommand = ":go"

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run a debounced search session over stdin",
		Long: `Read queries from stdin, one per line, as if each line replaced the
contents of a search box. Searches start once input has been quiet for the
debounce interval. A line containing only ":go" searches immediately.

At end of input any pending query is searched and the command waits for its
result before exiting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.bootstrap(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.runWatch(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// statePrinter writes session state transitions to out and signals settled
// whenever a search stops loading.
type statePrinter struct {
	mu      sync.Mutex
	out     io.Writer
	settled chan struct{}
}

func newStatePrinter(out io.Writer) *statePrinter {
	return &statePrinter{
		out:     out,
		settled: make(chan struct{}, 1),
	}
}

// HandleEvent implements events.EventHandler.
func (p *statePrinter) HandleEvent(_ context.Context, event *events.StateChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	switch event.Type {
	case events.TypeSearchStarted:
		_, err = fmt.Fprintf(p.out, "[%s] %q\n", event.Status, event.Query)
	case events.TypeSearchCleared:
		_, err = fmt.Fprintln(p.out, "[cleared]")
	case events.TypeSearchCompleted:
		_, err = fmt.Fprintf(p.out, "[%s] %d suggestion(s) for %q\n",
			event.Status, event.Suggestions.Len(), event.Query)
		for i, s := range event.Suggestions.Items {
			if err != nil {
				break
			}
			_, err = fmt.Fprintf(p.out, "  %d. %s (%s, %s)\n", i+1, s.Title, s.Year, s.Court)
		}
	}

	if !event.Loading {
		select {
		case p.settled <- struct{}{}:
		default:
		}
	}
	return err
}

// drain discards any settle signal left from earlier searches.
func (p *statePrinter) drain() {
	select {
	case <-p.settled:
	default:
	}
}

// runWatch drives a session from the lines of in until in is exhausted or
// ctx is cancelled. After cancellation the goroutine reading in stays blocked
// until the next line or end of input, since a pending Read cannot be
// interrupted; in is not closed here because it belongs to the caller.
func (app *application) runWatch(ctx context.Context, in io.Reader, out io.Writer) error {
	printer := newStatePrinter(out)

	session, err := app.newSession(printer)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.Close()

	log := app.logger.With("session_id", session.ID().String())
	log.Debug("watch session started")

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug("watch session interrupted")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				app.finishWatch(ctx, session, printer)
				log.Debug("watch session finished")
				return nil
			}
			if strings.TrimSpace(line) == submitCommand {
				session.Submit()
				continue
			}
			session.Input(line)
		}
	}
}

// finishWatch searches any pending query and waits for the current search to
// settle. A settle signal may belong to an earlier search that finished while
// Submit was running, so the loading flag is checked again after each one.
func (app *application) finishWatch(ctx context.Context, session *suggest.Session, printer *statePrinter) {
	printer.drain()
	session.Submit()

	for session.State().Loading {
		select {
		case <-printer.settled:
		case <-ctx.Done():
			return
		}
	}
}
