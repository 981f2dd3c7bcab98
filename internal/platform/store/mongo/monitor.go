package mongo

import (
	"context"
	"time"

	"csvconnector/internal/platform/logger"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
)

// CommandEvent is one finished driver command
type CommandEvent struct {
	Command   string
	Database  string
	RequestID int64
	Elapsed   time.Duration
	Failure   string
	Slow      bool
}

// CommandTracer receives finished commands
type CommandTracer interface {
	OnCommand(ctx context.Context, ev CommandEvent)
}

// Tracer returns a tracer that always prints commands when command logging is on,
// independent of the process-wide root level
func Tracer(root logger.Logger) CommandTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "mongo").Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnCommand(_ context.Context, ev CommandEvent) {
	evt := z.log.Info()
	if ev.Slow || ev.Failure != "" {
		evt = z.log.Warn()
	}
	evt = evt.Str("command", ev.Command).
		Str("db", ev.Database).
		Int64("request_id", ev.RequestID).
		Float64("elapsed_ms", float64(ev.Elapsed.Microseconds())/1000.0).
		Bool("slow", ev.Slow)
	if ev.Failure != "" {
		evt = evt.Str("failure", ev.Failure)
	}
	evt.Msg("mongo command")
}

// Monitor adapts a CommandTracer to the driver's command monitor.
// slowMs <= 0 disables the slow flag
func Monitor(t CommandTracer, slowMs int) *event.CommandMonitor {
	if t == nil {
		return nil
	}
	slow := func(d time.Duration) bool { return slowMs > 0 && d >= time.Duration(slowMs)*time.Millisecond }
	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, e *event.CommandSucceededEvent) {
			t.OnCommand(ctx, CommandEvent{
				Command:   e.CommandName,
				Database:  e.DatabaseName,
				RequestID: e.RequestID,
				Elapsed:   e.Duration,
				Slow:      slow(e.Duration),
			})
		},
		Failed: func(ctx context.Context, e *event.CommandFailedEvent) {
			t.OnCommand(ctx, CommandEvent{
				Command:   e.CommandName,
				Database:  e.DatabaseName,
				RequestID: e.RequestID,
				Elapsed:   e.Duration,
				Failure:   e.Failure,
				Slow:      slow(e.Duration),
			})
		},
	}
}
