package db

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ChangeChannel is the single NOTIFY channel both table triggers publish to.
const ChangeChannel = "squadfinder_changes"

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
)

// ChangeEvent describes one row-change notification. Op is INSERT, UPDATE
// or DELETE.
type ChangeEvent struct {
	Table string
	Op    string
}

// ChangeListener wraps a pq.Listener into a single coalescing event channel
// covering both the squads and members tables.
type ChangeListener struct {
	listener *pq.Listener
	events   chan ChangeEvent
	done     chan struct{}
	log      *zap.Logger
}

func NewChangeListener(connStr string, log *zap.Logger) (*ChangeListener, error) {
	l := &ChangeListener{
		events: make(chan ChangeEvent, 1),
		done:   make(chan struct{}),
		log:    log,
	}

	l.listener = pq.NewListener(connStr, listenerMinReconnect, listenerMaxReconnect,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Warn("listener connection event", zap.Int("event", int(ev)), zap.Error(err))
			}
		})

	if err := l.listener.Listen(ChangeChannel); err != nil {
		l.listener.Close()
		return nil, err
	}

	go l.run()
	return l, nil
}

// Events delivers change notifications. The channel has capacity one and
// sends are non-blocking, so rapid bursts coalesce; consumers get at least
// one event after any change.
func (l *ChangeListener) Events() <-chan ChangeEvent {
	return l.events
}

func (l *ChangeListener) run() {
	defer close(l.events)
	for {
		select {
		case <-l.done:
			return
		case n, ok := <-l.listener.Notify:
			if !ok {
				return
			}
			if n == nil {
				// Reconnect marker from pq; treat it as a change so
				// the consumer reloads anything missed.
				l.push(ChangeEvent{Table: "", Op: "RECONNECT"})
				continue
			}
			l.push(parsePayload(n.Extra))
		}
	}
}

func (l *ChangeListener) push(ev ChangeEvent) {
	select {
	case l.events <- ev:
	default:
	}
}

// Close stops the listener. No events are delivered after it returns.
func (l *ChangeListener) Close() error {
	close(l.done)
	return l.listener.Close()
}

func parsePayload(payload string) ChangeEvent {
	table, op, found := strings.Cut(payload, ":")
	if !found {
		return ChangeEvent{Table: payload}
	}
	return ChangeEvent{Table: table, Op: op}
}
