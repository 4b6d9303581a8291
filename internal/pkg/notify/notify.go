// Package notify announces committed record changes on a Redis channel.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	EmployeeCreated   = "employee.created"
	EmployeeDeleted   = "employee.deleted"
	AttendanceCreated = "attendance.created"
)

type Event struct {
	Type         string    `json:"type"`
	EmployeeID   int       `json:"employee_id"`
	AttendanceID int       `json:"attendance_id,omitempty"`
	Date         string    `json:"date,omitempty"`
	Status       string    `json:"status,omitempty"`
	At           time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Ping(ctx context.Context) error
}

// Nop drops every event. It is used when no Redis address is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Ping(context.Context) error { return nil }

type Redis struct {
	client  *redis.Client
	channel string
}

func NewRedis(client *redis.Client, channel string) *Redis {
	return &Redis{client: client, channel: channel}
}

func (r *Redis) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "encoding event")
	}

	return errors.Wrapf(r.client.Publish(ctx, r.channel, payload).Err(), "publishing to %s", r.channel)
}

func (r *Redis) Ping(ctx context.Context) error {
	return errors.Wrap(r.client.Ping(ctx).Err(), "pinging redis")
}

// Notifier stamps events and publishes them from a single background worker,
// in the order they were queued. Each publish has its own deadline,
// independent of the request that produced the event. Failures are logged
// and never returned.
type Notifier struct {
	pub     Publisher
	log     *log.Logger
	now     func() time.Time
	timeout time.Duration

	mu      sync.RWMutex
	closed  bool
	queue   chan queued
	pending sync.WaitGroup
}

type queued struct {
	ctx   context.Context
	event Event
}

const (
	PublishTimeout = 2 * time.Second
	QueueSize      = 256
)

func NewNotifier(pub Publisher, log *log.Logger) *Notifier {
	if pub == nil {
		pub = Nop{}
	}

	n := &Notifier{
		pub:     pub,
		log:     log,
		now:     time.Now,
		timeout: PublishTimeout,
		queue:   make(chan queued, QueueSize),
	}
	go n.run()

	return n
}

// Notify queues event and returns at once. Values carried by ctx reach the
// publisher but its cancellation does not. Events are dropped when the
// queue is full or the notifier is closed.
func (n *Notifier) Notify(ctx context.Context, event Event) {
	if event.At.IsZero() {
		event.At = n.now().UTC()
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.log.Printf("notify: %s: notifier closed, event dropped", event.Type)
		return
	}

	n.pending.Add(1)
	select {
	case n.queue <- queued{ctx: context.WithoutCancel(ctx), event: event}:
	default:
		n.pending.Done()
		n.log.Printf("notify: %s: queue full, event dropped", event.Type)
	}
}

func (n *Notifier) run() {
	for q := range n.queue {
		ctx, cancel := context.WithTimeout(q.ctx, n.timeout)
		if err := n.pub.Publish(ctx, q.event); err != nil {
			n.log.Printf("notify: %s: %v", q.event.Type, err)
		}
		cancel()
		n.pending.Done()
	}
}

// Flush blocks until every queued event has been handed to the publisher.
func (n *Notifier) Flush() {
	n.pending.Wait()
}

// Close stops accepting events and waits for the queue to drain.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.queue)
	n.mu.Unlock()

	n.Flush()
}

func (n *Notifier) Ping(ctx context.Context) error {
	return n.pub.Ping(ctx)
}
