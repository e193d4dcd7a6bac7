package broker

import (
	"context"
	"sync"
)

type Published struct {
	Topic string
	Key   string
	Event Event
}

// Recorder is an in-process Publisher that keeps every event it receives.
// Err, when set, is returned from Publish instead.
type Recorder struct {
	mu     sync.Mutex
	events []Published
	Err    error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, topic, key string, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, Published{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Events() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Published(nil), r.events...)
}

// Types returns the event types in publish order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.events))
	for _, p := range r.events {
		types = append(types, p.Event.EventType)
	}
	return types
}
