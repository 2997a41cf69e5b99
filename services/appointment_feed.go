// services/appointment_feed.go
package services

import (
	"log"
	"sync"
)

// SnapshotLoader produces the full, sorted appointment snapshot for a client.
type SnapshotLoader interface {
	ClientSnapshot(clientID string) ([]AppointmentView, error)
}

// AppointmentFeed is the live-feed hub. Subscribers register per client id;
// every publish re-loads and re-maps the client's whole appointment set and
// delivers the fresh snapshot to each subscriber synchronously. Callers own
// teardown: unsubscribe before resubscribing under a different client id.
type AppointmentFeed struct {
	mu     sync.Mutex
	loader SnapshotLoader
	nextID int
	subs   map[string]map[int]func([]AppointmentView)
}

func NewAppointmentFeed(loader SnapshotLoader) *AppointmentFeed {
	return &AppointmentFeed{
		loader: loader,
		subs:   make(map[string]map[int]func([]AppointmentView)),
	}
}

// Subscribe registers a callback for a client's appointment snapshots and
// immediately delivers the current one. The returned function cancels the
// subscription and is safe to call more than once.
func (f *AppointmentFeed) Subscribe(clientID string, fn func([]AppointmentView)) func() {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	if f.subs[clientID] == nil {
		f.subs[clientID] = make(map[int]func([]AppointmentView))
	}
	f.subs[clientID][id] = fn
	f.mu.Unlock()

	f.deliver(clientID, fn)

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if m, ok := f.subs[clientID]; ok {
				delete(m, id)
				if len(m) == 0 {
					delete(f.subs, clientID)
				}
			}
		})
	}
}

// Publish pushes a fresh snapshot to every subscriber of the client. Load
// failures are logged and the feed simply stops updating for that push.
func (f *AppointmentFeed) Publish(clientID string) {
	f.mu.Lock()
	fns := make([]func([]AppointmentView), 0, len(f.subs[clientID]))
	for _, fn := range f.subs[clientID] {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	if len(fns) == 0 {
		return
	}

	views, err := f.loader.ClientSnapshot(clientID)
	if err != nil {
		log.Printf("[FEED] snapshot load failed for client %s: %v", clientID, err)
		return
	}
	for _, fn := range fns {
		fn(views)
	}
}

func (f *AppointmentFeed) deliver(clientID string, fn func([]AppointmentView)) {
	views, err := f.loader.ClientSnapshot(clientID)
	if err != nil {
		log.Printf("[FEED] snapshot load failed for client %s: %v", clientID, err)
		return
	}
	fn(views)
}
