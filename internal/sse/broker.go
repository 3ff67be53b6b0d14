// Package sse implements a Server-Sent Events broker for corpus lifecycle
// notifications.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
)

// Event is a broadcast payload with its SSE event type.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Broker fans events out to connected SSE clients.
//
// A single loop goroutine owns the subscriber set; every public method
// talks to it over channels, so there is no locking.
type Broker struct {
	subCh     chan chan []byte
	unsubCh   chan chan []byte
	eventCh   chan Event
	countCh   chan chan int
	stopCh    chan struct{}
	loopEnded chan struct{}
	closed    atomic.Bool
}

// NewBroker creates a broker and starts its loop.
func NewBroker() *Broker {
	b := &Broker{
		subCh:     make(chan chan []byte),
		unsubCh:   make(chan chan []byte),
		eventCh:   make(chan Event, 64),
		countCh:   make(chan chan int),
		stopCh:    make(chan struct{}),
		loopEnded: make(chan struct{}),
	}
	go b.loop()
	return b
}

func (b *Broker) loop() {
	defer close(b.loopEnded)

	subs := make(map[chan []byte]struct{})

	for {
		select {
		case <-b.stopCh:
			for ch := range subs {
				close(ch)
			}
			return

		case ch := <-b.subCh:
			subs[ch] = struct{}{}

		case ch := <-b.unsubCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case ev := <-b.eventCh:
			payload, err := json.Marshal(ev.Data)
			if err != nil {
				continue
			}
			frame := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", ev.Type, payload))
			for ch := range subs {
				select {
				case ch <- frame:
				default:
					// Slow client; dropping beats stalling the loop.
				}
			}

		case reply := <-b.countCh:
			reply <- len(subs)
		}
	}
}

// Close stops the loop and closes every subscriber channel.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.loopEnded
}

// Subscribe registers a new client and returns its receive channel.
// After Close the returned channel is already closed.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	if b.closed.Load() {
		close(ch)
		return ch
	}
	select {
	case b.subCh <- ch:
	case <-b.loopEnded:
		close(ch)
	}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubCh <- ch:
	case <-b.loopEnded:
	}
}

// ClientCount reports how many clients are connected.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}
	reply := make(chan int, 1)
	select {
	case b.countCh <- reply:
	case <-b.loopEnded:
		return 0
	}
	select {
	case n := <-reply:
		return n
	case <-b.loopEnded:
		return 0
	}
}

// Publish broadcasts an event to every connected client.
func (b *Broker) Publish(ev Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.eventCh <- ev:
	case <-b.loopEnded:
	}
}

// PublishCorpusStale announces that the corpus data file diverged from the
// loaded snapshot. Admin UIs surface this as a "restart to reload" banner.
func (b *Broker) PublishCorpusStale(path, checksum string) {
	b.Publish(Event{
		Type: "corpus.stale",
		Data: map[string]string{"path": path, "checksum": checksum},
	})
}

// ServeHTTP is the SSE endpoint handler (GET /api/events).
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case frame, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(frame)
			flusher.Flush()
		}
	}
}
