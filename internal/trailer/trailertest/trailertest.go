// Package trailertest provides a trailer.Player for tests.
package trailertest

import (
	"sync"

	"github.com/sebastiantruijens/moviegrid/internal/trailer"
)

// Sent is one command seen by a Recorder.
type Sent struct {
	ID      string
	Message string
}

// Recorder is a Player that keeps every command it receives.
type Recorder struct {
	mu   sync.Mutex
	sent []Sent
}

func (r *Recorder) Send(id string, cmd trailer.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Sent{ID: id, Message: cmd.Message()})
	return nil
}

// Sent returns a copy of the recorded commands.
func (r *Recorder) Sent() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sent(nil), r.sent...)
}
