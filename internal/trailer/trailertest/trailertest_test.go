package trailertest

import (
	"testing"

	"github.com/sebastiantruijens/moviegrid/internal/trailer"
)

var _ trailer.Player = (*Recorder)(nil)

func TestRecorder(t *testing.T) {
	var r Recorder
	_ = r.Send("a", trailer.NewCommand(trailer.FuncPlay))
	_ = r.Send("a", trailer.NewCommand(trailer.FuncStop))
	got := r.Sent()
	if len(got) != 2 || got[1].Message != trailer.NewCommand(trailer.FuncStop).Message() {
		t.Fatalf("unexpected recorded commands: %+v", got)
	}
}
