package trailer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmbedURL(t *testing.T) {
	if got := EmbedURL(""); got != "" {
		t.Fatalf("expected empty url for missing id, got %q", got)
	}
	want := "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ?enablejsapi=1"
	if got := EmbedURL(" dQw4w9WgXcQ "); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCommandMessage(t *testing.T) {
	if got := NewCommand(FuncPlay).Message(); got != `{"event":"command","func":"playVideo","args":[]}` {
		t.Fatalf("unexpected play message %s", got)
	}
	if got := NewCommand(FuncStop).Message(); got != `{"event":"command","func":"stopVideo","args":[]}` {
		t.Fatalf("unexpected stop message %s", got)
	}
}

func TestBrowserPlayer_PlayOpensOnce(t *testing.T) {
	var opened []string
	p := &BrowserPlayer{open: func(u string) error {
		opened = append(opened, u)
		return nil
	}}
	if err := p.Send("abc", NewCommand(FuncPlay)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Send("abc", NewCommand(FuncPlay)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opened) != 1 || opened[0] != "https://www.youtube.com/watch?v=abc" {
		t.Fatalf("expected one open of the watch url, got %v", opened)
	}
	if p.Playing() != "abc" {
		t.Fatalf("expected abc playing, got %q", p.Playing())
	}

	if err := p.Send("abc", NewCommand(FuncStop)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Playing() != "" {
		t.Fatalf("expected nothing playing after stop, got %q", p.Playing())
	}
}

func TestBrowserPlayer_InertWithoutID(t *testing.T) {
	p := &BrowserPlayer{open: func(string) error {
		t.Fatal("open must not be called without a video id")
		return nil
	}}
	if err := p.Send("", NewCommand(FuncPlay)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBrowserPlayer_OpenFailure(t *testing.T) {
	p := &BrowserPlayer{open: func(string) error { return errors.New("no display") }}
	if err := p.Send("abc", NewCommand(FuncPlay)); err == nil {
		t.Fatal("expected error")
	}
	if p.Playing() != "" {
		t.Fatalf("failed play must not mark video as playing")
	}
}

func TestOpenerCommand(t *testing.T) {
	link := WatchURL("abc")
	cases := []struct {
		goos string
		name string
		args []string
	}{
		{"linux", "xdg-open", []string{link}},
		{"freebsd", "xdg-open", []string{link}},
		{"darwin", "open", []string{link}},
		{"windows", "cmd", []string{"/c", "start", "", link}},
	}
	for _, c := range cases {
		name, args := openerCommand(c.goos, link)
		if name != c.name {
			t.Fatalf("%s: expected %q, got %q", c.goos, c.name, name)
		}
		if diff := cmp.Diff(c.args, args); diff != "" {
			t.Fatalf("%s: args mismatch (-want +got):\n%s", c.goos, diff)
		}
	}
}
