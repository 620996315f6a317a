package trailer

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

const embedBase = "https://www.youtube-nocookie.com/embed/"

// EmbedURL returns the embeddable player URL for a YouTube video id,
// with the JS API enabled so the frame accepts play/stop messages.
// An empty id yields "" and the frame stays inert.
func EmbedURL(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return embedBase + url.PathEscape(id) + "?enablejsapi=1"
}

// WatchURL returns the regular YouTube page for a video id.
func WatchURL(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(id)
}

// Func is a player API function addressed by a command message.
type Func string

const (
	FuncPlay Func = "playVideo"
	FuncStop Func = "stopVideo"
)

// Command is the structured message posted to the embedded player.
type Command struct {
	Event string `json:"event"`
	Func  Func   `json:"func"`
	Args  []any  `json:"args"`
}

// NewCommand builds the message for fn.
func NewCommand(fn Func) Command {
	return Command{Event: "command", Func: fn, Args: []any{}}
}

// Message returns the JSON text of the command as the player expects it.
func (c Command) Message() string {
	b, err := json.Marshal(c)
	if err != nil {
		// Command holds only strings and an empty slice.
		panic(err)
	}
	return string(b)
}

// Player executes trailer commands for a video id.
type Player interface {
	Send(id string, cmd Command) error
}

// BrowserPlayer opens the trailer in the default browser on play.
// A terminal has no embedded frame to stop, so stop only forgets the
// video as playing.
type BrowserPlayer struct {
	mu      sync.Mutex
	playing string
	open    func(string) error
}

// NewBrowserPlayer returns a player backed by the system URL opener.
func NewBrowserPlayer() *BrowserPlayer {
	return &BrowserPlayer{open: openBrowser}
}

func (p *BrowserPlayer) Send(id string, cmd Command) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	switch cmd.Func {
	case FuncPlay:
		if p.playing == id {
			return nil
		}
		if err := p.open(WatchURL(id)); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
		p.playing = id
	case FuncStop:
		if p.playing == id {
			p.playing = ""
		}
	default:
		return fmt.Errorf("unknown player function %q", cmd.Func)
	}
	return nil
}

// Playing returns the id of the video last started, if any.
func (p *BrowserPlayer) Playing() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// openerCommand returns the system command that opens link on goos.
func openerCommand(goos, link string) (string, []string) {
	switch goos {
	case "windows":
		return "cmd", []string{"/c", "start", "", link}
	case "darwin":
		return "open", []string{link}
	default:
		return "xdg-open", []string{link}
	}
}

// openBrowser hands link to the desktop's URL opener without waiting
// for it to exit.
func openBrowser(link string) error {
	name, args := openerCommand(runtime.GOOS, link)
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
