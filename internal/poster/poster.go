// Package poster renders movie posters as ANSI art for terminal cards.
package poster

import (
	"context"
	"fmt"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/eliukblau/pixterm/pkg/ansimage"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// maxPosterBytes caps a single download.
const maxPosterBytes = 10 << 20

// Loader fetches posters (normally through the image proxy) and renders
// them at a fixed cell size.
type Loader struct {
	client *http.Client
	// Width and Height are the rendered size in terminal cells.
	Width  int
	Height int
	limit  int
	log    *slog.Logger
}

// NewLoader returns a loader that runs at most limit fetches at once.
func NewLoader(client *http.Client, width, height, limit int, log *slog.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if limit < 1 {
		limit = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		client: client,
		Width:  width,
		Height: height,
		limit:  limit,
		log:    log,
	}
}

// Render downloads the image at url and returns it as ANSI text,
// one line per cell row.
func (l *Loader) Render(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("poster fetch failed with status code: %d", resp.StatusCode)
	}

	// Without dithering every cell row holds two pixel rows.
	img, err := ansimage.NewScaledFromReader(io.LimitReader(resp.Body, maxPosterBytes),
		2*l.Height, l.Width, color.Black, ansimage.ScaleModeFill, ansimage.NoDithering)
	if err != nil {
		return "", fmt.Errorf("decode poster: %w", err)
	}
	return strings.TrimRight(img.Render(), "\n"), nil
}

// Load renders every distinct non-empty url concurrently. Failed posters
// are logged and left out of the result; only cancellation of ctx is
// returned as an error.
func (l *Loader) Load(ctx context.Context, urls []string) (map[string]string, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]string, len(urls))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit)

	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		g.Go(func() error {
			art, err := l.Render(gctx, u)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				l.log.Warn("poster unavailable", "url", u, "err", err)
				return nil
			}
			mu.Lock()
			out[u] = art
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
