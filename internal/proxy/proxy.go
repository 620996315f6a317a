package proxy

import (
	"io"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"time"
)

// Handler relays remote images through the local origin so pages can
// show posters without mixed-content or CORS failures.
type Handler struct {
	client *nethttp.Client
	log    *slog.Logger
}

// New returns a proxy handler whose upstream fetches time out after
// timeout. A zero timeout means no limit beyond the caller's request.
func New(timeout time.Duration, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		client: &nethttp.Client{Timeout: timeout},
		log:    log,
	}
}

// ServeHTTP handles GET /proxy-image?url=<encoded URL>.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		httpError(w, nethttp.StatusBadRequest, "Image URL is required")
		return
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		httpError(w, nethttp.StatusBadRequest, "Image URL must be an absolute http(s) URL")
		return
	}

	req, err := nethttp.NewRequestWithContext(r.Context(), nethttp.MethodGet, u.String(), nil)
	if err != nil {
		httpError(w, nethttp.StatusBadRequest, "Image URL must be an absolute http(s) URL")
		return
	}
	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Warn("proxy fetch failed", "url", u.String(), "err", err)
		httpError(w, nethttp.StatusInternalServerError, "Internal server error")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		h.log.Info("proxy upstream status", "url", u.String(), "status", resp.StatusCode)
		httpError(w, resp.StatusCode, "Error fetching image")
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		w.Header().Set("Content-Length", cl)
	}
	w.WriteHeader(resp.StatusCode)
	fw := flushWriter{w: w}
	fw.f, _ = w.(nethttp.Flusher)
	if _, err := io.Copy(fw, resp.Body); err != nil {
		h.log.Debug("proxy copy aborted", "url", u.String(), "err", err)
	}
}

// flushWriter pushes every chunk to the client as soon as it is copied.
type flushWriter struct {
	w io.Writer
	f nethttp.Flusher
}

func (fw flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if fw.f != nil {
		fw.f.Flush()
	}
	return n, err
}

func httpError(w nethttp.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
