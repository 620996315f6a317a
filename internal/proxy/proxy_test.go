package proxy

import (
	"bytes"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x01, 0x02}

func proxyReq(target string) *nethttp.Request {
	return httptest.NewRequest("GET", "/proxy-image?url="+url.QueryEscape(target), nil)
}

func TestProxy_MissingURL(t *testing.T) {
	rr := httptest.NewRecorder()
	New(time.Second, nil).ServeHTTP(rr, httptest.NewRequest("GET", "/proxy-image", nil))
	if rr.Code != 400 {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("expected plain text error, got %q", ct)
	}
	if rr.Body.String() != "Image URL is required" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestProxy_RejectsNonHTTP(t *testing.T) {
	for _, target := range []string{"/etc/passwd", "file:///etc/passwd", "ftp://x/y.png", "http://"} {
		rr := httptest.NewRecorder()
		New(time.Second, nil).ServeHTTP(rr, proxyReq(target))
		if rr.Code != 400 {
			t.Fatalf("%s: expected 400, got %d", target, rr.Code)
		}
	}
}

func TestProxy_RelaysBytesAndContentType(t *testing.T) {
	upstream := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))
	defer upstream.Close()

	rr := httptest.NewRecorder()
	New(time.Second, nil).ServeHTTP(rr, proxyReq(upstream.URL+"/poster.png"))
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	if !bytes.Equal(rr.Body.Bytes(), pngBytes) {
		t.Fatalf("body differs from upstream: %v", rr.Body.Bytes())
	}
}

func TestProxy_PropagatesUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		nethttp.NotFound(w, r)
	}))
	defer upstream.Close()

	rr := httptest.NewRecorder()
	New(time.Second, nil).ServeHTTP(rr, proxyReq(upstream.URL+"/missing.jpg"))
	if rr.Code != 404 {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if rr.Body.String() != "Error fetching image" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestProxy_UnreachableIsNot2xx(t *testing.T) {
	upstream := httptest.NewServer(nethttp.NotFoundHandler())
	target := upstream.URL + "/x.jpg"
	upstream.Close()

	rr := httptest.NewRecorder()
	New(time.Second, nil).ServeHTTP(rr, proxyReq(target))
	if rr.Code != 500 {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Fatalf("expected an error body")
	}
}

func TestProxy_StreamsBeforeUpstreamFinishes(t *testing.T) {
	release := make(chan struct{})
	upstream := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("first"))
		w.(nethttp.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte("second"))
	}))
	defer upstream.Close()

	front := httptest.NewServer(New(5*time.Second, nil))
	defer front.Close()

	resp, err := nethttp.Get(front.URL + "/proxy-image?url=" + url.QueryEscape(upstream.URL+"/big.jpg"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, len("first"))
		_, _ = io.ReadFull(resp.Body, buf)
		got <- buf
	}()
	select {
	case b := <-got:
		if string(b) != "first" {
			t.Fatalf("unexpected first chunk %q", b)
		}
	case <-time.After(3 * time.Second):
		close(release)
		t.Fatal("first chunk was not streamed before the upstream finished")
	}
	close(release)

	rest, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read rest: %v", err)
	}
	if string(rest) != "second" {
		t.Fatalf("unexpected remainder %q", rest)
	}
}
