package client

import (
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"testing"

	"diptab/pkg/dip"
)

// newTestDaemon serves handler on a unix socket in a temp dir and
// returns a client pointed at it.
func newTestDaemon(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	sock := filepath.Join(t.TempDir(), "diptab.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	srv := &http.Server{Handler: handler}
	go srv.Serve(l) //nolint:errcheck
	t.Cleanup(func() { _ = srv.Close() })

	return NewClient(sock)
}

func TestGetTableModeQuery(t *testing.T) {
	queries := make(chan string, 1)
	c := newTestDaemon(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"headers":["DIP"],"rows":[]}`))
	}))

	// No mode: the parameter must be absent from the request, so the
	// daemon falls back to its configured default instead of rejecting
	// an empty value.
	if _, err := c.GetTable(""); err != nil {
		t.Fatalf("GetTable without mode: %v", err)
	}
	if q := <-queries; q != "" {
		t.Errorf("query = %q, want no parameters for the default mode", q)
	}

	if _, err := c.GetTable(dip.ModeLitre); err != nil {
		t.Fatalf("GetTable litre: %v", err)
	}
	if q := <-queries; q != "mode=litre" {
		t.Errorf("query = %q, want mode=litre", q)
	}
}

func TestGetPDFRawWithoutMode(t *testing.T) {
	queries := make(chan string, 1)
	c := newTestDaemon(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.RawQuery
		_, _ = w.Write([]byte("%PDF-"))
	}))

	if _, err := c.GetPDF("", true); err != nil {
		t.Fatalf("GetPDF: %v", err)
	}
	if q := <-queries; q != "raw=true" {
		t.Errorf("query = %q, want raw=true with mode omitted", q)
	}
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	c := newTestDaemon(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := c.Get("/records/99")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound in the chain", err)
	}
}
