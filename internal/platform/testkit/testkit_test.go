package testkit

import (
	"io"
	"net/http"
	"testing"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() {
		panic("boom")
	})
}

func TestMustContain(t *testing.T) {
	t.Parallel()

	haystack := "fetch ok parse ok load ok"
	MustContain(t, haystack, "parse ok")
	MustNotContain(t, haystack, "failed")
}

func TestLogBuffer(t *testing.T) {
	t.Parallel()

	buf, l := LogBuffer()
	l.Info().Str("stage", "fetch").Msg("fetch ok")
	MustContain(t, buf.String(), `"stage":"fetch"`)
}

func TestServeCSV(t *testing.T) {
	t.Parallel()

	up := ServeCSV(t, http.StatusOK, "a,b\n1,2\n")
	resp, err := http.Get(up.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "a,b\n1,2\n" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}
	if up.Hits() != 1 {
		t.Fatalf("Hits = %d, want 1", up.Hits())
	}
}
