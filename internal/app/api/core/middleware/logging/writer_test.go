package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriterWrapper_defaultStatus(t *testing.T) {
	ww := newWriterWrapper(httptest.NewRecorder())

	if ww.StatusCode != http.StatusOK {
		t.Errorf("expected default status %d, got %d", http.StatusOK, ww.StatusCode)
	}
	if ww.WrittenBytes != 0 {
		t.Errorf("expected no written bytes, got %d", ww.WrittenBytes)
	}
}

func TestWriterWrapper_tracksStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := newWriterWrapper(rec)

	ww.WriteHeader(http.StatusNotFound)

	if ww.StatusCode != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, ww.StatusCode)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected underlying recorder status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestWriterWrapper_tracksBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := newWriterWrapper(rec)

	_, _ = ww.Write([]byte("hello"))
	_, _ = ww.Write([]byte(" world"))

	if ww.WrittenBytes != 11 {
		t.Errorf("expected 11 written bytes, got %d", ww.WrittenBytes)
	}
	if rec.Body.String() != "hello world" {
		t.Errorf("expected body to reach the underlying writer, got %q", rec.Body.String())
	}
}
