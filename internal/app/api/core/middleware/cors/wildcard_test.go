package cors

import "testing"

func TestWildcard_match(t *testing.T) {
	tests := []struct {
		pattern string
		origin  string
		want    bool
	}{
		{"http://*.example.com", "http://staging.example.com", true},
		{"http://*.example.com", "http://a.b.example.com", true},
		{"http://*.example.com", "http://example.org", false},
		{"http://*.example.com", "http://", false},
		{"*", "http://anything.example.com", true},
		{"http://fixed.example.com*", "http://fixed.example.com", true},
	}

	for _, tt := range tests {
		w := newWildcard(tt.pattern)
		if got := w.match(tt.origin); got != tt.want {
			t.Errorf("pattern %q match %q = %v, want %v", tt.pattern, tt.origin, got, tt.want)
		}
	}
}

func TestNewWildcard_withoutAsterisk(t *testing.T) {
	w := newWildcard("http://example.com")
	if w.prefix != "http://example.com" || w.suffix != "" {
		t.Errorf("unexpected wildcard parts: prefix=%q suffix=%q", w.prefix, w.suffix)
	}
}
