package sanitize

import (
	"strings"
	"testing"
)

func TestSanitize_StripsScripts(t *testing.T) {
	s := New()
	tests := []string{
		`<p>hello<script>alert(1)</script></p>`,
		`<p onclick="alert(1)">hello</p>`,
		`<img src=x onerror="alert(1)">hello`,
		`<a href="javascript:alert(1)">hello</a>`,
		`<iframe src="https://evil.example"></iframe>hello`,
	}
	for _, in := range tests {
		got := s.Sanitize(in)
		for _, bad := range []string{"<script", "onclick", "onerror", "javascript:", "<iframe"} {
			if strings.Contains(got, bad) {
				t.Errorf("Sanitize(%q) kept %q: %q", in, bad, got)
			}
		}
		if !strings.Contains(got, "hello") {
			t.Errorf("Sanitize(%q) dropped text content: %q", in, got)
		}
	}
}

func TestSanitize_KeepsAllowedMarkup(t *testing.T) {
	s := New()
	in := `<p>One <strong>two</strong> <em>three</em></p><ul><li>four</li></ul>`
	got := s.Sanitize(in)
	for _, want := range []string{"<p>", "<strong>", "<em>", "<ul>", "<li>"} {
		if !strings.Contains(got, want) {
			t.Errorf("allowed element %q was stripped: %q", want, got)
		}
	}
}

func TestSanitize_LinksGetNoFollow(t *testing.T) {
	s := New()
	got := s.Sanitize(`<p><a href="https://example.com">site</a></p>`)
	if !strings.Contains(got, `href="https://example.com"`) {
		t.Errorf("http link was stripped: %q", got)
	}
	if !strings.Contains(got, `rel="nofollow"`) {
		t.Errorf("missing nofollow: %q", got)
	}
}
