package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubRenderer struct {
	outputs [][]byte
	errs    []error
	calls   int
}

func (r *stubRenderer) RenderHTMLToPDF(_ context.Context, _ string) ([]byte, error) {
	i := r.calls
	r.calls++
	if i >= len(r.outputs) {
		i = len(r.outputs) - 1
	}
	return r.outputs[i], r.errs[i]
}

func exportFixture() []ExportSection {
	return []ExportSection{
		{ID: "sum", Title: "Summary", Type: "generic", Content: "<p>Hello</p>", Order: 1},
		{ID: "skills", Title: "Technical Skills", Type: "technical-skills", Content: "<ul><li>Go</li></ul>", Order: 2},
	}
}

func TestBuildHTML(t *testing.T) {
	svc := NewRenderService(nil, "nonexistent-dir")
	html, err := svc.BuildHTML("Jane Doe", "https://www.linkedin.com/in/jane", exportFixture())
	if err != nil {
		t.Fatalf("BuildHTML: %v", err)
	}
	for _, want := range []string{
		"<title>Jane Doe</title>",
		"<h2>Summary</h2>",
		"<p>Hello</p>",
		"<ul><li>Go</li></ul>",
		"linkedin.com",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("BuildHTML output missing %q", want)
		}
	}
}

func TestBuildHTML_NoSource(t *testing.T) {
	svc := NewRenderService(nil, "nonexistent-dir")
	html, err := svc.BuildHTML("Doc", "", exportFixture())
	if err != nil {
		t.Fatalf("BuildHTML: %v", err)
	}
	if strings.Contains(html, "Source:") {
		t.Error("source line rendered without a source URL")
	}
}

func TestLinkLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"https://www.linkedin.com/in/jane", "linkedin.com"},
		{"example.co.uk/profile", "example.co.uk"},
		{"http://localhost:3000/x", "localhost"},
	}
	for _, tt := range tests {
		if got := linkLabel(tt.in); got != tt.want {
			t.Errorf("linkLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderPDF_RetriesOnBadOutput(t *testing.T) {
	r := &stubRenderer{
		outputs: [][]byte{[]byte("not a pdf"), []byte("%PDF-1.4 ok")},
		errs:    []error{nil, nil},
	}
	svc := NewRenderService(r, "nonexistent-dir")
	pdf, err := svc.RenderPDF(context.Background(), "Doc", "", exportFixture())
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		t.Errorf("unexpected output %q", pdf)
	}
	if r.calls != 2 {
		t.Errorf("renderer calls = %d, want 2", r.calls)
	}
}

func TestRenderPDF_GivesUpAfterRetries(t *testing.T) {
	r := &stubRenderer{
		outputs: [][]byte{nil},
		errs:    []error{errors.New("browser crashed")},
	}
	svc := NewRenderService(r, "nonexistent-dir")
	if _, err := svc.RenderPDF(context.Background(), "Doc", "", exportFixture()); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if r.calls != 3 {
		t.Errorf("renderer calls = %d, want 3", r.calls)
	}
}
