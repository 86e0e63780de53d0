package usecase

import (
	"reflect"
	"testing"

	"competence-editor/internal/domain"
)

func TestSkills_RoundTrip(t *testing.T) {
	skills := []string{"Go", "PostgreSQL", "C++ & CGo"}
	encoded := EncodeSkills(skills)
	got := DecodeSkills(encoded)
	if !reflect.DeepEqual(got, skills) {
		t.Errorf("round trip: got %v, want %v", got, skills)
	}
}

func TestEncodeSkills_DropsEmpties(t *testing.T) {
	got := EncodeSkills([]string{"Go", "  ", "", "SQL"})
	want := "<ul><li>Go</li><li>SQL</li></ul>"
	if got != want {
		t.Errorf("EncodeSkills = %q, want %q", got, want)
	}
}

func TestDecodeSkills_FromPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"<p>Go, Docker; Kubernetes</p>", []string{"Go", "Docker", "Kubernetes"}},
		{"Python • SQL • Terraform", []string{"Python", "SQL", "Terraform"}},
		{"<p>Go</p><p>Rust</p>", []string{"Go", "Rust"}},
		{"", nil},
		{"<ul></ul>", nil},
	}
	for _, tt := range tests {
		if got := DecodeSkills(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("DecodeSkills(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecodeSkills_PrefersListItems(t *testing.T) {
	in := "<p>Ignored, intro; text</p><ul><li>Go</li><li>SQL</li></ul>"
	want := []string{"Go", "SQL"}
	if got := DecodeSkills(in); !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeSkills(%q) = %v, want %v", in, got, want)
	}
}

func TestLanguages_RoundTrip(t *testing.T) {
	items := []domain.LanguageItem{
		{Name: "English", Level: 5},
		{Name: "German", Level: 4},
		{Name: "French", Level: 3},
		{Name: "Spanish", Level: 2},
		{Name: "Japanese", Level: 1},
		{Name: "Latin", Level: 0},
	}
	encoded := EncodeLanguages(items)
	got := DecodeLanguages(encoded)
	if !reflect.DeepEqual(got, items) {
		t.Errorf("round trip:\n got %v\nwant %v", got, items)
	}
}

func TestDecodeLanguages_Hints(t *testing.T) {
	tests := []struct {
		in    string
		level int
	}{
		{"English - Native", 5},
		{"English (Mother Tongue)", 5},
		{"German – Fluent", 4},
		{"German - Full Professional", 4},
		{"French - Conversational", 3},
		{"French - Professional Working", 4}, // "professional" outranks "working"
		{"Spanish - Basic", 2},
		{"Spanish (Elementary)", 2},
		{"Japanese - Beginner", 1},
		{"Latin - None", 0},
		{"Dutch", 3}, // no hint defaults to the middle tier
	}
	for _, tt := range tests {
		got := DecodeLanguages("<ul><li>" + tt.in + "</li></ul>")
		if len(got) != 1 {
			t.Fatalf("DecodeLanguages(%q) = %v, want one item", tt.in, got)
		}
		if got[0].Level != tt.level {
			t.Errorf("DecodeLanguages(%q) level = %d, want %d", tt.in, got[0].Level, tt.level)
		}
	}
}

func TestDecodeLanguages_FromPlainText(t *testing.T) {
	got := DecodeLanguages("English - Native\nGerman - Intermediate")
	want := []domain.LanguageItem{
		{Name: "English", Level: 5},
		{Name: "German", Level: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeLanguages = %v, want %v", got, want)
	}
}

func TestEncodeLanguages_SkipsNameless(t *testing.T) {
	got := EncodeLanguages([]domain.LanguageItem{
		{Name: "  ", Level: 4},
		{Name: "English", Level: 5},
	})
	want := "<ul><li><strong>English</strong> - Native</li></ul>"
	if got != want {
		t.Errorf("EncodeLanguages = %q, want %q", got, want)
	}
}
