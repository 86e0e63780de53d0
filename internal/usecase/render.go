package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// documentTemplate is the built-in competence-file layout. A
// templates/document.html on disk overrides it.
const documentTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<header>
  <h1>{{.Title}}</h1>
  {{if .SourceLabel}}<p class="source">Source: {{.SourceLabel}}</p>{{end}}
  <p class="generated">Generated {{.Generated}}</p>
</header>
{{range .Sections}}
<section class="{{.Type}}">
  <h2>{{.Title}}</h2>
  <div class="content">{{.Content}}</div>
</section>
{{end}}
</body>
</html>`

type renderData struct {
	Title       string
	SourceLabel string
	Generated   string
	Sections    []renderSection
}

type renderSection struct {
	Title   string
	Type    string
	Content template.HTML
}

// RenderService assembles export views into a full HTML document and
// drives the renderer collaborator with retry and output validation.
type RenderService struct {
	renderer Renderer
	tplDir   string
}

func NewRenderService(renderer Renderer, tplDir string) *RenderService {
	return &RenderService{renderer: renderer, tplDir: tplDir}
}

// BuildHTML assembles the export view into a standalone HTML document,
// inlining the stylesheet when one is found so the output renders the
// same regardless of where it ends up.
func (r *RenderService) BuildHTML(title, sourceURL string, sections []ExportSection) (string, error) {
	tplText := documentTemplate
	if b, err := os.ReadFile(filepath.Join(r.tplDir, "document.html")); err == nil {
		tplText = string(b)
	}
	tpl, err := template.New("document").Parse(tplText)
	if err != nil {
		return "", fmt.Errorf("parse document template: %w", err)
	}

	data := renderData{
		Title:       title,
		SourceLabel: linkLabel(sourceURL),
		Generated:   time.Now().Format("2006-01-02"),
	}
	for _, s := range sections {
		data.Sections = append(data.Sections, renderSection{
			Title: s.Title,
			Type:  s.Type,
			// Section content is sanitized canonical HTML by invariant.
			Content: template.HTML(s.Content),
		})
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute document template: %w", err)
	}

	html := buf.String()
	if css := r.stylesheet(); css != "" {
		block := "<style>" + css + "</style>"
		if strings.Contains(strings.ToLower(html), "<head>") {
			html = strings.Replace(html, "<head>", "<head>"+block, 1)
		} else {
			html = block + html
		}
	}
	return html, nil
}

// RenderPDF assembles the document and renders it, retrying transient
// renderer failures and validating the PDF signature.
func (r *RenderService) RenderPDF(ctx context.Context, title, sourceURL string, sections []ExportSection) ([]byte, error) {
	html, err := r.BuildHTML(title, sourceURL, sections)
	if err != nil {
		return nil, err
	}

	var pdf []byte
	var renderErr error
	attempts := 3
	for i := 0; i < attempts; i++ {
		pdf, renderErr = r.renderer.RenderHTMLToPDF(ctx, html)
		if renderErr == nil {
			if len(pdf) > 0 && strings.HasPrefix(string(pdf), "%PDF") {
				return pdf, nil
			}
			renderErr = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("rendering failed after %d attempts: %w", attempts, renderErr)
}

func (r *RenderService) stylesheet() string {
	candidates := []string{
		filepath.Join(r.tplDir, "style.css"),
		"templates/style.css",
		"./style.css",
	}
	for _, c := range candidates {
		if b, err := os.ReadFile(c); err == nil {
			return string(b)
		}
	}
	return ""
}

// linkLabel shortens a URL to a tidy eTLD+1 label for display, falling
// back to the bare hostname when the public-suffix lookup fails.
func linkLabel(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	candidate := rawURL
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return rawURL
	}
	host := parsed.Hostname()
	if host == "" {
		return rawURL
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}
