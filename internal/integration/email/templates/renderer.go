// Package templates provides email template rendering functionality.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/spendlens/backend/internal/domain/entity"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer creates a new template renderer.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// DigestData contains data for the spending digest email template.
type DigestData struct {
	Period     string
	StartDate  string
	EndDate    string
	Total      string
	Count      int
	Categories []DigestCategory
	Insights   []string
}

// DigestCategory is a single category row in the digest.
type DigestCategory struct {
	Name  string
	Total string
}

// RenderDigest renders both bodies of the spending digest email.
func (r *Renderer) RenderDigest(summary *entity.SpendingSummary, insights []string) (html string, text string, err error) {
	data := DigestData{
		Period:    string(summary.Period),
		StartDate: summary.StartDate.Format(time.DateOnly),
		EndDate:   summary.EndDate.Format(time.DateOnly),
		Total:     summary.Total.StringFixed(2),
		Count:     summary.TransactionCount,
		Insights:  insights,
	}
	for _, ct := range summary.ByCategory {
		data.Categories = append(data.Categories, DigestCategory{
			Name:  ct.Category,
			Total: ct.Total.StringFixed(2),
		})
	}

	return r.render("digest", data)
}

// render renders both HTML and text versions of a template.
func (r *Renderer) render(templateName string, data interface{}) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		// Fall back to empty text if no text template exists
		return htmlBuf.String(), "", nil
	}

	return htmlBuf.String(), textBuf.String(), nil
}
