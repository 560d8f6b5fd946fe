package presenter

import (
	"bytes"
	"html/template"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/glamour"
	"github.com/nijaru/yt-blog/models"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
)

// Render turns generated text into HTML for the result card. HTML output is
// normalised to markdown first so both formats go through one pipeline; raw
// HTML left in the markdown is dropped by the renderer rather than emitted.
func (p *Presenter) Render(content string, format models.OutputFormat) (template.HTML, error) {
	source, err := toMarkdown(content, format)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := p.markdown.Convert([]byte(source), &buf); err != nil {
		return "", errors.Wrap(err, "rendering markdown")
	}

	// goldmark escapes text and omits raw HTML in its default configuration.
	return template.HTML(buf.String()), nil
}

// RenderTerminal styles content for a terminal that is width columns wide.
func (p *Presenter) RenderTerminal(content string, format models.OutputFormat, width int) (string, error) {
	source, err := toMarkdown(content, format)
	if err != nil {
		return "", err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", errors.Wrap(err, "creating terminal renderer")
	}

	out, err := r.Render(source)
	if err != nil {
		return "", errors.Wrap(err, "rendering markdown")
	}
	return out, nil
}

func toMarkdown(content string, format models.OutputFormat) (string, error) {
	if format != models.FormatHTML || !looksLikeHTML(content) {
		return content, nil
	}
	md, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return "", errors.Wrap(err, "converting html to markdown")
	}
	return md, nil
}

func looksLikeHTML(content string) bool {
	trimmed := strings.TrimSpace(content)
	return strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, ">")
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New()
}
