// Package presenter shows generated posts and exports them. Copy and
// download both work on the raw, unrendered text.
package presenter

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
)

// Clipboard is the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

type Presenter struct {
	markdown  goldmark.Markdown
	clipboard Clipboard
	tempDir   string
	logger    *logrus.Logger
}

type Option func(*Presenter)

func WithClipboard(cb Clipboard) Option {
	return func(p *Presenter) {
		p.clipboard = cb
	}
}

// WithTempDir sets where transient download files are created.
func WithTempDir(dir string) Option {
	return func(p *Presenter) {
		p.tempDir = dir
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(p *Presenter) {
		p.logger = logger
	}
}

func New(opts ...Option) *Presenter {
	p := &Presenter{
		markdown:  newMarkdown(),
		clipboard: systemClipboard{},
		tempDir:   os.TempDir(),
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CopyToClipboard writes content verbatim. It is best effort: a failure is
// logged and otherwise ignored.
func (p *Presenter) CopyToClipboard(content string) {
	if err := p.clipboard.WriteAll(content); err != nil {
		p.logger.WithError(err).Warn("Failed to copy to clipboard")
		return
	}
	p.logger.WithField("length", len(content)).Debug("Copied to clipboard")
}
