package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/nijaru/yt-blog/errors"
	"github.com/nijaru/yt-blog/form"
	"github.com/nijaru/yt-blog/middleware"
	"github.com/nijaru/yt-blog/models"
	"github.com/nijaru/yt-blog/presenter"
	"github.com/nijaru/yt-blog/validation"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	URL          string
	Audience     string
	Tone         string
	OutputFormat string

	Audiences     []models.Choice
	Tones         []models.Choice
	OutputFormats []models.Choice

	Error    string
	Result   string
	Rendered template.HTML
}

func newPageData(rawURL string, opts models.FormOptions) pageData {
	return pageData{
		URL:           rawURL,
		Audience:      string(opts.Audience),
		Tone:          string(opts.Tone),
		OutputFormat:  string(opts.OutputFormat),
		Audiences:     models.Audiences,
		Tones:         models.Tones,
		OutputFormats: models.OutputFormats,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, newPageData("", models.DefaultFormOptions()))
}

// handleGenerate runs one form submission and renders the page with either
// the post or the error message.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	if err := r.ParseForm(); err != nil {
		s.renderPage(w, r, http.StatusBadRequest, pageData{Error: "Invalid form submission"})
		return
	}

	rawURL := r.PostFormValue("url")
	opts, err := validation.ParseOptions(
		r.PostFormValue("audience"),
		r.PostFormValue("tone"),
		r.PostFormValue("output_format"),
	)
	if err != nil {
		data := newPageData(rawURL, models.DefaultFormOptions())
		data.Error = errors.UserMessage(err)
		s.renderPage(w, r, errors.StatusCode(err), data)
		return
	}

	ctrl := form.NewController(s.processor, form.WithLogger(logger))
	state := ctrl.Submit(r.Context(), rawURL, opts)

	data := newPageData(state.URL, state.Options)
	if state.Error != "" {
		data.Error = state.Error
		s.renderPage(w, r, errors.StatusCode(state.Cause()), data)
		return
	}

	data.Result = state.Result
	rendered, err := s.presenter.Render(state.Result, state.Options.OutputFormat)
	if err != nil {
		logger.WithError(err).Warn("Falling back to plain text rendering")
		rendered = template.HTML("<pre>" + template.HTMLEscapeString(state.Result) + "</pre>")
	}
	data.Rendered = rendered

	s.renderPage(w, r, http.StatusOK, data)
}

// handleRateLimited re-renders the form with the rate limit message so the
// submitted values survive the rejection.
func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	opts, err := validation.ParseOptions(
		r.PostFormValue("audience"),
		r.PostFormValue("tone"),
		r.PostFormValue("output_format"),
	)
	if err != nil {
		opts = models.DefaultFormOptions()
	}

	data := newPageData(r.PostFormValue("url"), opts)
	data.Error = errors.RateLimited("handlers.Generate").Message
	s.renderPage(w, r, http.StatusTooManyRequests, data)
}

// handleDownload sends the posted content back as a markdown attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, errors.InvalidInput("handlers.Download", err, "Invalid form submission"))
		return
	}

	// Browsers submit textarea line breaks as CRLF; the file must match the
	// text the copy button writes.
	content := strings.ReplaceAll(r.PostFormValue("content"), "\r\n", "\n")

	d, err := s.presenter.DownloadAsFile(content)
	if err != nil {
		s.respondError(w, r, errors.Internal("handlers.Download", err, "Failed to prepare download"))
		return
	}
	defer d.Release()

	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+presenter.DownloadFileName+`"`)
	http.ServeContent(w, r, d.Name, d.ModTime, d)

	logger.WithField("size", d.Size).Info("Download served")
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, code int, data pageData) {
	if data.Audiences == nil {
		data = mergePageData(newPageData(data.URL, models.DefaultFormOptions()), data)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.respondError(w, r, errors.Internal("handlers.renderPage", err, "Failed to render page"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		middleware.GetLogger(r.Context()).WithError(err).Error("Failed to write page")
	}
}

func mergePageData(base, override pageData) pageData {
	base.Error = override.Error
	base.Result = override.Result
	base.Rendered = override.Rendered
	return base
}
