package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/nijaru/yt-blog/errors"
	"github.com/nijaru/yt-blog/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	ProcessVideoPath = "/process-video/"

	// maxResponseSize caps how much of a backend reply is read.
	maxResponseSize = 10 << 20
)

// Processor turns a video id and style options into generated text.
type Processor interface {
	ProcessVideo(ctx context.Context, videoID string, opts models.FormOptions) (*models.ProcessResponse, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client, which has no timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *logrus.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProcessURL is the request target for videoID and opts. Parameters keep the
// order video_id, output_format, tone, audience.
func (c *Client) ProcessURL(videoID string, opts models.FormOptions) string {
	query := strings.Join([]string{
		"video_id=" + url.QueryEscape(videoID),
		"output_format=" + url.QueryEscape(string(opts.OutputFormat)),
		"tone=" + url.QueryEscape(string(opts.Tone)),
		"audience=" + url.QueryEscape(string(opts.Audience)),
	}, "&")
	return c.baseURL + ProcessVideoPath + "?" + query
}

// ProcessVideo issues a single POST with no body and no retries. Every
// failure comes back as a network AppError.
func (c *Client) ProcessVideo(ctx context.Context, videoID string, opts models.FormOptions) (*models.ProcessResponse, error) {
	const op = "backend.ProcessVideo"
	target := c.ProcessURL(videoID, opts)
	logger := c.logger.WithFields(logrus.Fields{
		"video_id":      videoID,
		"output_format": opts.OutputFormat,
		"tone":          opts.Tone,
		"audience":      opts.Audience,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return nil, apperrors.Network(op, errors.Wrap(err, "building request"), err.Error())
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	logger.Info("Requesting blog post from backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WithError(err).Error("Backend request failed")
		return nil, apperrors.Network(op, errors.Wrap(err, "sending request"), err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		logger.WithError(err).Error("Failed to read backend response")
		return nil, apperrors.Network(op, errors.Wrap(err, "reading response"), err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail models.ErrorResponse
		_ = json.Unmarshal(body, &detail)
		logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"detail": detail.Detail,
		}).Error("Backend returned error status")
		var cause error
		if detail.Detail != "" {
			cause = errors.New(detail.Detail)
		}
		msg := fmt.Sprintf("Request failed with status code %d", resp.StatusCode)
		return nil, apperrors.Network(op, cause, msg)
	}

	var result models.ProcessResponse
	if err := json.Unmarshal(body, &result); err != nil {
		logger.WithError(err).Error("Backend response is not valid JSON")
		return nil, apperrors.Network(op, errors.Wrap(err, "decoding response"), "Invalid response from server")
	}
	if result.BlogPost == nil {
		logger.Error("Backend response has no blog_post")
		return nil, apperrors.Network(op, errors.New("missing blog_post"), "Invalid response from server")
	}

	logger.WithFields(logrus.Fields{
		"duration":             time.Since(start),
		"transcription_method": result.TranscriptionMethod,
		"length":               len(*result.BlogPost),
	}).Info("Blog post received")

	return &result, nil
}
