package models

// ProcessResponse is the backend's reply to a process-video request. Only
// BlogPost is required; the rest are echoed back by the backend and are
// informational.
type ProcessResponse struct {
	BlogPost            *string `json:"blog_post"`
	VideoID             string  `json:"video_id,omitempty"`
	TranscriptionMethod string  `json:"transcription_method,omitempty"`
	OutputFormat        string  `json:"output_format,omitempty"`
	Tone                string  `json:"tone,omitempty"`
	Audience            string  `json:"audience,omitempty"`
	Transcription       string  `json:"transcription,omitempty"`
}

// ErrorResponse is the body the backend sends with non-2xx statuses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is served by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}
