package validation

import (
	"fmt"
	"strings"

	"github.com/nijaru/yt-blog/errors"
	"github.com/nijaru/yt-blog/models"
)

const (
	videoIDMarker  = "v="
	paramSeparator = "&"
	fragmentMarker = "#"
)

// ExtractVideoID returns the text after the first "v=" in rawURL, up to the
// next "&". The fragment is dropped first, since a browser never sends it.
// A missing marker or an empty segment is an invalid input.
func ExtractVideoID(rawURL string) (string, error) {
	const op = "validation.ExtractVideoID"

	rawURL, _, _ = strings.Cut(rawURL, fragmentMarker)

	_, rest, found := strings.Cut(rawURL, videoIDMarker)
	if !found {
		return "", errors.InvalidInput(op, nil, errors.MsgInvalidYouTubeURL)
	}

	id, _, _ := strings.Cut(rest, paramSeparator)
	if id == "" {
		return "", errors.InvalidInput(op, nil, errors.MsgInvalidYouTubeURL)
	}

	return id, nil
}

// ParseOptions builds FormOptions from raw form or flag values. Empty values
// take the default for their field; unknown values are rejected.
func ParseOptions(audience, tone, outputFormat string) (models.FormOptions, error) {
	const op = "validation.ParseOptions"
	opts := models.DefaultFormOptions()

	if audience = strings.TrimSpace(audience); audience != "" {
		opts.Audience = models.Audience(audience)
		if !opts.Audience.Valid() {
			return models.FormOptions{}, errors.InvalidInput(op, nil, invalidChoice("audience", audience, models.Audiences))
		}
	}

	if tone = strings.TrimSpace(tone); tone != "" {
		opts.Tone = models.Tone(tone)
		if !opts.Tone.Valid() {
			return models.FormOptions{}, errors.InvalidInput(op, nil, invalidChoice("tone", tone, models.Tones))
		}
	}

	if outputFormat = strings.TrimSpace(outputFormat); outputFormat != "" {
		opts.OutputFormat = models.OutputFormat(outputFormat)
		if !opts.OutputFormat.Valid() {
			return models.FormOptions{}, errors.InvalidInput(op, nil, invalidChoice("output format", outputFormat, models.OutputFormats))
		}
	}

	return opts, nil
}

// ValidateOptions checks that every field of opts is a member of its set.
func ValidateOptions(opts models.FormOptions) error {
	_, err := ParseOptions(string(opts.Audience), string(opts.Tone), string(opts.OutputFormat))
	if err != nil {
		return err
	}
	if opts.Audience == "" || opts.Tone == "" || opts.OutputFormat == "" {
		return errors.InvalidInput("validation.ValidateOptions", nil, "All options must be set")
	}
	return nil
}

func invalidChoice(field, value string, choices []models.Choice) string {
	values := make([]string, len(choices))
	for i, c := range choices {
		values[i] = c.Value
	}
	return fmt.Sprintf("Invalid %s %q: must be one of %s", field, value, strings.Join(values, ", "))
}
