package models

// Audience is the readership the generated post is written for.
type Audience string

const (
	AudienceBeginners    Audience = "beginners"
	AudienceIntermediate Audience = "intermediate"
	AudienceExperts      Audience = "experts"
	AudienceGeneral      Audience = "general"
)

// Tone is the writing voice requested from the backend.
type Tone string

const (
	ToneFormal         Tone = "formal"
	ToneConversational Tone = "conversational"
	ToneProfessional   Tone = "professional"
	ToneEnthusiastic   Tone = "enthusiastic"
	ToneTechnical      Tone = "technical"
)

// OutputFormat is the markup flavor requested for the generated post.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatHTML     OutputFormat = "html"
)

// Choice pairs an option value with the label shown to users.
type Choice struct {
	Value string
	Label string
}

// Audiences, Tones and OutputFormats list the accepted values in display order.
var (
	Audiences = []Choice{
		{string(AudienceBeginners), "Beginners"},
		{string(AudienceIntermediate), "Intermediate"},
		{string(AudienceExperts), "Experts"},
		{string(AudienceGeneral), "General Audience"},
	}
	Tones = []Choice{
		{string(ToneFormal), "Formal"},
		{string(ToneConversational), "Conversational"},
		{string(ToneProfessional), "Professional"},
		{string(ToneEnthusiastic), "Enthusiastic"},
		{string(ToneTechnical), "Technical"},
	}
	OutputFormats = []Choice{
		{string(FormatMarkdown), "Markdown"},
		{string(FormatHTML), "HTML"},
	}
)

// FormOptions are the style preferences forwarded with every request.
type FormOptions struct {
	Audience     Audience     `json:"audience"`
	Tone         Tone         `json:"tone"`
	OutputFormat OutputFormat `json:"output_format"`
}

func DefaultFormOptions() FormOptions {
	return FormOptions{
		Audience:     AudienceGeneral,
		Tone:         ToneProfessional,
		OutputFormat: FormatMarkdown,
	}
}

func (a Audience) Valid() bool     { return contains(Audiences, string(a)) }
func (t Tone) Valid() bool         { return contains(Tones, string(t)) }
func (f OutputFormat) Valid() bool { return contains(OutputFormats, string(f)) }

func contains(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
