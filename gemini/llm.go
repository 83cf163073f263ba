package gemini

import (
	"context"

	"github.com/askdocs/askdocs"
	"google.golang.org/genai"
)

// DefaultGenModel is the generation model used when none is configured.
const DefaultGenModel = "gemini-2.5-flash"

// Answer generation runs at a low temperature so answers stay close
// to the retrieved documentation.
const genTemperature = float32(0.2)

// Ensure LLM implements askdocs.LLM at compile time.
var _ askdocs.LLM = (*LLM)(nil)

// LLM generates answer text via the Gemini API.
type LLM struct {
	client *genai.Client
	model  string
}

// NewLLM creates a new LLM. An empty model falls back to the default.
func NewLLM(client *genai.Client, model string) *LLM {
	if model == "" {
		model = DefaultGenModel
	}
	return &LLM{client: client, model: model}
}

// Complete generates a response to the user prompt under the given
// system instruction.
func (l *LLM) Complete(ctx context.Context, system, user string) (string, error) {
	config := buildConfig(system)

	result, err := l.client.Models.GenerateContent(ctx, l.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: user}},
		}},
		config,
	)
	if err != nil {
		return "", askdocs.Errorf(askdocs.EUNAVAILABLE, "generation request failed: %v", err)
	}
	if result == nil {
		return "", askdocs.Errorf(askdocs.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// buildConfig returns the GenerateContentConfig for answer generation.
func buildConfig(system string) *genai.GenerateContentConfig {
	temp := genTemperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}
