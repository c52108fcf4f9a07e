// Package advice integrates the external advice service the dashboard chat
// talks to. The collaborator is always-succeeding from the caller's point of
// view: missing credentials and transport failures degrade to fixed fallback
// strings instead of errors, so nothing here can fail into the core.
package advice

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// Fallback strings returned instead of errors.
const (
	FallbackNoKey   = "Please configure your API Key to use the AI Assistant."
	FallbackFailure = "Sorry, I encountered an error communicating with the AI service."
	FallbackEmpty   = "I couldn't generate a response at this time."
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// EnvAPIKey is the environment variable the assistant reads its key from.
const EnvAPIKey = "GEMINI_API_KEY"

// Assistant produces advice text for an operator question given a serialized
// snapshot of the facility. Implementations never return an error.
type Assistant interface {
	Advise(ctx context.Context, question, contextJSON string) string
}

// GeminiAssistant implements Assistant over the Gemini API.
type GeminiAssistant struct {
	client *genai.Client
	model  string
	hostel string
}

// NewGeminiAssistant constructs the assistant. An empty apiKey yields an
// assistant that always answers with the configuration fallback.
func NewGeminiAssistant(ctx context.Context, apiKey, hostelName string) *GeminiAssistant {
	a := &GeminiAssistant{model: DefaultModel, hostel: hostelName}
	if apiKey == "" {
		return a
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return a
	}
	a.client = client
	return a
}

// NewFromEnv constructs the assistant from the GEMINI_API_KEY variable.
func NewFromEnv(ctx context.Context, hostelName string) *GeminiAssistant {
	return NewGeminiAssistant(ctx, os.Getenv(EnvAPIKey), hostelName)
}

// Advise answers the question against the facility snapshot. It never
// returns an error; failures collapse into the fixed fallback strings.
func (a *GeminiAssistant) Advise(ctx context.Context, question, contextJSON string) string {
	if a.client == nil {
		return FallbackNoKey
	}
	prompt := buildPrompt(a.hostel, question, contextJSON)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return FallbackFailure
	}
	text := resp.Text()
	if text == "" {
		return FallbackEmpty
	}
	return text
}

func buildPrompt(hostelName, question, contextJSON string) string {
	return fmt.Sprintf(`You are an expert Hostel Manager Assistant for %q.

Here is the current data context of the hostel (JSON):
%s

User Query: %s

Instructions:
1. Provide helpful, professional advice or draft messages.
2. If asked to draft a message (e.g., for rent), keep it polite but firm.
3. If analyzing data, provide insights on occupancy or revenue.
4. Keep responses concise and actionable.`, hostelName, contextJSON, question)
}
