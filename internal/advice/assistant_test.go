package advice

import (
	"context"
	"strings"
	"testing"
)

func TestMissingKeyReturnsConfigurationFallback(t *testing.T) {
	assistant := NewGeminiAssistant(context.Background(), "", "Hari PG Hostel")
	got := assistant.Advise(context.Background(), "How is occupancy?", "{}")
	if got != FallbackNoKey {
		t.Fatalf("got %q, want %q", got, FallbackNoKey)
	}
}

func TestBuildPromptEmbedsContext(t *testing.T) {
	prompt := buildPrompt("Hari PG Hostel", "Draft a rent reminder", `{"total_tenants":3}`)
	for _, want := range []string{
		`"Hari PG Hostel"`,
		`{"total_tenants":3}`,
		"User Query: Draft a rent reminder",
		"polite but firm",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

type cannedAssistant struct{ answer string }

func (c cannedAssistant) Advise(context.Context, string, string) string { return c.answer }

func TestTranscriptRecordsBothSides(t *testing.T) {
	transcript := NewTranscript()
	answer := transcript.Ask(context.Background(), cannedAssistant{answer: "All rooms full."}, "Status?", "{}")
	if answer != "All rooms full." {
		t.Fatalf("answer = %q", answer)
	}
	msgs := transcript.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[0].Text != "Status?" {
		t.Fatalf("unexpected user message: %+v", msgs[0])
	}
	if msgs[1].Role != RoleAssistant || msgs[1].Text != "All rooms full." {
		t.Fatalf("unexpected assistant message: %+v", msgs[1])
	}
}
