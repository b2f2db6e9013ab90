package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const validQuizJSON = `{
	"title": "Networking Basics Quiz",
	"questions": [
		{
			"question": "What does TCP stand for?",
			"options": ["Transmission Control Protocol", "Transfer Core Protocol", "Tele Control Path", "Trusted Carrier Protocol"],
			"correct_answer": 0,
			"explanation": "TCP is the Transmission Control Protocol."
		},
		{
			"question": "Which layer does IP belong to?",
			"options": ["Application", "Transport", "Network", "Physical"],
			"correct_answer": 2,
			"explanation": "IP is a network layer protocol."
		}
	],
	"difficulty": "easy"
}`

type stubProvider struct {
	response string
	err      error

	lastPrompt      string
	lastMaxTokens   int
	lastTemperature float64
}

func (s *stubProvider) GenerateText(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	s.lastPrompt = prompt
	s.lastMaxTokens = maxTokens
	s.lastTemperature = temperature
	return s.response, s.err
}

func TestStripCodeFence(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare json untouched", `{"title": "x"}`, `{"title": "x"}`},
		{"json fence", "```json\n{\"title\": \"x\"}\n```", `{"title": "x"}`},
		{"plain fence", "```\n{\"title\": \"x\"}\n```", `{"title": "x"}`},
		{"fence with surrounding whitespace", "  ```json\n{}\n```  ", "{}"},
		{"unterminated fence", "```json\n{}", "{}"},
		{"empty input", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFence(tc.input); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestParseQuestionSet(t *testing.T) {
	set, err := ParseQuestionSet(validQuizJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Title != "Networking Basics Quiz" {
		t.Errorf("unexpected title %q", set.Title)
	}
	if len(set.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(set.Questions))
	}
	if set.Questions[1].CorrectAnswer != 2 {
		t.Errorf("expected correct_answer 2, got %d", set.Questions[1].CorrectAnswer)
	}
	if set.Difficulty != "easy" {
		t.Errorf("unexpected difficulty %q", set.Difficulty)
	}
}

func TestParseQuestionSetFencedEquivalent(t *testing.T) {
	fenced := "```json\n" + validQuizJSON + "\n```"
	set, err := ParseQuestionSet(fenced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(set.Questions))
	}
}

func TestParseQuestionSetErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not json", "sorry, I cannot do that"},
		{"no questions", `{"title": "x", "questions": []}`},
		{
			"correct answer out of range",
			`{"title": "x", "questions": [{"question": "Q?", "options": ["a", "b"], "correct_answer": 5}]}`,
		},
		{
			"too few options",
			`{"title": "x", "questions": [{"question": "Q?", "options": ["a"], "correct_answer": 0}]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseQuestionSet(tc.input); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	provider := &stubProvider{response: validQuizJSON}
	g := New(provider)

	set, err := g.Generate(context.Background(), "MOD-1", "Networking", "TCP/IP fundamentals", 2, "easy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(set.Questions))
	}
	if provider.lastMaxTokens != maxTokens {
		t.Errorf("expected maxTokens %d, got %d", maxTokens, provider.lastMaxTokens)
	}
	if provider.lastTemperature != temperature {
		t.Errorf("expected temperature %v, got %v", temperature, provider.lastTemperature)
	}
	if !strings.Contains(provider.lastPrompt, "Module: Networking") {
		t.Errorf("prompt missing module title: %q", provider.lastPrompt)
	}
	if !strings.Contains(provider.lastPrompt, "TCP/IP fundamentals") {
		t.Errorf("prompt missing module content: %q", provider.lastPrompt)
	}
	if !strings.Contains(provider.lastPrompt, "Difficulty level: easy") {
		t.Errorf("prompt missing difficulty: %q", provider.lastPrompt)
	}
}

func TestGenerateEmptyContent(t *testing.T) {
	provider := &stubProvider{response: validQuizJSON}
	g := New(provider)

	_, err := g.Generate(context.Background(), "MOD-1", "Networking", "   ", 2, "easy")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.ModuleCode != "MOD-1" {
		t.Errorf("unexpected module code %q", genErr.ModuleCode)
	}
	if genErr.Reason != "no content extracted for module" {
		t.Errorf("unexpected reason %q", genErr.Reason)
	}
	if provider.lastPrompt != "" {
		t.Error("provider must not be called for empty content")
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	cause := errors.New("connection refused")
	g := New(&stubProvider{err: cause})

	_, err := g.Generate(context.Background(), "MOD-1", "Networking", "content", 2, "easy")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", genErr.Err)
	}
}

func TestGenerateInvalidOutputKeepsRaw(t *testing.T) {
	g := New(&stubProvider{response: "not json at all"})

	_, err := g.Generate(context.Background(), "MOD-1", "Networking", "content", 2, "easy")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.RawOutput != "not json at all" {
		t.Errorf("expected raw output preserved, got %q", genErr.RawOutput)
	}
}

func TestGenerateDefaultsDifficulty(t *testing.T) {
	provider := &stubProvider{response: `{"title": "x", "questions": [{"question": "Q?", "options": ["a", "b"], "correct_answer": 1}]}`}
	g := New(provider)

	set, err := g.Generate(context.Background(), "MOD-1", "Networking", "content", 1, "extreme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(provider.lastPrompt, "Difficulty level: medium") {
		t.Errorf("invalid difficulty should fall back to medium: %q", provider.lastPrompt)
	}
	if set.Difficulty != "medium" {
		t.Errorf("expected difficulty backfilled to medium, got %q", set.Difficulty)
	}
}
