// Package generator turns extracted module content into a validated
// multiple-choice question set via an external generation capability.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"quizgen-service/internal/models"
)

const (
	maxTokens   = 2000
	temperature = 0.7
	numOptions  = 4

	defaultCallTimeout = 90 * time.Second
)

const promptTemplate = `Based on the following content, create a multiple choice quiz with %d questions.

Content: %s

Requirements:
- Create %d multiple choice questions
- Each question should have %d options
- Include the correct answer index (0-based)
- Add brief explanations for correct answers
- Difficulty level: %s

IMPORTANT: Return ONLY valid JSON in the exact format below. Do not include any markdown formatting, explanations, or additional text.

{
    "title": "Quiz about the given content",
    "questions": [
        {
            "question": "Question text here?",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "correct_answer": 0,
            "explanation": "Brief explanation of why this is correct"
        }
    ],
    "difficulty": "%s"
}`

// TextGenerator is the opaque generation capability: text in, text out,
// fails transiently.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// GenerationError is returned as a typed failure value so one module's
// failure never aborts a batch. RawOutput carries the provider text for
// diagnostics when parsing or validation failed.
type GenerationError struct {
	ModuleCode string
	Reason     string
	RawOutput  string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quiz generation failed for module %s: %s: %v", e.ModuleCode, e.Reason, e.Err)
	}
	return fmt.Sprintf("quiz generation failed for module %s: %s", e.ModuleCode, e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// QuestionSet is the structured result parsed out of the provider response.
type QuestionSet struct {
	Title      string            `json:"title"`
	Questions  []models.Question `json:"questions"`
	Difficulty string            `json:"difficulty"`
}

type Generator struct {
	provider    TextGenerator
	callTimeout time.Duration
}

func New(provider TextGenerator) *Generator {
	return &Generator{provider: provider, callTimeout: defaultCallTimeout}
}

// NewWithTimeout overrides the per-call deadline applied to the provider.
func NewWithTimeout(provider TextGenerator, callTimeout time.Duration) *Generator {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &Generator{provider: provider, callTimeout: callTimeout}
}

// Generate builds the prompt for one module, invokes the provider and parses
// the result. All failure modes come back as *GenerationError.
func (g *Generator) Generate(ctx context.Context, moduleCode, moduleTitle, moduleContent string, numQuestions int, difficulty string) (*QuestionSet, error) {
	if strings.TrimSpace(moduleContent) == "" {
		return nil, &GenerationError{ModuleCode: moduleCode, Reason: "no content extracted for module"}
	}
	if numQuestions <= 0 {
		numQuestions = 5
	}
	if !models.Difficulties[difficulty] {
		difficulty = "medium"
	}

	prompt := buildPrompt(moduleTitle, moduleContent, numQuestions, difficulty)

	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	raw, err := g.provider.GenerateText(callCtx, prompt, maxTokens, temperature)
	if err != nil {
		return nil, &GenerationError{ModuleCode: moduleCode, Reason: "provider call failed", Err: err}
	}

	set, err := ParseQuestionSet(raw)
	if err != nil {
		return nil, &GenerationError{ModuleCode: moduleCode, Reason: "invalid provider output", RawOutput: raw, Err: err}
	}
	if set.Difficulty == "" {
		set.Difficulty = difficulty
	}
	return set, nil
}

func buildPrompt(moduleTitle, moduleContent string, numQuestions int, difficulty string) string {
	content := fmt.Sprintf("Module: %s\n\nContent:\n%s", moduleTitle, moduleContent)
	return fmt.Sprintf(promptTemplate, numQuestions, content, numQuestions, numOptions, difficulty, difficulty)
}

// ParseQuestionSet decodes raw provider text into a QuestionSet, stripping a
// leading/trailing Markdown code fence first, and validates the structure.
func ParseQuestionSet(raw string) (*QuestionSet, error) {
	cleaned := StripCodeFence(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response")
	}

	var set QuestionSet
	if err := json.Unmarshal([]byte(cleaned), &set); err != nil {
		return nil, fmt.Errorf("parse quiz JSON: %w", err)
	}
	if len(set.Questions) == 0 {
		return nil, fmt.Errorf("question set has no questions")
	}
	for i := range set.Questions {
		if err := set.Questions[i].Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}
	return &set, nil
}

// StripCodeFence removes a surrounding ```json or ``` Markdown fence, a
// formatting habit of chat models even when told to return bare JSON.
func StripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(cleaned, "```json"):
		cleaned = strings.TrimPrefix(cleaned, "```json")
	case strings.HasPrefix(cleaned, "```"):
		cleaned = strings.TrimPrefix(cleaned, "```")
	default:
		return cleaned
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
