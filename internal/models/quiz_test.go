package models

import (
	"errors"
	"testing"
)

func validQuestion() Question {
	return Question{
		Question:      "What is 2+2?",
		Options:       []string{"3", "4", "5", "6"},
		CorrectAnswer: 1,
		Explanation:   "Basic arithmetic.",
	}
}

func TestQuestionValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{"valid", func(q *Question) {}, false},
		{"two options is minimum", func(q *Question) { q.Options = []string{"a", "b"}; q.CorrectAnswer = 0 }, false},
		{"six options is maximum", func(q *Question) {
			q.Options = []string{"a", "b", "c", "d", "e", "f"}
		}, false},
		{"empty text", func(q *Question) { q.Question = "" }, true},
		{"one option", func(q *Question) { q.Options = []string{"a"}; q.CorrectAnswer = 0 }, true},
		{"seven options", func(q *Question) {
			q.Options = []string{"a", "b", "c", "d", "e", "f", "g"}
		}, true},
		{"negative answer index", func(q *Question) { q.CorrectAnswer = -1 }, true},
		{"answer index out of range", func(q *Question) { q.CorrectAnswer = 4 }, true},
		{"no explanation is fine", func(q *Question) { q.Explanation = "" }, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuestion()
			tc.mutate(&q)
			err := q.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err != nil {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestQuizValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(q *Quiz)
		wantErr bool
	}{
		{"valid", func(q *Quiz) {}, false},
		{"empty difficulty allowed", func(q *Quiz) { q.Difficulty = "" }, false},
		{"missing title", func(q *Quiz) { q.Title = "" }, true},
		{"invalid difficulty", func(q *Quiz) { q.Difficulty = "impossible" }, true},
		{"no questions", func(q *Quiz) { q.Questions = nil }, true},
		{"bad nested question", func(q *Quiz) { q.Questions[0].CorrectAnswer = 99 }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := Quiz{
				Title:      "Sample Quiz",
				Difficulty: "medium",
				Questions:  []Question{validQuestion()},
			}
			tc.mutate(&q)
			err := q.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestQuizUpdateValidate(t *testing.T) {
	empty := ""
	title := "New title"
	bad := "extreme"
	hard := "hard"

	testCases := []struct {
		name    string
		update  QuizUpdate
		wantErr bool
	}{
		{"empty patch", QuizUpdate{}, false},
		{"title change", QuizUpdate{Title: &title}, false},
		{"difficulty change", QuizUpdate{Difficulty: &hard}, false},
		{"questions replacement", QuizUpdate{Questions: []Question{validQuestion()}}, false},
		{"empty title", QuizUpdate{Title: &empty}, true},
		{"invalid difficulty", QuizUpdate{Difficulty: &bad}, true},
		{"invalid question", QuizUpdate{Questions: []Question{{Question: "Q?", Options: []string{"a"}}}}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.update.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
