package entities

import (
	"errors"
	"testing"
)

func TestExercise_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ex      Exercise
		wantErr bool
	}{
		{
			name: "choice",
			ex:   Exercise{Format: FormatListening, Body: &Choice{Options: []string{"a"}, Accepted: []string{"a"}}},
		},
		{
			name: "image select",
			ex:   Exercise{Format: FormatImageSelect, Body: &ImageSelect{Options: []ImageOption{{Image: "i", Value: "v"}}, Answer: "v"}},
		},
		{
			name: "reorder with distractor token",
			ex:   Exercise{Format: FormatReorder, Body: &Reorder{Tokens: []string{"b", "x", "a"}, Answer: "a b"}},
		},
		{
			name: "match",
			ex:   Exercise{Format: FormatMatch, Body: &Match{Options: []Pair{{"a", "1"}}, Answer: []Pair{{"a", "1"}}}},
		},
		{
			name: "match answer uses an item outside the options",
			ex: Exercise{Format: FormatMatch, Body: &Match{
				Options: []Pair{{"a", "1"}, {"b", "2"}},
				Answer:  []Pair{{"a", "1"}, {"b", "3"}},
			}},
			wantErr: true,
		},
		{
			name: "match answer leaves an option unpaired",
			ex: Exercise{Format: FormatMatch, Body: &Match{
				Options: []Pair{{"a", "1"}, {"b", "2"}},
				Answer:  []Pair{{"a", "1"}},
			}},
			wantErr: true,
		},
		{
			name: "match answer pairs a left twice",
			ex: Exercise{Format: FormatMatch, Body: &Match{
				Options: []Pair{{"a", "1"}, {"b", "2"}},
				Answer:  []Pair{{"a", "1"}, {"a", "2"}},
			}},
			wantErr: true,
		},
		{
			name:    "unknown format",
			ex:      Exercise{Format: "essay", Body: &Choice{Accepted: []string{"a"}}},
			wantErr: true,
		},
		{
			name:    "missing body",
			ex:      Exercise{Format: FormatMultipleChoice},
			wantErr: true,
		},
		{
			name:    "body for another format",
			ex:      Exercise{Format: FormatReorder, Body: &Choice{Accepted: []string{"a"}}},
			wantErr: true,
		},
		{
			name:    "reorder tokens miss a word",
			ex:      Exercise{Format: FormatReorder, Body: &Reorder{Tokens: []string{"a"}, Answer: "a a"}},
			wantErr: true,
		},
		{
			name:    "duplicate right items",
			ex:      Exercise{Format: FormatMatch, Body: &Match{Options: []Pair{{"a", "1"}, {"b", "1"}}, Answer: []Pair{{"a", "1"}}}},
			wantErr: true,
		},
		{
			name:    "no accepted answers",
			ex:      Exercise{Format: FormatFillInBlank, Body: &Choice{Options: []string{"a"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ex.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedExercise) {
				t.Errorf("Validate() error = %v; want ErrMalformedExercise", err)
			}
		})
	}
}

func TestExercise_CorrectText(t *testing.T) {
	tests := []struct {
		ex   Exercise
		want string
	}{
		{Exercise{Body: &Choice{Accepted: []string{"a", "b"}}}, "a / b"},
		{Exercise{Body: &Reorder{Answer: " I  am "}}, "I am"},
		{Exercise{Body: &Match{Answer: []Pair{{"a", "1"}, {"b", "2"}}}}, "a = 1, b = 2"},
		{Exercise{}, ""},
	}
	for _, tt := range tests {
		if got := tt.ex.CorrectText(); got != tt.want {
			t.Errorf("CorrectText() = %q; want %q", got, tt.want)
		}
	}
}
