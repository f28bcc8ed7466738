package entities

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrMalformedExercise is reported when an exercise's options or correct answer
// do not match its question format.
var ErrMalformedExercise = errors.New("malformed exercise")

// Format is the question format of an exercise.
type Format string

const (
	FormatFillInBlank    Format = "fill_in_blank"
	FormatMultipleChoice Format = "multiple_choice"
	FormatReorder        Format = "reorder"
	FormatImageSelect    Format = "image_select"
	FormatListening      Format = "listening"
	FormatMatch          Format = "match"
)

// Formats lists every supported question format.
var Formats = []Format{
	FormatFillInBlank,
	FormatMultipleChoice,
	FormatReorder,
	FormatImageSelect,
	FormatListening,
	FormatMatch,
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return slices.Contains(Formats, f)
}

// Exercise is one question unit within a lesson.
// The format-specific options and correct answer live in Body.
type Exercise struct {
	ID       string
	Format   Format
	Question string
	AudioURL string // listening only, opaque
	Body     Body   // nil when the source payload was malformed
}

// Body is the closed set of per-format exercise payloads:
// *Choice, *ImageSelect, *Reorder and *Match.
type Body interface {
	formats() []Format
}

// Pair is a left/right item pair of a match exercise.
type Pair struct {
	Left  string
	Right string
}

// ImageOption is one selectable image of an image_select exercise.
type ImageOption struct {
	Image string // opaque image reference
	Value string
}

// Choice is the payload of multiple_choice, fill_in_blank and listening exercises.
type Choice struct {
	Options  []string
	Accepted []string // a single-string correct answer is a one-element set
}

func (*Choice) formats() []Format {
	return []Format{FormatMultipleChoice, FormatFillInBlank, FormatListening}
}

// ImageSelect is the payload of image_select exercises.
type ImageSelect struct {
	Options []ImageOption
	Answer  string // value of the correct option
}

func (*ImageSelect) formats() []Format { return []Format{FormatImageSelect} }

// Reorder is the payload of reorder exercises. Tokens are the shuffled words
// of Answer.
type Reorder struct {
	Tokens []string
	Answer string
}

func (*Reorder) formats() []Format { return []Format{FormatReorder} }

// Words returns the correct word sequence.
func (r *Reorder) Words() []string {
	return strings.Fields(r.Answer)
}

// Match is the payload of match exercises.
type Match struct {
	Options []Pair
	Answer  []Pair
}

func (*Match) formats() []Format { return []Format{FormatMatch} }

// Lefts returns the left column in option order.
func (m *Match) Lefts() []string {
	out := make([]string, len(m.Options))
	for i, p := range m.Options {
		out[i] = p.Left
	}
	return out
}

// Rights returns the right column in option order.
func (m *Match) Rights() []string {
	out := make([]string, len(m.Options))
	for i, p := range m.Options {
		out[i] = p.Right
	}
	return out
}

// answerPairsEveryOption reports whether the answer uses each left and each
// right item of the options exactly once.
func (m *Match) answerPairsEveryOption() bool {
	if len(m.Answer) != len(m.Options) {
		return false
	}
	lefts := make([]string, len(m.Answer))
	rights := make([]string, len(m.Answer))
	for i, p := range m.Answer {
		lefts[i] = p.Left
		rights[i] = p.Right
	}
	return coversMultiset(m.Lefts(), lefts) && coversMultiset(m.Rights(), rights)
}

// Validate checks that the body is present and shape-compatible with the format.
func (e Exercise) Validate() error {
	if !e.Format.Valid() {
		return fmt.Errorf("%w: unknown format %q", ErrMalformedExercise, e.Format)
	}
	if e.Body == nil {
		return fmt.Errorf("%w: %s has no body", ErrMalformedExercise, e.Format)
	}
	if !slices.Contains(e.Body.formats(), e.Format) {
		return fmt.Errorf("%w: %T body for %s", ErrMalformedExercise, e.Body, e.Format)
	}

	switch b := e.Body.(type) {
	case *Choice:
		if len(b.Accepted) == 0 {
			return fmt.Errorf("%w: no accepted answer", ErrMalformedExercise)
		}
	case *ImageSelect:
		if b.Answer == "" {
			return fmt.Errorf("%w: no correct image value", ErrMalformedExercise)
		}
	case *Reorder:
		words := b.Words()
		if len(words) == 0 {
			return fmt.Errorf("%w: empty reorder answer", ErrMalformedExercise)
		}
		if !coversMultiset(b.Tokens, words) {
			return fmt.Errorf("%w: reorder tokens do not cover the answer", ErrMalformedExercise)
		}
	case *Match:
		if len(b.Answer) == 0 {
			return fmt.Errorf("%w: no correct pairs", ErrMalformedExercise)
		}
		if hasDuplicates(b.Lefts()) || hasDuplicates(b.Rights()) {
			return fmt.Errorf("%w: duplicate match items", ErrMalformedExercise)
		}
		if !b.answerPairsEveryOption() {
			return fmt.Errorf("%w: match answer does not pair every option", ErrMalformedExercise)
		}
	}

	return nil
}

// CorrectText returns a human-readable rendering of the correct answer.
func (e Exercise) CorrectText() string {
	switch b := e.Body.(type) {
	case *Choice:
		return strings.Join(b.Accepted, " / ")
	case *ImageSelect:
		return b.Answer
	case *Reorder:
		return strings.Join(b.Words(), " ")
	case *Match:
		parts := make([]string, len(b.Answer))
		for i, p := range b.Answer {
			parts[i] = p.Left + " = " + p.Right
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// coversMultiset reports whether every element of want, with multiplicity,
// can be taken from have.
func coversMultiset(have, want []string) bool {
	counts := make(map[string]int, len(have))
	for _, s := range have {
		counts[s]++
	}
	for _, s := range want {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}

func hasDuplicates(items []string) bool {
	seen := make(map[string]struct{}, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			return true
		}
		seen[s] = struct{}{}
	}
	return false
}
