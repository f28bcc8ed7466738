package engine

import (
	"fmt"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

func choiceExercise(id, correct string, options ...string) entities.Exercise {
	return entities.Exercise{
		ID:       id,
		Format:   entities.FormatMultipleChoice,
		Question: "Pick one",
		Body: &entities.Choice{
			Options:  options,
			Accepted: []string{correct},
		},
	}
}

func reorderExercise(id, answer string, tokens ...string) entities.Exercise {
	return entities.Exercise{
		ID:     id,
		Format: entities.FormatReorder,
		Body:   &entities.Reorder{Tokens: tokens, Answer: answer},
	}
}

func matchExercise(id string, pairs ...entities.Pair) entities.Exercise {
	return entities.Exercise{
		ID:     id,
		Format: entities.FormatMatch,
		Body:   &entities.Match{Options: pairs, Answer: pairs},
	}
}

var greetings = []entities.Pair{
	{Left: "hello", Right: "hola"},
	{Left: "bye", Right: "adiós"},
	{Left: "thanks", Right: "gracias"},
}

// lessonOf builds a lesson of n identical multiple choice exercises whose
// correct answer is "yes".
func lessonOf(n, xp int) entities.Lesson {
	exs := make([]entities.Exercise, n)
	for i := range exs {
		exs[i] = choiceExercise(fmt.Sprintf("ex-%d", i), "yes", "yes", "no")
	}
	return entities.Lesson{ID: "lesson-1", Title: "Basics", XPReward: xp, Exercises: exs}
}
