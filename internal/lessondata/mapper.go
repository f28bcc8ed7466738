package lessondata

import (
	"fmt"
	"strconv"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

// ToLesson maps a lesson payload into a Lesson. Exercises whose options or
// correct answer do not fit their format are kept with a nil body, so the
// session judges them incorrect; one warning per such exercise is returned.
func ToLesson(p LessonPayload) (entities.Lesson, []error) {
	lesson := entities.Lesson{
		ID:        p.ID,
		Title:     p.Title,
		TopicID:   p.TopicID,
		XPReward:  p.XPReward,
		Exercises: make([]entities.Exercise, 0, len(p.Exercises)),
	}

	var warnings []error
	for _, ep := range p.Exercises {
		ex, err := ToExercise(ep)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("lesson %s exercise %s: %w", p.ID, ep.ID, err))
		}
		lesson.Exercises = append(lesson.Exercises, ex)
	}

	return lesson, warnings
}

// ToExercise maps one exercise payload. On error the returned exercise has
// a nil body and the error wraps entities.ErrMalformedExercise.
func ToExercise(p ExercisePayload) (entities.Exercise, error) {
	ex := entities.Exercise{
		ID:       p.ID,
		Format:   entities.Format(p.QuestionFormat),
		Question: p.Question,
		AudioURL: p.AudioURL,
	}

	body, err := toBody(ex.Format, p.Options, p.CorrectAnswer)
	if err != nil {
		return ex, fmt.Errorf("%w: %v", entities.ErrMalformedExercise, err)
	}

	ex.Body = body
	if err := ex.Validate(); err != nil {
		ex.Body = nil
		return ex, err
	}

	return ex, nil
}

func toBody(f entities.Format, options, answer any) (entities.Body, error) {
	switch f {
	case entities.FormatMultipleChoice, entities.FormatFillInBlank, entities.FormatListening:
		opts, err := asStrings(options)
		if err != nil {
			return nil, fmt.Errorf("options: %w", err)
		}
		if s, ok := scalar(answer); ok {
			return &entities.Choice{Options: opts, Accepted: []string{s}}, nil
		}
		accepted, err := asStrings(answer)
		if err != nil {
			return nil, fmt.Errorf("correct_answer: %w", err)
		}
		return &entities.Choice{Options: opts, Accepted: accepted}, nil

	case entities.FormatImageSelect:
		opts, err := asImageOptions(options)
		if err != nil {
			return nil, fmt.Errorf("options: %w", err)
		}
		s, ok := scalar(answer)
		if !ok {
			return nil, fmt.Errorf("correct_answer: want string, got %T", answer)
		}
		return &entities.ImageSelect{Options: opts, Answer: s}, nil

	case entities.FormatReorder:
		tokens, err := asStrings(options)
		if err != nil {
			return nil, fmt.Errorf("options: %w", err)
		}
		s, ok := scalar(answer)
		if !ok {
			return nil, fmt.Errorf("correct_answer: want string, got %T", answer)
		}
		return &entities.Reorder{Tokens: tokens, Answer: s}, nil

	case entities.FormatMatch:
		opts, err := asPairs(options)
		if err != nil {
			return nil, fmt.Errorf("options: %w", err)
		}
		correct, err := asPairs(answer)
		if err != nil {
			return nil, fmt.Errorf("correct_answer: %w", err)
		}
		return &entities.Match{Options: opts, Answer: correct}, nil

	default:
		return nil, fmt.Errorf("unknown question format %q", f)
	}
}

func asStrings(v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("want list, got %T", v)
	}
	out := make([]string, len(list))
	for i, item := range list {
		s, ok := scalar(item)
		if !ok {
			return nil, fmt.Errorf("item %d: want string, got %T", i, item)
		}
		out[i] = s
	}
	return out, nil
}

func asImageOptions(v any) ([]entities.ImageOption, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("want list, got %T", v)
	}
	out := make([]entities.ImageOption, len(list))
	for i, item := range list {
		fields, err := stringFields(item, "image", "value")
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = entities.ImageOption{Image: fields[0], Value: fields[1]}
	}
	return out, nil
}

func asPairs(v any) ([]entities.Pair, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("want list, got %T", v)
	}
	out := make([]entities.Pair, len(list))
	for i, item := range list {
		fields, err := stringFields(item, "left", "right")
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = entities.Pair{Left: fields[0], Right: fields[1]}
	}
	return out, nil
}

// stringFields extracts the named string fields from a decoded object.
func stringFields(v any, keys ...string) ([]string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("want object, got %T", v)
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		s, ok := scalar(m[k])
		if !ok {
			return nil, fmt.Errorf("field %q: want string, got %T", k, m[k])
		}
		out[i] = s
	}
	return out, nil
}

// scalar accepts the plain values a YAML author may leave unquoted, such as
// numeric answers of fill_in_blank exercises.
func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

// FromSummary builds the result payload for a finished attempt.
func FromSummary(a *entities.LessonAttempt) ResultPayload {
	s := a.Summary
	return ResultPayload{
		AttemptID:            a.ID.String(),
		UserID:               a.UserID,
		Outcome:              string(s.Outcome),
		Correct:              s.Correct,
		Total:                s.Total,
		ScorePercent:         s.ScorePercent,
		XPEarned:             s.XPEarned,
		IsPerfect:            s.IsPerfect,
		MetExpectedThreshold: s.MetExpectedThreshold,
	}
}

// ToHeader maps a listing entry.
func ToHeader(p LessonHeaderPayload) entities.LessonHeader {
	return entities.LessonHeader{
		ID:       p.ID,
		Title:    p.Title,
		TopicID:  p.TopicID,
		XPReward: p.XPReward,
	}
}
