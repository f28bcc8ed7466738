// Package lessondata maps lesson payloads, as served by the lesson API or
// stored in the YAML catalog, into domain entities.
package lessondata

// LessonPayload is the wire shape of a lesson.
type LessonPayload struct {
	ID        string            `json:"id" yaml:"id"`
	Title     string            `json:"title" yaml:"title"`
	TopicID   string            `json:"topic_id" yaml:"topic_id"`
	XPReward  int               `json:"xp_reward" yaml:"xp_reward"`
	Exercises []ExercisePayload `json:"exercises" yaml:"exercises"`
}

// ExercisePayload is the wire shape of an exercise. Options and
// CorrectAnswer are polymorphic over the question format and are decoded
// generically (strings, lists and maps) by both encoding/json and yaml.v3.
type ExercisePayload struct {
	ID             string `json:"id" yaml:"id"`
	QuestionFormat string `json:"question_format" yaml:"question_format"`
	Question       string `json:"question" yaml:"question"`
	AudioURL       string `json:"audio_url,omitempty" yaml:"audio_url,omitempty"`
	Options        any    `json:"options" yaml:"options"`
	CorrectAnswer  any    `json:"correct_answer" yaml:"correct_answer"`
}

// LessonHeaderPayload is the wire shape of a lesson listing entry.
type LessonHeaderPayload struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	TopicID  string `json:"topic_id" yaml:"topic_id"`
	XPReward int    `json:"xp_reward" yaml:"xp_reward"`
}

// ResultPayload is the body posted when a session finishes.
type ResultPayload struct {
	AttemptID            string `json:"attempt_id"`
	UserID               int64  `json:"user_id"`
	Outcome              string `json:"outcome"`
	Correct              int    `json:"correct"`
	Total                int    `json:"total"`
	ScorePercent         int    `json:"score_percent"`
	XPEarned             int    `json:"xp_earned"`
	IsPerfect            bool   `json:"is_perfect"`
	MetExpectedThreshold bool   `json:"met_expected_threshold"`
}
