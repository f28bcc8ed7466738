package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/engine"
	"github.com/aliskhannn/lingvo-bot/internal/storage"
)

var (
	ErrNoActivePlay  = errors.New("no active lesson")
	ErrStaleExercise = errors.New("exercise is no longer current")
)

// SettingsProvider returns user settings, creating defaults when missing.
type SettingsProvider interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error)
}

// Step is the state of a play after an operation.
type Step struct {
	Play     *storage.ActivePlay
	Feedback *engine.Feedback     // set after a submission
	Pair     *engine.PairFeedback // set when a match pair was committed
	Result   *Result              // set when the lesson finished
	NearMiss bool                 // a wrong typed answer was close to an accepted one
}

// Result is what a finished lesson produced.
type Result struct {
	LessonID    string
	LessonTitle string
	Summary     entities.Summary
	Progress    *entities.UserProgress // nil when recording failed
}

// LessonService runs lesson plays on top of the session engine.
//
// Plays are mutated from the update loop only; the storage is shared with
// the reminder job, which only checks for presence.
type LessonService struct {
	lessons  LessonSource
	plays    PlayStorage
	settings SettingsProvider
	recorder AttemptRecorder
	typos    *TypoDetector
	logger   *zap.Logger
	maxLives int
	shuffle  func([]string)
	now      func() time.Time
}

// LessonOption configures a LessonService.
type LessonOption func(*LessonService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) LessonOption {
	return func(s *LessonService) { s.now = now }
}

// WithShuffle overrides how match columns are shuffled.
func WithShuffle(fn func([]string)) LessonOption {
	return func(s *LessonService) { s.shuffle = fn }
}

func NewLessonService(
	lessons LessonSource,
	plays PlayStorage,
	settings SettingsProvider,
	recorder AttemptRecorder,
	logger *zap.Logger,
	maxLives int,
	opts ...LessonOption,
) *LessonService {
	s := &LessonService{
		lessons:  lessons,
		plays:    plays,
		settings: settings,
		recorder: recorder,
		typos:    NewTypoDetector(),
		logger:   logger,
		maxLives: maxLives,
		shuffle:  shuffleStrings,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func shuffleStrings(items []string) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// ListLessons returns the lessons of a topic, or all lessons for an empty topic.
func (s *LessonService) ListLessons(ctx context.Context, topicID string) ([]entities.LessonHeader, error) {
	headers, err := s.lessons.ListLessons(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return headers, nil
}

// StartLesson fetches a lesson and starts a play, replacing any play the
// user had in progress.
func (s *LessonService) StartLesson(ctx context.Context, userID int64, lessonID string) (*Step, error) {
	lesson, err := s.lessons.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}

	for _, ex := range lesson.Exercises {
		if err := ex.Validate(); err != nil {
			s.logger.Warn("lesson contains malformed exercise",
				zap.String("lesson_id", lesson.ID),
				zap.String("exercise_id", ex.ID),
				zap.Error(err),
			)
		}
	}

	shuffle := s.shuffle
	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to get settings, using defaults",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	} else if !settings.ShuffleMatch {
		shuffle = nil
	}

	ap := &storage.ActivePlay{
		Play:        engine.NewPlay(lesson, shuffle, engine.WithMaxLives(s.maxLives)),
		LessonID:    lesson.ID,
		LessonTitle: lesson.Title,
		StartedAt:   s.now(),
	}
	s.plays.Store(userID, ap)

	s.logger.Info("lesson started",
		zap.Int64("user_id", userID),
		zap.String("lesson_id", lesson.ID),
		zap.Int("exercises", len(lesson.Exercises)),
	)

	step := &Step{Play: ap}
	if ap.Play.Session().State() != engine.StateInProgress {
		step.Result = s.finish(ctx, userID, ap)
	}
	return step, nil
}

// Current returns the active play of a user.
func (s *LessonService) Current(userID int64) (*Step, error) {
	ap, ok := s.plays.Get(userID)
	if !ok {
		return nil, ErrNoActivePlay
	}
	return &Step{Play: ap}, nil
}

// Quit abandons the active play without recording it.
func (s *LessonService) Quit(userID int64) error {
	if !s.plays.Has(userID) {
		return ErrNoActivePlay
	}
	s.plays.Delete(userID)
	return nil
}

// Choose selects option opt of the current choice or image exercise.
func (s *LessonService) Choose(userID int64, idx, opt int) (*Step, error) {
	ap, err := s.current(userID, idx)
	if err != nil {
		return nil, err
	}

	ex, _ := ap.Play.Session().Current()

	var answer string
	switch b := ex.Body.(type) {
	case *entities.Choice:
		if opt < 0 || opt >= len(b.Options) {
			return nil, engine.ErrInvalidTransition
		}
		answer = b.Options[opt]
	case *entities.ImageSelect:
		if opt < 0 || opt >= len(b.Options) {
			return nil, engine.ErrInvalidTransition
		}
		answer = b.Options[opt].Value
	default:
		return nil, engine.ErrInvalidTransition
	}

	if err := ap.Play.Choose(answer); err != nil {
		return nil, err
	}
	return &Step{Play: ap}, nil
}

// AnswerText selects a typed answer for the current choice exercise and
// submits it.
func (s *LessonService) AnswerText(ctx context.Context, userID int64, text string) (*Step, error) {
	ap, ok := s.plays.Get(userID)
	if !ok {
		return nil, ErrNoActivePlay
	}

	ex, ok := ap.Play.Session().Current()
	if !ok {
		return nil, engine.ErrInvalidTransition
	}
	choice, ok := ex.Body.(*entities.Choice)
	if !ok {
		return nil, engine.ErrInvalidTransition
	}

	if err := ap.Play.Choose(text); err != nil {
		return nil, err
	}
	step, err := s.submit(ctx, userID, ap, ap.Play.Submit)
	if err != nil {
		return nil, err
	}
	step.NearMiss = !step.Feedback.Correct && s.typos.NearMiss(text, choice.Accepted)
	return step, nil
}

// Pick moves available reorder token i into the answer line.
func (s *LessonService) Pick(userID int64, idx, i int) (*Step, error) {
	ap, err := s.current(userID, idx)
	if err != nil {
		return nil, err
	}
	if err := ap.Play.PickAt(i); err != nil {
		return nil, err
	}
	return &Step{Play: ap}, nil
}

// Clear returns the token in reorder slot i.
func (s *LessonService) Clear(userID int64, idx, slot int) (*Step, error) {
	ap, err := s.current(userID, idx)
	if err != nil {
		return nil, err
	}
	if err := ap.Play.ClearSlot(slot); err != nil {
		return nil, err
	}
	return &Step{Play: ap}, nil
}

// TapLeft taps left match item i.
func (s *LessonService) TapLeft(userID int64, idx, i int) (*Step, error) {
	ap, err := s.current(userID, idx)
	if err != nil {
		return nil, err
	}
	fb, err := ap.Play.TapLeftAt(i)
	if err != nil {
		return nil, err
	}
	return &Step{Play: ap, Pair: fb}, nil
}

// TapRight taps right match item i, in display order.
func (s *LessonService) TapRight(userID int64, idx, i int) (*Step, error) {
	ap, err := s.current(userID, idx)
	if err != nil {
		return nil, err
	}
	fb, err := ap.Play.TapRightAt(i)
	if err != nil {
		return nil, err
	}
	return &Step{Play: ap, Pair: fb}, nil
}

// Check submits the pending answer of the current exercise.
func (s *LessonService) Check(ctx context.Context, userID int64, idx int) (*Step, error) {
	ap, err := s.current(userID, idx)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, userID, ap, ap.Play.Submit)
}

// Skip gives up on the current exercise; it counts as a wrong answer.
func (s *LessonService) Skip(ctx context.Context, userID int64, idx int) (*Step, error) {
	ap, err := s.current(userID, idx)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, userID, ap, ap.Play.Skip)
}

// Next moves to the exercise after a submitted one.
func (s *LessonService) Next(userID int64, idx int) (*Step, error) {
	ap, err := s.current(userID, idx)
	if err != nil {
		return nil, err
	}
	if err := ap.Play.Advance(); err != nil {
		return nil, err
	}
	return &Step{Play: ap}, nil
}

func (s *LessonService) submit(
	ctx context.Context,
	userID int64,
	ap *storage.ActivePlay,
	submit func() (engine.Feedback, error),
) (*Step, error) {
	fb, err := submit()
	if err != nil {
		return nil, err
	}

	step := &Step{Play: ap, Feedback: &fb}
	if !fb.Finished {
		return step, nil
	}

	// The last exercise was answered: move the cursor past it so the session
	// reaches its terminal state.
	if ap.Play.Session().State() == engine.StateInProgress {
		if err := ap.Play.Advance(); err != nil {
			return nil, err
		}
	}
	step.Result = s.finish(ctx, userID, ap)
	return step, nil
}

// current returns the active play if idx is the exercise under its cursor.
func (s *LessonService) current(userID int64, idx int) (*storage.ActivePlay, error) {
	ap, ok := s.plays.Get(userID)
	if !ok {
		return nil, ErrNoActivePlay
	}
	if ap.Play.Session().Index() != idx {
		return nil, ErrStaleExercise
	}
	return ap, nil
}

// finish records a terminal play. Storage and reporting failures are logged
// and do not hide the summary from the learner.
func (s *LessonService) finish(ctx context.Context, userID int64, ap *storage.ActivePlay) *Result {
	sum, ok := ap.Play.Session().Summary()
	if !ok {
		return nil
	}
	s.plays.Delete(userID)

	now := s.now()
	attempt := entities.NewLessonAttempt(userID, ap.LessonID, sum, ap.StartedAt, now)

	progress, err := s.recorder.Record(ctx, attempt, now)
	if err != nil {
		s.logger.Error("failed to record lesson attempt",
			zap.Int64("user_id", userID),
			zap.String("lesson_id", ap.LessonID),
			zap.Error(err),
		)
	}

	if err := s.lessons.SubmitResults(ctx, attempt); err != nil {
		s.logger.Warn("failed to submit lesson results",
			zap.Int64("user_id", userID),
			zap.String("lesson_id", ap.LessonID),
			zap.Error(err),
		)
	}

	s.logger.Info("lesson finished",
		zap.Int64("user_id", userID),
		zap.String("lesson_id", ap.LessonID),
		zap.String("outcome", string(sum.Outcome)),
		zap.Int("score_percent", sum.ScorePercent),
		zap.Int("xp_earned", sum.XPEarned),
	)

	return &Result{
		LessonID:    ap.LessonID,
		LessonTitle: ap.LessonTitle,
		Summary:     sum,
		Progress:    progress,
	}
}
