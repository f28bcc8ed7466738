// Package catalog serves lessons from a local directory of YAML files.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
	"github.com/aliskhannn/lingvo-bot/internal/lessondata"
)

// Catalog holds every lesson found in a directory. Lessons are read once and
// are immutable afterwards, so a Catalog is safe for concurrent use.
type Catalog struct {
	lessons map[string]entities.Lesson
	order   []string
}

// Load reads every *.yaml and *.yml file in dir. Each file holds one lesson.
func Load(dir string, logger *zap.Logger) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	c := &Catalog{lessons: make(map[string]entities.Lesson)}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		path := filepath.Join(dir, e.Name())
		lesson, err := loadFile(path, logger)
		if err != nil {
			return nil, err
		}
		if _, ok := c.lessons[lesson.ID]; ok {
			return nil, fmt.Errorf("load %s: duplicate lesson id %q", path, lesson.ID)
		}

		c.lessons[lesson.ID] = lesson
		c.order = append(c.order, lesson.ID)
	}

	slices.Sort(c.order)
	return c, nil
}

func loadFile(path string, logger *zap.Logger) (entities.Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.Lesson{}, fmt.Errorf("read %s: %w", path, err)
	}

	var payload lessondata.LessonPayload
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return entities.Lesson{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if payload.ID == "" {
		return entities.Lesson{}, fmt.Errorf("parse %s: missing lesson id", path)
	}

	lesson, warnings := lessondata.ToLesson(payload)
	for _, w := range warnings {
		logger.Warn("malformed exercise in catalog",
			zap.String("file", path),
			zap.Error(w),
		)
	}
	return lesson, nil
}

// ListLessons returns headers ordered by lesson id, filtered by topic when
// topicID is not empty.
func (c *Catalog) ListLessons(_ context.Context, topicID string) ([]entities.LessonHeader, error) {
	headers := make([]entities.LessonHeader, 0, len(c.order))
	for _, id := range c.order {
		l := c.lessons[id]
		if topicID != "" && l.TopicID != topicID {
			continue
		}
		headers = append(headers, l.Header())
	}
	return headers, nil
}

// GetLesson returns the lesson with the given id.
func (c *Catalog) GetLesson(_ context.Context, lessonID string) (entities.Lesson, error) {
	l, ok := c.lessons[lessonID]
	if !ok {
		return entities.Lesson{}, fmt.Errorf("get lesson %q: %w", lessonID, entities.ErrLessonNotFound)
	}
	return l, nil
}

// SubmitResults is a no-op: a local catalog has nowhere to report to.
func (c *Catalog) SubmitResults(context.Context, *entities.LessonAttempt) error {
	return nil
}
