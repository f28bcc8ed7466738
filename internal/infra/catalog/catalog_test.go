package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

const colors = `
id: colors-1
title: Colors
topic_id: basics
xp_reward: 10
exercises:
  - id: c1
    question_format: multiple_choice
    question: Red?
    options: [rojo, azul]
    correct_answer: rojo
`

const food = `
id: food-1
title: Food
topic_id: food
xp_reward: 15
exercises:
  - id: f1
    question_format: reorder
    question: Order the words
    options: [manzana, una, como]
    correct_answer: como una manzana
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "colors.yaml", colors)
	writeFile(t, dir, "food.yml", food)
	writeFile(t, dir, "README.md", "not a lesson")

	c, err := Load(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	all, _ := c.ListLessons(context.Background(), "")
	if len(all) != 2 || all[0].ID != "colors-1" || all[1].ID != "food-1" {
		t.Errorf("ListLessons(\"\") = %+v", all)
	}

	basics, _ := c.ListLessons(context.Background(), "basics")
	if len(basics) != 1 || basics[0].Title != "Colors" {
		t.Errorf("ListLessons(basics) = %+v", basics)
	}

	lesson, err := c.GetLesson(context.Background(), "food-1")
	if err != nil {
		t.Fatalf("GetLesson: %v", err)
	}
	if len(lesson.Exercises) != 1 || lesson.Exercises[0].Body == nil {
		t.Errorf("lesson = %+v", lesson)
	}
}

func TestGetLessonNotFound(t *testing.T) {
	c, err := Load(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := c.GetLesson(context.Background(), "nope"); !errors.Is(err, entities.ErrLessonNotFound) {
		t.Errorf("err = %v; want ErrLessonNotFound", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"invalid yaml", map[string]string{"a.yaml": "id: [unterminated"}},
		{"missing id", map[string]string{"a.yaml": "title: No id\n"}},
		{"duplicate id", map[string]string{"a.yaml": colors, "b.yaml": colors}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}
			if _, err := Load(dir, zap.NewNop()); err == nil {
				t.Error("Load: want error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing"), zap.NewNop()); err == nil {
		t.Error("Load of missing dir: want error")
	}
}

func TestBundledLessons(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	c, err := Load(filepath.Join("..", "..", "..", "assets", "lessons"), zap.New(core))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("bundled lessons logged %d warnings: %v", logs.Len(), logs.All())
	}

	headers, err := c.ListLessons(context.Background(), "")
	if err != nil || len(headers) == 0 {
		t.Fatalf("ListLessons = %v, %v", headers, err)
	}

	seen := make(map[entities.Format]bool)
	for _, h := range headers {
		l, err := c.GetLesson(context.Background(), h.ID)
		if err != nil {
			t.Fatalf("GetLesson(%q): %v", h.ID, err)
		}
		for _, ex := range l.Exercises {
			seen[ex.Format] = true
		}
	}
	for _, f := range entities.Formats {
		if !seen[f] {
			t.Errorf("no bundled exercise uses %s", f)
		}
	}
}
