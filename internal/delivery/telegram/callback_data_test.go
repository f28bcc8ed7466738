package telegram

import (
	"strings"
	"testing"
)

func TestCallbackData_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		action string
		params []string
	}{
		{"exercise tap", buildExerciseCallback(exLeft, 3, 1), actionExercise, []string{exLeft, "3", "1"}},
		{"exercise check", buildExerciseCallback(exCheck, 0), actionExercise, []string{exCheck, "0"}},
		{"settings hour", buildSettingsCallback(settingsHour, "21"), actionSettings, []string{settingsHour, "21"}},
		{"lessons", buildLessonsCallback(), actionLessons, []string{}},
		{"reset", buildResetConfirmCallback(), actionReset, []string{resetConfirm}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := decodeCallback(tt.data)
			if cd.Action != tt.action {
				t.Errorf("Action = %q; want %q", cd.Action, tt.action)
			}
			if strings.Join(cd.Params, ",") != strings.Join(tt.params, ",") {
				t.Errorf("Params = %v; want %v", cd.Params, tt.params)
			}
			if cd.encode() != tt.data {
				t.Errorf("encode() = %q; want %q", cd.encode(), tt.data)
			}
		})
	}
}

func TestCallbackData_IntParam(t *testing.T) {
	cd := decodeCallback("ex:choose:2:x:-1")

	if n, ok := cd.intParam(1); !ok || n != 2 {
		t.Errorf("intParam(1) = %d, %v; want 2, true", n, ok)
	}
	if _, ok := cd.intParam(2); ok {
		t.Error("intParam(2) accepted a non-number")
	}
	if _, ok := cd.intParam(3); ok {
		t.Error("intParam(3) accepted a negative number")
	}
	if _, ok := cd.intParam(9); ok {
		t.Error("intParam(9) accepted a missing parameter")
	}
}

func TestBuildLessonStartCallback(t *testing.T) {
	data, ok := buildLessonStartCallback("es:basics-1")
	if !ok || data != "lesson:start:es:basics-1" {
		t.Errorf("buildLessonStartCallback = %q, %v", data, ok)
	}

	// Ids containing the separator survive the lesson callback decoding.
	cd := decodeCallback(data)
	if got := strings.Join(cd.Params[1:], ":"); got != "es:basics-1" {
		t.Errorf("decoded lesson id = %q", got)
	}

	if _, ok := buildLessonStartCallback(strings.Repeat("x", maxCallbackData)); ok {
		t.Error("too long lesson id accepted")
	}
}
