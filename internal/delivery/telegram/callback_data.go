package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionLesson      = "lesson"
	actionExercise    = "ex"
	actionLessons     = "lessons"
	actionSettings    = "settings"
	actionProgress    = "progress"
	actionLeaderboard = "leaderboard"
	actionReset       = "reset"
)

// Lesson sub-actions.
const (
	lessonStart = "start"
	lessonQuit  = "quit"
)

// Exercise sub-actions. Every exercise callback carries the index of the
// exercise its keyboard was rendered for.
const (
	exChoose = "choose"
	exPick   = "pick"
	exClear  = "clear"
	exLeft   = "left"
	exRight  = "right"
	exCheck  = "check"
	exSkip   = "skip"
	exNext   = "next"
)

// Settings sub-actions.
const (
	settingsMenu      = "menu"
	settingsReminders = "reminders"
	settingsShuffle   = "shuffle"
	settingsHour      = "hour"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// maxCallbackData is the Telegram limit for callback data, in bytes.
const maxCallbackData = 64

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildLessonStartCallback builds callback data for starting a lesson.
// It reports false when the lesson id does not fit into callback data.
func buildLessonStartCallback(lessonID string) (string, bool) {
	data := callbackData{
		Action: actionLesson,
		Params: []string{lessonStart, lessonID},
	}.encode()
	return data, len(data) <= maxCallbackData
}

func buildLessonQuitCallback() string {
	return callbackData{Action: actionLesson, Params: []string{lessonQuit}}.encode()
}

// buildExerciseCallback builds callback data for an exercise interaction.
func buildExerciseCallback(subAction string, idx int, args ...int) string {
	params := []string{subAction, strconv.Itoa(idx)}
	for _, a := range args {
		params = append(params, strconv.Itoa(a))
	}
	return callbackData{
		Action: actionExercise,
		Params: params,
	}.encode()
}

func buildLessonsCallback() string {
	return actionLessons
}

// buildSettingsCallback builds callback data for settings-related actions.
func buildSettingsCallback(subAction string, value ...string) string {
	params := []string{subAction}
	params = append(params, value...)
	return callbackData{
		Action: actionSettings,
		Params: params,
	}.encode()
}

// buildProgressCallback builds callback data for opening the progress view.
func buildProgressCallback() string {
	return actionProgress
}

func buildLeaderboardCallback() string {
	return actionLeaderboard
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
