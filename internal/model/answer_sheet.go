package model

import (
	"strconv"
)

// AnswerSheet is a parsed submission: question position → selected option.
// Clients send answer maps keyed by stringified positions; ParseAnswerSheet
// is the single place where those keys are validated, so everything
// downstream works with integer positions only.
type AnswerSheet map[int]string

// ParseAnswerSheet converts a raw position→option map into an AnswerSheet.
// Keys that are not positive integers are dropped silently — a malformed
// key never fails the whole call.
func ParseAnswerSheet(raw map[string]string) AnswerSheet {
	sheet := make(AnswerSheet, len(raw))
	for key, option := range raw {
		pos, err := strconv.Atoi(key)
		if err != nil || pos <= 0 {
			continue
		}
		sheet[pos] = option
	}
	return sheet
}

// HighestPosition returns the maximum answered position, or 0 for an empty
// sheet. This is the resume cursor persisted with a progress snapshot.
func (s AnswerSheet) HighestPosition() int {
	max := 0
	for pos := range s {
		if pos > max {
			max = pos
		}
	}
	return max
}
