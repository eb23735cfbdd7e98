// Package course holds the exercise-attempt state machine and the lesson
// progression gate. Everything here is pure in-memory logic; persistence and
// transport live elsewhere.
package course

import "strings"

// Normalize canonicalizes an answer for comparison: trim surrounding
// whitespace, then lowercase. No punctuation tolerance beyond that.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AnswersMatch reports whether a user answer matches the expected answer
// after normalization. No partial credit.
func AnswersMatch(answer, correct string) bool {
	return Normalize(answer) == Normalize(correct)
}
