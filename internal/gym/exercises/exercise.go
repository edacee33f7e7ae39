package exercises

import (
	"strings"
	"time"
	"unicode"
)

// Exercise is a globally shared catalog entry, referenced by sets and
// personal records of all users.
type Exercise struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ExerciseType string    `json:"exerciseType"`
	IsBodyweight bool      `json:"isBodyweight"`
	IsCardio     bool      `json:"isCardio"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NormalizeName trims the raw name and title-cases each word, so that
// " bench press " and "BENCH PRESS" both resolve to "Bench Press".
func NormalizeName(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
