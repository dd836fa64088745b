// Package review holds the typed review record, the text normaliser and the
// immutable dataset the explorer works on.
package review

import (
	"strings"
	"unicode"
)

// Column names of the review dataset.
const (
	ColApp       = "App"
	ColReview    = "Translated_Review"
	ColSentiment = "Sentiment"
	ColCleaned   = "cleaned"
)

// RequiredColumns must be present in every raw or cleaned dataset.
var RequiredColumns = []string{ColApp, ColReview, ColSentiment}

// Sentiment is the categorical label attached to a review.
type Sentiment string

const (
	Positive Sentiment = "Positive"
	Neutral  Sentiment = "Neutral"
	Negative Sentiment = "Negative"
)

// Labels returns the three known sentiments in display order.
func Labels() []Sentiment {
	return []Sentiment{Positive, Neutral, Negative}
}

// Known reports whether s is one of the three fixed labels.
func (s Sentiment) Known() bool {
	switch s {
	case Positive, Neutral, Negative:
		return true
	}
	return false
}

func (s Sentiment) String() string { return string(s) }

// ParseSentiment accepts a label in any letter case.
func ParseSentiment(v string) (Sentiment, bool) {
	for _, l := range Labels() {
		if strings.EqualFold(strings.TrimSpace(v), string(l)) {
			return l, true
		}
	}
	return "", false
}

// Record is one review row. HasReview is false when the review cell was
// missing; Review is then empty.
type Record struct {
	App       string    `json:"app"`
	Review    string    `json:"review"`
	HasReview bool      `json:"has_review"`
	Sentiment Sentiment `json:"sentiment"`
	Cleaned   string    `json:"cleaned"`
}

// Clean keeps ASCII letters and white space, lowercases, and trims.
func Clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case isSpace(r):
			b.WriteRune(r)
		}
	}
	return strings.TrimFunc(b.String(), isSpace)
}

// isSpace matches Unicode white space plus the ASCII information separators
// U+001C..U+001F, which regular-expression engines also class as space.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Tokens splits cleaned text on runs of white space.
func Tokens(cleaned string) []string {
	return strings.FieldsFunc(cleaned, isSpace)
}
