package explorer

import (
	"sort"
	"strings"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

// WordCount is a token with its number of occurrences.
type WordCount struct {
	Word   string  `json:"word"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight,omitempty"`
}

// WordFrequency is the top-token ranking of a view.
type WordFrequency struct {
	Words        []WordCount `json:"words"`
	Insufficient bool        `json:"insufficient"`
}

// counter tallies tokens and remembers first-seen order for tie breaks.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter { return &counter{counts: map[string]int{}} }

func (c *counter) add(tok string) {
	if _, ok := c.counts[tok]; !ok {
		c.order = append(c.order, tok)
	}
	c.counts[tok]++
}

// top returns the n most frequent tokens; equal counts keep first-seen order.
func (c *counter) top(n int) []WordCount {
	out := make([]WordCount, len(c.order))
	for i, w := range c.order {
		out[i] = WordCount{Word: w, Count: c.counts[w]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TopWords ranks whitespace tokens of the cleaned text across the view.
func TopWords(view []review.Record, n int) WordFrequency {
	c := newCounter()
	for _, r := range view {
		for _, tok := range review.Tokens(r.Cleaned) {
			c.add(tok)
		}
	}
	if len(c.order) == 0 {
		return WordFrequency{Insufficient: true}
	}
	return WordFrequency{Words: c.top(n)}
}

// Cloud is the word-cloud input for positive reviews. Text is the joined
// cleaned text; Words are the weighted terms to draw.
type Cloud struct {
	Text         string      `json:"text,omitempty"`
	Words        []WordCount `json:"words,omitempty"`
	Insufficient bool        `json:"insufficient"`
}

// PositiveCloud joins the non-empty cleaned text of positive rows with single
// spaces. Fewer than minChars characters after trimming is insufficient.
// Words carries up to maxWords terms of two or more letters, stop words
// removed, weighted relative to the most frequent term. Text with no such
// terms is insufficient too.
func PositiveCloud(view []review.Record, minChars, maxWords int) Cloud {
	var parts []string
	for _, r := range view {
		if r.Sentiment == review.Positive && r.Cleaned != "" {
			parts = append(parts, r.Cleaned)
		}
	}
	text := strings.Join(parts, " ")
	if len([]rune(strings.TrimSpace(text))) < minChars {
		return Cloud{Insufficient: true}
	}
	c := newCounter()
	for _, tok := range review.Tokens(text) {
		if len(tok) < 2 || IsStopWord(tok) {
			continue
		}
		c.add(tok)
	}
	words := c.top(maxWords)
	if len(words) == 0 {
		return Cloud{Insufficient: true}
	}
	hi := float64(words[0].Count)
	for i := range words {
		words[i].Weight = float64(words[i].Count) / hi
	}
	return Cloud{Text: text, Words: words}
}

// Sample is one row of the sample table.
type Sample struct {
	Review    string           `json:"review"`
	Sentiment review.Sentiment `json:"sentiment"`
}

// Samples projects the first n rows of the view, in view order.
func Samples(view []review.Record, n int) []Sample {
	if n > len(view) {
		n = len(view)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Sample, 0, n)
	for _, r := range view[:n] {
		out = append(out, Sample{Review: r.Review, Sentiment: r.Sentiment})
	}
	return out
}
