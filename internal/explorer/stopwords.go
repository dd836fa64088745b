package explorer

// stopWords is the English stop list applied to word-cloud terms. Entries
// are lowercase letters only, matching cleaned text.
var stopWords = toSet(
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and",
	"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "cannot", "com", "could", "did", "do",
	"does", "doing", "down", "during", "each", "else", "ever", "few", "for", "from",
	"further", "get", "had", "has", "have", "having", "he", "hence", "her", "here",
	"hers", "herself", "him", "himself", "his", "how", "however", "http", "i", "if",
	"in", "into", "is", "it", "its", "itself", "just", "k", "like", "me", "more",
	"most", "my", "myself", "no", "nor", "not", "of", "off", "on", "once", "only",
	"or", "other", "otherwise", "ought", "our", "ours", "ourselves", "out", "over",
	"own", "r", "same", "shall", "she", "should", "since", "so", "some", "such",
	"than", "that", "the", "their", "theirs", "them", "themselves", "then", "there",
	"therefore", "these", "they", "this", "those", "through", "to", "too", "under",
	"until", "up", "very", "was", "we", "were", "what", "when", "where", "which",
	"while", "who", "whom", "why", "with", "would", "www", "you", "your", "yours",
	"yourself", "yourselves",
)

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// IsStopWord reports whether w is on the word-cloud stop list.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
