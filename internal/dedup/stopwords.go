package dedup

// stopWords are excluded from similarity comparison. The list leans on news
// prose: auxiliaries, prepositions, and reporting verbs that would otherwise
// inflate overlap between unrelated stories.
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		"the", "a", "an", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "do", "does", "did", "will", "would", "could",
		"should", "may", "might", "must", "shall", "can", "need", "dare",
		"ought", "used", "to", "of", "in", "for", "on", "with", "at", "by",
		"from", "as", "into", "through", "during", "before", "after", "above",
		"below", "between", "under", "again", "further", "then", "once", "here",
		"there", "when", "where", "why", "how", "all", "each", "few", "more",
		"most", "other", "some", "such", "no", "nor", "not", "only", "own",
		"same", "so", "than", "too", "very", "just", "and", "but", "if", "or",
		"because", "until", "while", "although", "though",
		"new", "now", "says", "said", "according", "report", "reports", "its",
		"this", "that", "these", "those", "it", "they", "we", "you", "he", "she",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}
