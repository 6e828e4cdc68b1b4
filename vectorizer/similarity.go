package vectorizer

import "github.com/viant/fuzzyjoin/vector"

// Similarity returns the cosine similarity of the n-gram vectors of a and b,
// 0 when either has no n-grams. It is the score a text join reports for the
// pair.
func Similarity(a, b string, params Params) (float64, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}
	va, err := Encode(a, params)
	if err != nil {
		return 0, err
	}
	vb, err := Encode(b, params)
	if err != nil {
		return 0, err
	}
	return vector.CosineSimilarity(va, vb), nil
}

// NgramSimilarity scores a and b by the character n-grams they share:
//
//	sum(min(ca, cb)) / (sum(ca) + sum(cb) - sum(min(ca, cb)))
//
// where ca and cb count the n-grams of the lower-cased strings padded with
// one space on each side. Identical strings score 1, strings without a
// common n-gram 0.
func NgramSimilarity(a, b string, ngrams NgramRange) (float64, error) {
	if err := ngrams.Validate(); err != nil {
		return 0, err
	}
	ca, na := ngramCounts(a, ngrams)
	cb, nb := ngramCounts(b, ngrams)
	same := 0
	for gram, x := range ca {
		same += min(x, cb[gram])
	}
	all := na + nb - same
	if all == 0 {
		return 0, nil
	}
	return float64(same) / float64(all), nil
}

func ngramCounts(text string, ngrams NgramRange) (map[string]int, int) {
	grams := charNgrams([]rune(" "+normalize(text)+" "), ngrams)
	counts := make(map[string]int, len(grams))
	for _, gram := range grams {
		counts[gram]++
	}
	return counts, len(grams)
}
