package vectorizer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Analyzer selects how text is split into n-grams.
type Analyzer string

const (
	// Word builds n-grams of word tokens.
	Word Analyzer = "word"
	// Char builds character n-grams over the whole text, across words.
	Char Analyzer = "char"
	// CharWB builds character n-grams inside space-padded words only.
	CharWB Analyzer = "char_wb"
)

var (
	// ErrUnsupportedAnalyzer is returned for analyzers other than word, char and char_wb.
	ErrUnsupportedAnalyzer = errors.New("vectorizer: unsupported analyzer")
	// ErrInvalidNgramRange is returned when the n-gram range is not 1 <= min <= max.
	ErrInvalidNgramRange = errors.New("vectorizer: invalid ngram range")
)

// ParseAnalyzer validates an analyzer name.
func ParseAnalyzer(name string) (Analyzer, error) {
	switch a := Analyzer(strings.ToLower(strings.TrimSpace(name))); a {
	case Word, Char, CharWB:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q (expected word, char or char_wb)", ErrUnsupportedAnalyzer, name)
}

// NgramRange is the inclusive range of n-gram lengths.
type NgramRange struct {
	Min int
	Max int
}

// Validate checks 1 <= Min <= Max.
func (r NgramRange) Validate() error {
	if r.Min < 1 || r.Max < r.Min {
		return fmt.Errorf("%w: (%d, %d)", ErrInvalidNgramRange, r.Min, r.Max)
	}
	return nil
}

var wordToken = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Analyze lower-cases text, collapses whitespace runs and returns its
// n-grams in generation order.
func Analyze(text string, analyzer Analyzer, ngrams NgramRange) ([]string, error) {
	if err := ngrams.Validate(); err != nil {
		return nil, err
	}
	text = normalize(text)
	switch analyzer {
	case Word:
		return wordNgrams(wordToken.FindAllString(text, -1), ngrams), nil
	case Char:
		return charNgrams([]rune(text), ngrams), nil
	case CharWB:
		return charWBNgrams(text, ngrams), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAnalyzer, analyzer)
}

func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	space := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func wordNgrams(tokens []string, ngrams NgramRange) []string {
	minN, maxN := ngrams.Min, ngrams.Max
	var out []string
	if minN == 1 {
		out = append(out, tokens...)
		minN++
	}
	for n := minN; n <= maxN && n <= len(tokens); n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

func charNgrams(text []rune, ngrams NgramRange) []string {
	minN, maxN := ngrams.Min, ngrams.Max
	var out []string
	if minN == 1 {
		for _, r := range text {
			out = append(out, string(r))
		}
		minN++
	}
	for n := minN; n <= maxN && n <= len(text); n++ {
		for i := 0; i+n <= len(text); i++ {
			out = append(out, string(text[i:i+n]))
		}
	}
	return out
}

func charWBNgrams(text string, ngrams NgramRange) []string {
	var out []string
	for _, word := range strings.Fields(text) {
		w := []rune(" " + word + " ")
		for n := ngrams.Min; n <= ngrams.Max; n++ {
			offset := 0
			out = append(out, string(w[offset:min(offset+n, len(w))]))
			for offset+n < len(w) {
				offset++
				out = append(out, string(w[offset:offset+n]))
			}
			// a padded word shorter than n is counted once
			if offset == 0 {
				break
			}
		}
	}
	return out
}
