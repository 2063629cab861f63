// Package enrichment implements the text enrichment contract with a VADER
// sentiment lexicon and part-of-speech based keyword extraction.
package enrichment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/jonreiter/govader"
)

const maxKeywords = 20

// Enricher scores sentiment and extracts noun keywords from feedback text.
// It is stateless and safe for concurrent use.
type Enricher struct{}

// New creates an enricher backed by the default VADER lexicon.
func New() *Enricher {
	return &Enricher{}
}

// ScoreSentiment returns the compound polarity of text in [-1, 1].
// Blank input is neutral and scores 0 without consulting the lexicon.
func (e *Enricher) ScoreSentiment(_ context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	analyzer := govader.NewSentimentIntensityAnalyzer()
	return analyzer.PolarityScores(text).Compound, nil
}

// ExtractKeywords returns up to 20 noun tokens in order of first appearance.
// Blank input yields an empty list.
func (e *Enricher) ExtractKeywords(_ context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("tagging text: %w", err)
	}

	keywords := make([]string, 0, maxKeywords)
	for _, tok := range doc.Tokens() {
		// NN, NNS, NNP, NNPS cover common and proper nouns.
		if !strings.HasPrefix(tok.Tag, "NN") {
			continue
		}
		keywords = append(keywords, tok.Text)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords, nil
}
