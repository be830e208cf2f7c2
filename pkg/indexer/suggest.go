package indexer

import (
	"context"
	"fmt"

	"github.com/zuhaus/house-search/pkg/search"
)

const numericTokenType = "<NUM>"

// SuggestionBuilder derives autocomplete entries from the analyzed text fields
// of a document.
type SuggestionBuilder struct {
	analyzer Analyzer
}

func NewSuggestionBuilder(analyzer Analyzer) *SuggestionBuilder {
	return &SuggestionBuilder{analyzer: analyzer}
}

// Attach analyzes the document text fields in one call and sets the suggest
// entries. Numeric tokens and tokens shorter than two runes are dropped, they
// only produce suggestion noise. The raw district name is always appended,
// districts are proper nouns the analyzer tends to fragment.
func (s *SuggestionBuilder) Attach(ctx context.Context, doc *search.HouseDoc) error {
	tokens, err := s.analyzer.Analyze(ctx,
		doc.Title,
		doc.LayoutDesc,
		doc.RoundService,
		doc.Description,
		doc.SubwayLineName,
		doc.SubwayStationName,
	)
	if err != nil {
		return fmt.Errorf("analyze house %d: %w", doc.HouseId, err)
	}

	suggestions := make([]search.Suggestion, 0, len(tokens)+1)
	for _, token := range tokens {
		if token.Type == numericTokenType || len([]rune(token.Term)) < 2 {
			continue
		}
		suggestions = append(suggestions, search.Suggestion{Input: token.Term})
	}
	suggestions = append(suggestions, search.Suggestion{Input: doc.District})

	doc.Suggest = suggestions
	return nil
}
