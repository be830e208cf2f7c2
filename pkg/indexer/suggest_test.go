package indexer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zuhaus/house-search/pkg/search"
)

func suggestionInputs(doc *search.HouseDoc) []string {
	inputs := make([]string, 0, len(doc.Suggest))
	for _, s := range doc.Suggest {
		inputs = append(inputs, s.Input)
	}
	return inputs
}

func TestAttachFiltersNumericAndShortTokens(t *testing.T) {
	analyzer := &fakeAnalyzer{tokens: []search.Token{
		{Term: "国贸", Type: "CN_WORD"},
		{Term: "2022", Type: "<NUM>"},
		{Term: "层", Type: "CN_CHAR"},
		{Term: "两居室", Type: "CN_WORD"},
	}}
	s := NewSuggestionBuilder(analyzer)
	doc := &search.HouseDoc{HouseId: 16, District: "国贸公寓"}

	if err := s.Attach(context.Background(), doc); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []string{"国贸", "两居室", "国贸公寓"}, suggestionInputs(doc))
}

func TestAttachAlwaysIncludesDistrict(t *testing.T) {
	s := NewSuggestionBuilder(&fakeAnalyzer{})
	doc := &search.HouseDoc{HouseId: 16, District: "望京新城"}

	if err := s.Attach(context.Background(), doc); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []string{"望京新城"}, suggestionInputs(doc),
		"empty analysis still yields the district entry")
}

func TestAttachAnalyzerErrorIsHard(t *testing.T) {
	s := NewSuggestionBuilder(&fakeAnalyzer{err: errDownstream})
	doc := &search.HouseDoc{HouseId: 16, District: "国贸公寓"}

	err := s.Attach(context.Background(), doc)

	assert.ErrorIs(t, err, errDownstream)
	assert.Nil(t, doc.Suggest)
}

func TestAttachShortAsciiTokens(t *testing.T) {
	analyzer := &fakeAnalyzer{tokens: []search.Token{
		{Term: "a", Type: "ENGLISH"},
		{Term: "cbd", Type: "ENGLISH"},
	}}
	s := NewSuggestionBuilder(analyzer)
	doc := &search.HouseDoc{District: "cbd core"}

	if err := s.Attach(context.Background(), doc); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []string{"cbd", "cbd core"}, suggestionInputs(doc))
}
