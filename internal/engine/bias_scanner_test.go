package engine

import (
	"context"
	"testing"

	"resume-screen-go/internal/lexicon"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scannerLexicon(t *testing.T) *lexicon.BiasLexicon {
	t.Helper()
	lex, err := lexicon.ParseBiasLexicon([]byte(`
categories:
  - category: Gender
    terms: [strong, aggressive, nurturing]
  - category: Age
    terms: [young, energetic, recent graduate]
  - category: Personality
    terms: [rockstar, ninja]
`))
	require.NoError(t, err)
	return lex
}

func TestScanDetectsBiasedTerms(t *testing.T) {
	s := NewBiasScanner(zerolog.Nop())
	lex := scannerLexicon(t)

	report := s.Scan(context.Background(), "We need a STRONG, energetic rockstar.", lex)
	assert.True(t, report.Detected)
	require.Len(t, report.Matches, 3)

	// 类别按词库声明顺序；命中词按词库规范写法上报
	assert.Equal(t, "Gender", report.Matches[0].Category)
	assert.Equal(t, []string{"strong"}, report.Matches[0].Words)
	assert.Equal(t, "Age", report.Matches[1].Category)
	assert.Equal(t, []string{"energetic"}, report.Matches[1].Words)
	assert.Equal(t, "Personality", report.Matches[2].Category)
	assert.Equal(t, []string{"rockstar"}, report.Matches[2].Words)
}

func TestScanOmitsEmptyCategories(t *testing.T) {
	s := NewBiasScanner(zerolog.Nop())
	lex := scannerLexicon(t)

	report := s.Scan(context.Background(), "Seeking a coding ninja.", lex)
	assert.True(t, report.Detected)
	// 零命中的Gender与Age类别整个省略
	require.Len(t, report.Matches, 1)
	assert.Equal(t, "Personality", report.Matches[0].Category)
}

func TestScanCleanText(t *testing.T) {
	s := NewBiasScanner(zerolog.Nop())
	lex := scannerLexicon(t)

	report := s.Scan(context.Background(), "We are hiring a backend developer with Go experience.", lex)
	assert.False(t, report.Detected)
	// 无命中时Matches是空切片而非nil，序列化为[]
	assert.NotNil(t, report.Matches)
	assert.Empty(t, report.Matches)
}

func TestScanWholeWordOnly(t *testing.T) {
	s := NewBiasScanner(zerolog.Nop())
	lex := scannerLexicon(t)

	// "headstrong"与"youngster"不应触发"strong"和"young"
	report := s.Scan(context.Background(), "A headstrong youngster applied.", lex)
	assert.False(t, report.Detected)
}

func TestScanMultiWordTerm(t *testing.T) {
	s := NewBiasScanner(zerolog.Nop())
	lex := scannerLexicon(t)

	report := s.Scan(context.Background(), "Ideal for a Recent Graduate.", lex)
	assert.True(t, report.Detected)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, []string{"recent graduate"}, report.Matches[0].Words)
}

func TestScanTermInMultipleCategories(t *testing.T) {
	lex, err := lexicon.ParseBiasLexicon([]byte(`
categories:
  - category: Gender
    terms: [competitive]
  - category: Culture
    terms: [competitive]
`))
	require.NoError(t, err)

	s := NewBiasScanner(zerolog.Nop())
	report := s.Scan(context.Background(), "A competitive environment.", lex)

	// 同一词条挂在多个类别下时各类别分别上报
	require.Len(t, report.Matches, 2)
	assert.Equal(t, []string{"competitive"}, report.Matches[0].Words)
	assert.Equal(t, []string{"competitive"}, report.Matches[1].Words)
}
