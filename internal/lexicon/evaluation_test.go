package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvaluationSet(t *testing.T) {
	set, err := ParseEvaluationSet([]byte(`
version: "test-1"
samples:
  - text: "We need a strong young leader."
    biased: true
  - text: "Backend engineer with Go experience."
    biased: false
`))
	require.NoError(t, err)

	assert.Equal(t, "test-1", set.Version)
	require.Len(t, set.Samples, 2)
	assert.True(t, set.Samples[0].Biased)
	assert.False(t, set.Samples[1].Biased)
	assert.Equal(t, "Backend engineer with Go experience.", set.Samples[1].Text)
}

func TestParseEvaluationSetRejectsEmptyText(t *testing.T) {
	_, err := ParseEvaluationSet([]byte(`
samples:
  - text: ""
    biased: true
`))
	assert.Error(t, err)
}

func TestParseEvaluationSetRejectsInvalidYAML(t *testing.T) {
	_, err := ParseEvaluationSet([]byte("samples: [not a mapping"))
	assert.Error(t, err)
}
