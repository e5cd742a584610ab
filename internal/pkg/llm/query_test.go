package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	cases := map[string]int{
		"7":           7,
		"Score: 9/10": 9,
		"12":          10,
		"0":           1,
		" 3\n":        3,
	}
	for in, want := range cases {
		got, err := ParseScore(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseScore("high")
	assert.Error(t, err)
}

func TestAssistantDisabledWithoutClient(t *testing.T) {
	a := NewAssistant()
	assert.False(t, a.Enabled())

	_, err := a.AnswerQuery(context.Background(), "best day?", map[string]any{})
	assert.ErrorIs(t, err, ErrLLMDisabled)
}
