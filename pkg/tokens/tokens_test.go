package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCounter(t *testing.T, model string) *Counter {
	t.Helper()
	c, err := NewCounter(model)
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}
	return c
}

func TestCount(t *testing.T) {
	c := newTestCounter(t, "gpt-4o")
	assert.Equal(t, 0, c.Count(""))
	assert.Greater(t, c.Count("Hello, world! This is a token counting test."), 5)
}

func TestCountStripsProviderPrefix(t *testing.T) {
	plain := newTestCounter(t, "gpt-4o")
	prefixed := newTestCounter(t, "openai/gpt-4o")

	text := "The quick brown fox jumps over the lazy dog."
	assert.Equal(t, plain.Count(text), prefixed.Count(text))
	assert.Equal(t, "openai/gpt-4o", prefixed.Model())
}

func TestUnknownModelFallsBack(t *testing.T) {
	c := newTestCounter(t, "gemini/gemini-2.5-pro")
	require.NotNil(t, c)
	assert.Greater(t, c.Count("fallback encoding still counts"), 0)
}

func TestTruncate(t *testing.T) {
	c := newTestCounter(t, "gpt-4o")

	text := strings.Repeat("many words to truncate ", 50)
	short := c.Truncate(text, 10)
	assert.LessOrEqual(t, c.Count(short), 10)
	assert.Equal(t, "short", c.Truncate("short", 100))
}

func TestEstimate(t *testing.T) {
	assert.Equal(t, 0, Estimate(""))
	assert.Equal(t, 25, Estimate(strings.Repeat("a", 100)))
}
