// Package tokens provides model-aware token counting backed by tiktoken.
package tokens

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Counter counts tokens for a specific model.
type Counter struct {
	encoding *tiktoken.Tiktoken
	model    string
}

var (
	encodingCache = make(map[string]*tiktoken.Tiktoken)
	cacheMu       sync.RWMutex
)

// NewCounter creates a counter for the given model. Unknown models fall back
// to the cl100k_base encoding, which keeps estimates usable for ceiling
// checks on non-OpenAI models.
func NewCounter(model string) (*Counter, error) {
	// Provider-prefixed names ("gemini/gemini-pro") are not known to
	// tiktoken; strip the prefix before lookup.
	lookup := model
	if i := strings.LastIndex(lookup, "/"); i >= 0 {
		lookup = lookup[i+1:]
	}

	cacheMu.RLock()
	cached, ok := encodingCache[lookup]
	cacheMu.RUnlock()
	if ok {
		return &Counter{encoding: cached, model: model}, nil
	}

	encoding, err := tiktoken.EncodingForModel(lookup)
	if err != nil {
		encoding, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("failed to get encoding: %w", err)
		}
	}

	cacheMu.Lock()
	encodingCache[lookup] = encoding
	cacheMu.Unlock()

	return &Counter{encoding: encoding, model: model}, nil
}

// Count returns the token count for text.
func (c *Counter) Count(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}

// Truncate returns text cut to at most maxTokens tokens.
func (c *Counter) Truncate(text string, maxTokens int) string {
	toks := c.encoding.Encode(text, nil, nil)
	if len(toks) <= maxTokens {
		return text
	}
	return c.encoding.Decode(toks[:maxTokens])
}

// Model returns the model this counter was created for.
func (c *Counter) Model() string {
	return c.model
}

// Estimate is a rough character-based estimation for when no counter is
// available: about 4 characters per token.
func Estimate(text string) int {
	return len(text) / 4
}
