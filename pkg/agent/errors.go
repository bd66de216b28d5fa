package agent

import "fmt"

// ContextTooLargeError is returned when an agent's input exceeds its
// configured max_input_tokens ceiling. It is not retryable.
type ContextTooLargeError struct {
	Agent  string
	Tokens int
	Limit  int
}

func (e *ContextTooLargeError) Error() string {
	return fmt.Sprintf("agent %s: input of %d tokens exceeds the %d token limit", e.Agent, e.Tokens, e.Limit)
}
