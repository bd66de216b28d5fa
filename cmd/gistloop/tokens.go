package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gistloop/gistloop/pkg/tokens"
)

// TokensCmd counts tokens the way the agent input ceiling does.
type TokensCmd struct {
	Model string `help:"Model whose tokenizer to use." default:"gpt-4o"`
	File  string `arg:"" optional:"" help:"File to count. Reads stdin when omitted." type:"path"`
}

func (c *TokensCmd) Run(cli *CLI) error {
	var (
		data []byte
		err  error
	)
	if c.File != "" {
		data, err = os.ReadFile(c.File)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	counter, err := tokens.NewCounter(c.Model)
	if err != nil {
		return err
	}
	fmt.Printf("%d tokens (%s)\n", counter.Count(string(data)), counter.Model())
	return nil
}
