package main

import (
	"fmt"

	"github.com/askdocs/askdocs"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", askdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)

	if len(answer.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nSources:")
		for _, s := range answer.Sources {
			fmt.Fprintf(deps.Stdout, "  - %s (%s)\n", s.Title, s.URL)
		}
	}
	fmt.Fprintf(deps.Stdout, "\nConfidence: %.2f\n", answer.Confidence)
	return nil
}
