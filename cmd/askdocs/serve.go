package main

import (
	"fmt"

	"github.com/askdocs/askdocs"
	apihttp "github.com/askdocs/askdocs/http"
)

// Run executes the serve command. It blocks until the context is
// canceled, typically by an interrupt signal.
func (c *ServeCmd) Run(deps *Dependencies) error {
	port := c.Port
	if port == 0 {
		port = deps.Config.Port
	}

	server := apihttp.NewServer(deps.Asker, deps.Logger)
	server.Addr = fmt.Sprintf(":%d", port)

	if err := server.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", askdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", server.URL())

	<-deps.Ctx.Done()

	fmt.Fprintln(deps.Stdout, "Shutting down")
	return server.Close()
}
