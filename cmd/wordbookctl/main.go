package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := newWordbookApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(app.ErrWriter, err)

		code := ExitCodeUnknownError
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		os.Exit(code)
	}
}
