package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/autorefactor/autorefactor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrChangesFound) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
