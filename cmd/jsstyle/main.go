package main

import (
	"fmt"
	"os"

	"github.com/stylekit/jsstyle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !cmd.IsIssuesFound(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
