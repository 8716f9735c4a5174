package main

import (
	"fmt"
	"os"

	"github.com/regionc/regionc/cmd/regionc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
