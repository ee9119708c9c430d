// Package main is the entry point for the cadre CLI.
package main

import (
	"fmt"
	"os"

	"github.com/cadre-sh/cadre/internal/logger"
)

var version = "dev"

func main() {
	defer logger.CloseLogFile()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
