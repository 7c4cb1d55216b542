// Package main is the entry point for the xcsdk CLI.
package main

import (
	"os"

	"github.com/thoreinstein/xcsdk/cmd/xcsdk/commands"
	"github.com/thoreinstein/xcsdk/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(errors.Code(err))
	}
}
