// Package main is the quickhash CLI entrypoint.
package main

import (
	"os"

	"quickhash/internal/app"
)

func main() {
	application := app.New()
	os.Exit(application.Run(os.Args[1:]))
}
