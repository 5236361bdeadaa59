// Package main is the entry point for the emergency-room triage simulator.
// It only handles dependency injection and wiring.
// NO business logic belongs here.
package main

import (
	"fmt"
	"os"
)

func main() {
	app := buildApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "triage-sim:", err)
		os.Exit(1)
	}
}
