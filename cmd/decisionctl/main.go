package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sergiomillane/motor-decisiones/internal/domain/service"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Evaluation produced a decision
	ExitNotEvaluable = 1 // Client not found or inconsistent bureau data
	ExitError        = 2 // Configuration or runtime error
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		if errors.Is(err, service.ErrClientNotFound) || errors.Is(err, service.ErrDataInconsistency) {
			os.Exit(ExitNotEvaluable)
		}
		os.Exit(ExitError)
	}
}
