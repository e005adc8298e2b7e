package main

import (
	"io"
	"os"

	"github.com/alnah/go-sitegen/internal/config"
	"github.com/alnah/go-sitegen/internal/logging"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Dir    string // Site root holding the optional sitegen.yaml
	Stdout io.Writer
	Stderr io.Writer
	Logger logging.Logger // Nil = built from the config's logging section
}

// DefaultEnv returns the production environment rooted at the working
// directory.
func DefaultEnv() *Environment {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return &Environment{
		Dir:    dir,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// logger returns the injected logger or a go-logger component logger
// configured from cfg.
func (e *Environment) logger(cfg *config.Config, component string) (logging.Logger, error) {
	if e.Logger != nil {
		return e.Logger, nil
	}
	p, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	return p.GetLogger(component), nil
}
