package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/j3rryl/go-xlsx2docx/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	FS     afero.Fs
	Config *config.Config // Loaded once per command
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		FS:     afero.NewOsFs(),
		Config: config.DefaultConfig(),
	}
}
