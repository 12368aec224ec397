// Command minikv is the CLI front-end over the embeddable minikv store
// (spec.md §6). It is a thin shell: the engine exposes the in-process API,
// and this binary only parses argv and formats output.
package main

import (
	"os"

	"minikv/internal/cli"
	"minikv/internal/engine"
	"minikv/pkg/logger"
	"minikv/pkg/options"
)

func main() {
	log := logger.New("minikv-cli")
	defer func() { _ = log.Sync() }()

	dir, err := os.Getwd()
	if err != nil {
		log.Errorw("could not resolve working directory", "error", err)
		os.Exit(1)
	}

	opts := options.NewDefaultOptions()
	opts.DataDir = dir

	eng, err := engine.New(&engine.Config{Options: &opts, Logger: log})
	if err != nil {
		log.Errorw("could not open store", "dir", dir, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := eng.Close(); err != nil {
			log.Errorw("could not close store", "error", err)
		}
	}()

	os.Exit(cli.Run(os.Stdout, os.Stderr, os.Args[1:], eng))
}
