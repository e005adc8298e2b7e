package main

import (
	"context"
	"errors"
	"fmt"

	sitegen "github.com/alnah/go-sitegen"
	"github.com/alnah/go-sitegen/internal/hints"
)

const usage = `Usage: sitegen [--watch]

Regenerates the site's pages, indexes, manifests and injected blocks
from its markdown and JSON sources. Settings are read from sitegen.yaml
in the working directory when present.

Flags:
  -w, --watch     rebuild when sources change
      --version   print the version and exit
  -h, --help      show this help
`

func run(ctx context.Context, args []string, env *Environment) error {
	flags, _, err := parseFlags(args)
	if err != nil {
		return err
	}
	if flags.help {
		fmt.Fprint(env.Stdout, usage)
		return nil
	}
	if flags.version {
		fmt.Fprintln(env.Stdout, "sitegen", Version)
		return nil
	}

	cfg, path, err := sitegen.LoadConfig(env.Dir)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForConfigInvalid(path))
	}

	log, err := env.logger(cfg, "build")
	if err != nil {
		return err
	}
	if path != "" {
		log.Debug("loaded config", "path", path)
	}

	gen, err := sitegen.NewGenerator(cfg, sitegen.WithLogger(log))
	if err != nil {
		return err
	}

	if flags.watch {
		return watch(ctx, cfg, gen, log)
	}

	if _, err := gen.Generate(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("build interrupted: %w", err)
		}
		return err
	}
	return nil
}
