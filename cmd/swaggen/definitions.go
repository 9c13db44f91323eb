package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/vitalvas/swaggen/generator"
	"github.com/vitalvas/swaggen/store"
)

type DefinitionsCommand struct {
	Config string `help:"Generator configuration file." short:"c" default:"swaggen.yml"`
	Root   string `help:"Filesystem store root, used when the configuration file is absent." default:"api/swagger"`
}

func (c *DefinitionsCommand) Run(app *App) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	bucket, err := cfg.Bucket()
	if err != nil {
		return err
	}

	defs, err := store.New(bucket, store.WithLogger(app.Logger)).Definitions(context.Background())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if _, err := fmt.Fprintln(app.Out, name); err != nil {
			return err
		}
	}

	return nil
}

func (c *DefinitionsCommand) config() (generator.Config, error) {
	cfg, err := generator.LoadConfig(c.Config)
	if err == nil {
		return cfg, nil
	}
	if _, statErr := os.Stat(c.Config); statErr == nil {
		return generator.Config{}, err
	}

	cfg = generator.DefaultConfig()
	cfg.Store.Root = c.Root

	return cfg, nil
}
