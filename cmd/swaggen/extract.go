package main

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vitalvas/swaggen/errscan"
)

type ExtractCommand struct {
	Dir        string   `arg:"" help:"Directory with handler sources." type:"existingdir"`
	Dictionary string   `help:"Error dictionary file." short:"d" required:"" type:"existingfile"`
	Qualifier  []string `help:"Package names referring to the error dictionary." default:"errs"`
	Format     string   `help:"Output format." enum:"json,yaml" default:"json"`
}

func (c *ExtractCommand) Run(app *App) error {
	dict, err := errscan.LoadDictionary(c.Dictionary)
	if err != nil {
		return err
	}

	scanner := errscan.New(dict,
		errscan.WithQualifiers(c.Qualifier...),
		errscan.WithLogger(app.Logger),
	)

	results, err := scanner.ScanDir(c.Dir)
	if results == nil {
		return err
	}
	if skipped := multierr.Errors(err); len(skipped) > 0 {
		app.Logger.Warn("some files were not analyzed", zap.Int("files", len(skipped)))
	}
	return app.print(results, c.Format)
}
