package main

import (
	"fmt"
	"os"

	"github.com/vitalvas/swaggen/generator"
)

type CheckCommand struct {
	File string `arg:"" help:"Swagger document, JSON or YAML." type:"existingfile"`
}

func (c *CheckCommand) Run(app *App) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	report, err := generator.Validate(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(app.Out, "%s: swagger %s, %d paths\n", c.File, report.Version, report.Paths)

	return err
}
