package main

import (
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

type Command struct {
	Verbose     bool               `help:"Enable verbose output." short:"v"`
	Extract     ExtractCommand     `cmd:"extract" help:"Extract error outcomes from handler sources."`
	Check       CheckCommand       `cmd:"check" help:"Validate a generated Swagger 2.0 document."`
	Definitions DefinitionsCommand `cmd:"definitions" help:"List definitions kept in the documentation store."`
}

func main() {
	command := new(Command)
	ctx := kong.Parse(
		command,
		kong.Name("swaggen"),
		kong.Description("Swagger documentation generator tools"),
	)

	logger, err := newLogger(command.Verbose)
	ctx.FatalIfErrorf(err)
	defer func() { _ = logger.Sync() }()

	err = ctx.Run(&App{Logger: logger, Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
