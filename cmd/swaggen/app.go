package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// App is shared by all subcommands.
type App struct {
	Logger *zap.Logger
	Out    io.Writer
}

// print writes v to the output as indented JSON or YAML.
func (a *App) print(v any, format string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "yaml":
		data, err = yaml.Marshal(v)
	default:
		data, err = json.MarshalIndent(v, "", "    ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	_, err = a.Out.Write(data)

	return err
}
