package generator

import (
	"errors"
	"fmt"

	"github.com/pb33f/libopenapi"
)

// ErrInvalidDocument is returned by Validate for documents that are not
// usable Swagger 2.0.
var ErrInvalidDocument = errors.New("invalid swagger document")

// Report summarizes a validated document.
type Report struct {
	Version string
	Paths   int
}

// Validate parses data, JSON or YAML, as a Swagger 2.0 document and builds
// its model.
func Validate(data []byte) (*Report, error) {
	doc, err := libopenapi.NewDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if version := doc.GetVersion(); version != "2.0" {
		return nil, fmt.Errorf("%w: version %q", ErrInvalidDocument, version)
	}

	model, err := doc.BuildV2Model()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	report := &Report{Version: doc.GetVersion()}
	if model.Model.Paths != nil && model.Model.Paths.PathItems != nil {
		report.Paths = model.Model.Paths.PathItems.Len()
	}

	return report, nil
}
