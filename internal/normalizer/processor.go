// Package normalizer maps the raw catalog records into uniform display items.
package normalizer

import (
	"fmt"

	"berrypedia/internal/models"
)

// Processor validates a catalog and transforms it into display items.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a processor with default options.
func NewProcessor() *Processor {
	return NewProcessorWithOptions(DefaultOptions())
}

// NewProcessorWithOptions creates a processor whose transformer uses opts.
func NewProcessorWithOptions(opts Options) *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(opts),
	}
}

// Process returns the display items in category order, then source order.
func (p *Processor) Process(catalog *models.Catalog) ([]models.Item, error) {
	if err := p.validator.Validate(catalog); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return p.transformer.Transform(catalog), nil
}
