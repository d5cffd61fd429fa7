// Package export writes the result history in portable formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/kanadrill/internal/model"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is the exported payload.
type Document struct {
	ExportedAt time.Time            `json:"exportedAt" yaml:"exported_at"`
	Overall    model.Overall        `json:"overall" yaml:"overall"`
	Results    []model.ResultRecord `json:"results" yaml:"results"`
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unsupported export format %q: use json or yaml", name)
	}
}

// Write encodes doc to w.
func Write(w io.Writer, format Format, doc Document) error {
	if doc.Results == nil {
		doc.Results = []model.ResultRecord{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
