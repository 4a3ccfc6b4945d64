package loader

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pagesync/pkg/dataset"
)

// decode parses a payload as a top-level sequence. YAML sources are
// normalised into the same raw JSON records the renderers consume.
func decode(src dataset.Source, data []byte) (dataset.Document, error) {
	if !isYAML(src.Location()) {
		return dataset.FromJSON(src, data)
	}

	var items []any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return dataset.Document{}, err
	}

	records := make([]json.RawMessage, 0, len(items))
	for i, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return dataset.Document{}, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, raw)
	}
	return dataset.NewDocument(src, records)
}

func isYAML(location string) bool {
	if idx := strings.IndexAny(location, "?#"); idx >= 0 {
		location = location[:idx]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
