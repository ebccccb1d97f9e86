package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func decodeYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		// Syntax errors read "yaml: line N: ...".
		var line int
		if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr == nil {
			perr.Line = line
		}
		return nil, perr
	}
	// An empty document decodes to a nil map.
	if config == nil {
		config = map[string]any{}
	}
	return config, nil
}
