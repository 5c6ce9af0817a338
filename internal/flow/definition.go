// Package flow loads generation flow definitions and invokes them on the
// remote flow service.
package flow

import (
	"fmt"
	"os"
	"strings"

	"neurodiverse/internal/config"
	"neurodiverse/internal/model"

	"gopkg.in/yaml.v3"
)

// LoadDefinition reads and validates a YAML flow definition
func LoadDefinition(path string) (*model.FlowDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read flow %s: %w", path, err)
	}

	var def model.FlowDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse flow %s: %w", path, err)
	}
	if err := Validate(&def); err != nil {
		return nil, fmt.Errorf("flow %s: %w", path, err)
	}
	return &def, nil
}

// Validate checks that a definition can be invoked with a topic/text payload
func Validate(def *model.FlowDefinition) error {
	if strings.TrimSpace(def.Metadata.Name) == "" {
		return fmt.Errorf("metadata.name is required")
	}
	if strings.TrimSpace(def.Prompt) == "" {
		return fmt.Errorf("prompt is required")
	}
	for name, in := range def.Inputs {
		if in.Required && name != "topic" && name != "text" {
			return fmt.Errorf("required input %q cannot be supplied", name)
		}
	}
	return nil
}

// checkPayload rejects payloads that leave a required input empty
func checkPayload(def *model.FlowDefinition, payload model.FlowPayload) error {
	values := map[string]string{
		"topic": payload.Topic,
		"text":  payload.Text,
	}
	for name, in := range def.Inputs {
		if in.Required && strings.TrimSpace(values[name]) == "" {
			return fmt.Errorf("flow %s: input %q is required", def.Name(), name)
		}
	}
	return nil
}

// Set holds the four flows used by the service, loaded once at startup
type Set struct {
	Style    *model.FlowDefinition
	Summary  *model.FlowDefinition
	Story    *model.FlowDefinition
	Compound *model.FlowDefinition
}

// LoadSet loads every flow named in the configuration
func LoadSet(paths config.FlowPaths) (*Set, error) {
	var set Set
	targets := []struct {
		path string
		dst  **model.FlowDefinition
	}{
		{paths.Style, &set.Style},
		{paths.Summary, &set.Summary},
		{paths.Story, &set.Story},
		{paths.Compound, &set.Compound},
	}

	for _, t := range targets {
		def, err := LoadDefinition(t.path)
		if err != nil {
			return nil, err
		}
		*t.dst = def
	}
	return &set, nil
}
