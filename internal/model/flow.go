package model

// FlowMetadata describes a flow definition
type FlowMetadata struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Author      string   `yaml:"author" json:"author,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
	Private     bool     `yaml:"private" json:"private"`
}

// FlowInput declares one input variable accepted by a flow
type FlowInput struct {
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"description,omitempty"`
	Required    bool   `yaml:"required" json:"required"`
	Example     string `yaml:"example" json:"example,omitempty"`
}

// FlowModel selects the model a flow runs on
type FlowModel struct {
	Provider string `yaml:"provider" json:"provider"`
	Name     string `yaml:"name" json:"name"`
}

// FlowDefinition is a declaratively defined generation pipeline, loaded from YAML
type FlowDefinition struct {
	Version  string               `yaml:"version" json:"version"`
	Metadata FlowMetadata         `yaml:"metadata" json:"metadata"`
	Inputs   map[string]FlowInput `yaml:"inputs" json:"inputs"`
	Model    FlowModel            `yaml:"model" json:"model"`
	Prompt   string               `yaml:"prompt" json:"prompt"`
	Readme   string               `yaml:"readme" json:"readme,omitempty"`
}

// Name returns the flow's metadata name
func (d *FlowDefinition) Name() string {
	return d.Metadata.Name
}

// FlowPayload is the input sent with every flow invocation
type FlowPayload struct {
	Topic string `json:"topic"`
	Text  string `json:"text"`
}

// FlowResult is the response returned by the flow service. A missing
// result decodes to nil.
type FlowResult struct {
	Result *string `json:"result"`
}
