package config

import "strings"

// FlowPaths locates the YAML definition of each flow
type FlowPaths struct {
	// Style rewrites text with emphasis and emoji for easier reading
	Style string `json:"style"`

	// Summary condenses the extracted text
	Summary string `json:"summary"`

	// Story turns the text into chapters with quiz questions
	Story string `json:"story"`

	// Compound runs without input text
	Compound string `json:"compound"`
}

// FlowConfig holds all flow-service configuration
type FlowConfig struct {
	APIKey     string    `json:"-"` // Never serialize
	BaseURL    string    `json:"baseUrl"`
	Paths      FlowPaths `json:"paths"`
	TimeoutMS  int       `json:"timeoutMs"`
	RatePerSec float64   `json:"ratePerSec"`
	Burst      int       `json:"burst"`
}

// DefaultFlowConfig returns the flow configuration from the environment
func DefaultFlowConfig() *FlowConfig {
	return &FlowConfig{
		APIKey:  getEnvOrDefault("API_KEY", ""),
		BaseURL: strings.TrimSuffix(getEnvOrDefault("FLOW_BASE_URL", "https://apis.mira.network"), "/"),
		Paths: FlowPaths{
			Style:    getEnvOrDefault("FLOW_STYLE_PATH", "flows/emoji_flow.yaml"),
			Summary:  getEnvOrDefault("FLOW_SUMMARY_PATH", "flows/summarize_flow.yaml"),
			Story:    getEnvOrDefault("FLOW_STORY_PATH", "flows/adhd.yaml"),
			Compound: getEnvOrDefault("FLOW_COMPOUND_PATH", "flows/compound_flow.yaml"),
		},
		TimeoutMS:  getIntOrDefault("FLOW_TIMEOUT_MS", 120000), // generation over a whole document is slow
		RatePerSec: getFloatOrDefault("FLOW_RATE_PER_SEC", 2),
		Burst:      getIntOrDefault("FLOW_BURST", 2),
	}
}

// IsEnabled returns true if the flow API is configured
func (c *FlowConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Endpoint returns the flow test endpoint
func (c *FlowConfig) Endpoint() string {
	return c.BaseURL + "/v1/flows/test"
}
