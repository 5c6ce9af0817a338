package flow

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"neurodiverse/internal/config"
	"neurodiverse/internal/model"
)

func writeFlow(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flow.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefinition(t *testing.T) {
	path := writeFlow(t, `
version: "0.1.0"
metadata:
  name: "test-flow"
  tags: [a, b]
inputs:
  topic:
    type: string
    required: true
  text:
    type: string
    required: false
model:
  provider: "openai"
  name: "gpt-4o"
prompt: |
  Do something with {text}
`)

	def, err := LoadDefinition(path)
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	if def.Name() != "test-flow" {
		t.Errorf("Name() = %q", def.Name())
	}
	if !def.Inputs["topic"].Required || def.Inputs["text"].Required {
		t.Errorf("Inputs = %+v", def.Inputs)
	}
	if def.Model.Name != "gpt-4o" {
		t.Errorf("Model = %+v", def.Model)
	}
	if !strings.Contains(def.Prompt, "{text}") {
		t.Errorf("Prompt = %q", def.Prompt)
	}
}

func TestLoadDefinitionErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "metadata: [unterminated"},
		{"missing name", "prompt: hello"},
		{"missing prompt", "metadata:\n  name: x"},
		{"unknown required input", "metadata:\n  name: x\nprompt: p\ninputs:\n  language:\n    required: true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadDefinition(writeFlow(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadDefinition(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadSetBundledFlows(t *testing.T) {
	dir := filepath.Join("..", "..", "flows")
	set, err := LoadSet(config.FlowPaths{
		Style:    filepath.Join(dir, "emoji_flow.yaml"),
		Summary:  filepath.Join(dir, "summarize_flow.yaml"),
		Story:    filepath.Join(dir, "adhd.yaml"),
		Compound: filepath.Join(dir, "compound_flow.yaml"),
	})
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}

	for name, def := range map[string]*model.FlowDefinition{
		"style":    set.Style,
		"summary":  set.Summary,
		"story":    set.Story,
		"compound": set.Compound,
	} {
		if def == nil || def.Name() == "" {
			t.Errorf("%s flow not loaded", name)
		}
	}

	// the compound flow runs with empty text
	if err := checkPayload(set.Compound, model.FlowPayload{Topic: "Story"}); err != nil {
		t.Errorf("compound flow rejects empty text: %v", err)
	}
	if err := checkPayload(set.Story, model.FlowPayload{Topic: "Story"}); err == nil {
		t.Error("story flow should require text")
	}
}
