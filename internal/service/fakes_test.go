package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"neurodiverse/internal/cache"
	"neurodiverse/internal/flow"
	"neurodiverse/internal/model"
	"neurodiverse/internal/repository"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) Extract(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return f.text, f.err
}

type fakeInvoker struct {
	mu       sync.Mutex
	results  map[string]string
	err      error
	calls    []string
	payloads []model.FlowPayload
}

func (f *fakeInvoker) Invoke(ctx context.Context, def *model.FlowDefinition, payload model.FlowPayload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, def.Name())
	f.payloads = append(f.payloads, payload)
	if f.err != nil {
		return "", f.err
	}
	return f.results[def.Name()], nil
}

type recordedEvent struct {
	event   model.EventType
	payload interface{}
}

type fakeBroadcaster struct {
	events []recordedEvent
}

func (f *fakeBroadcaster) Broadcast(event model.EventType, payload interface{}) {
	f.events = append(f.events, recordedEvent{event, payload})
}

type fakeRenderer struct {
	text string
	err  error
}

func (f *fakeRenderer) RenderFile(path, text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return os.WriteFile(path, []byte("%PDF-fake"), 0644)
}

type fakeSynthesizer struct {
	audio []byte
	err   error
	lang  string
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	f.lang = lang
	return f.audio, f.err
}

type memoryCache struct {
	entries map[string]string
}

func (c *memoryCache) Get(ctx context.Context, flowName, text string) (string, bool, error) {
	v, ok := c.entries[cache.Key(flowName, text)]
	return v, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, flowName, text, result string) error {
	c.entries[cache.Key(flowName, text)] = result
	return nil
}

func testFlows() *flow.Set {
	def := func(name string) *model.FlowDefinition {
		return &model.FlowDefinition{
			Version:  "0.1.0",
			Metadata: model.FlowMetadata{Name: name},
			Prompt:   "{text}",
		}
	}
	return &flow.Set{
		Style:    def("style"),
		Summary:  def("summary"),
		Story:    def("story"),
		Compound: def("compound"),
	}
}

type testStores struct {
	dir      string
	text     repository.TextRepo
	chapters repository.ChapterRepo
}

func newTestStores(t *testing.T) testStores {
	t.Helper()
	dir := t.TempDir()
	return testStores{
		dir:      dir,
		text:     repository.NewFileTextRepo(filepath.Join(dir, "text.json")),
		chapters: repository.NewFileChapterRepo(filepath.Join(dir, "chapters.json")),
	}
}

var errBoom = errors.New("boom")
