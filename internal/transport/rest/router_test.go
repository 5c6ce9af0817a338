package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"neurodiverse/internal/cache"
	"neurodiverse/internal/config"
	"neurodiverse/internal/flow"
	"neurodiverse/internal/model"
	"neurodiverse/internal/repository"
	"neurodiverse/internal/service"
	"neurodiverse/internal/transport/ws"

	"go.uber.org/zap"
)

type stubExtractor struct{ text string }

func (s stubExtractor) Extract(path string) (string, error) { return s.text, nil }

type stubInvoker struct{ results map[string]string }

func (s stubInvoker) Invoke(ctx context.Context, def *model.FlowDefinition, payload model.FlowPayload) (string, error) {
	return s.results[def.Name()], nil
}

type stubRenderer struct{}

func (stubRenderer) RenderFile(path, text string) error {
	return os.WriteFile(path, []byte("%PDF "+text), 0644)
}

type stubSynthesizer struct{}

func (stubSynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	return []byte("ID3 " + lang), nil
}

func newTestRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		UploadDir:          filepath.Join(dir, "uploads"),
		OutputDir:          filepath.Join(dir, "output"),
		TextFile:           filepath.Join(dir, "text.json"),
		ChaptersFile:       filepath.Join(dir, "chapters.json"),
		TTSLang:            "hi",
		CORSAllowedOrigins: "*",
		CORSAllowedMethods: "GET, POST, OPTIONS",
		CORSAllowedHeaders: "Content-Type",
	}
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatal(err)
	}

	logger := zap.NewNop()
	def := func(name string) *model.FlowDefinition {
		return &model.FlowDefinition{Metadata: model.FlowMetadata{Name: name}, Prompt: "{text}"}
	}
	flows := &flow.Set{Style: def("style"), Summary: def("summary"), Story: def("story"), Compound: def("compound")}
	invoker := stubInvoker{results: map[string]string{
		"style":    "styled text",
		"summary":  "a summary",
		"story":    "Chapter 1: Start\nOnce.\nQ1: When?\na) Once\nb) Twice\nc) Never\nd) Always\nCorrect Answer: a",
		"compound": "H2O",
	}}

	textRepo := repository.NewFileTextRepo(cfg.TextFile)
	chapterRepo := repository.NewFileChapterRepo(cfg.ChaptersFile)
	hub := ws.NewHub(logger)
	t.Cleanup(hub.Close)

	gen := service.NewGenerationService(flows, invoker, cache.NewNoopFlowCache(), textRepo, chapterRepo, logger)
	c := &Container{
		Config:            cfg,
		DocumentService:   service.NewDocumentService(cfg.UploadDir, stubExtractor{text: "The extracted text."}, textRepo, logger),
		GenerationService: gen,
		OutputService:     service.NewOutputService(cfg.OutputDir, cfg.TTSLang, textRepo, gen, stubRenderer{}, stubSynthesizer{}, logger),
		WSHub:             hub,
		Logger:            logger,
	}
	return NewRouter(c), cfg
}

func TestHealthAndRequestID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != `{"status":"ok"}` {
		t.Fatalf("health = %d %s", rec.Code, rec.Body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/generate-story", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestFilesServesOutputDir(t *testing.T) {
	router, cfg := newTestRouter(t)
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, "output.mp3"), []byte("mp3"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/output.mp3", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "mp3" {
		t.Errorf("files = %d %q", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/missing.pdf", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing file status = %d", rec.Code)
	}
}

func TestUploadThenGenerate(t *testing.T) {
	router, cfg := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "lesson.pdf")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("%PDF-1.4"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload = %d %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate-story", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("generate-story = %d %s", rec.Code, rec.Body)
	}
	var story model.StoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &story); err != nil {
		t.Fatal(err)
	}
	if len(story.Story) != 1 || story.Story[0].Questions[0].CorrectAnswer != "a" {
		t.Errorf("story = %+v", story.Story)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/process1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("process1 = %d %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get-story", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get-story = %d %s", rec.Code, rec.Body)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || string(entries[1]) != `"H2O"` {
		t.Errorf("entries = %s", rec.Body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate-pdf", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "%PDF styled text" {
		t.Errorf("generate-pdf = %d %q", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/text_to_speech?file_name=lesson.pdf", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ID3 hi" {
		t.Errorf("text_to_speech = %d %q", rec.Code, rec.Body)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "output.mp3")); err != nil {
		t.Errorf("narration not written: %v", err)
	}
}

func TestGetStoryBeforeAnyGeneration(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get-story", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
