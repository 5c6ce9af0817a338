package service

import (
	"context"
	"strings"

	"neurodiverse/internal/cache"
	"neurodiverse/internal/flow"
	"neurodiverse/internal/model"
	"neurodiverse/internal/repository"
	"neurodiverse/internal/story"

	"go.uber.org/zap"
)

// defaultTopic is sent as the topic input of every flow
const defaultTopic = "Story"

// FlowInvoker runs a flow on the remote flow service
type FlowInvoker interface {
	Invoke(ctx context.Context, def *model.FlowDefinition, payload model.FlowPayload) (string, error)
}

// GenerationService runs the generation flows over the stored text
type GenerationService struct {
	flows       *flow.Set
	invoker     FlowInvoker
	cache       cache.FlowCache
	textRepo    repository.TextRepo
	chapterRepo repository.ChapterRepo
	broadcaster Broadcaster
	logger      *zap.Logger
}

// NewGenerationService creates a new generation service
func NewGenerationService(
	flows *flow.Set,
	invoker FlowInvoker,
	flowCache cache.FlowCache,
	textRepo repository.TextRepo,
	chapterRepo repository.ChapterRepo,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		flows:       flows,
		invoker:     invoker,
		cache:       flowCache,
		textRepo:    textRepo,
		chapterRepo: chapterRepo,
		broadcaster: noopBroadcaster{},
		logger:      logger,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *GenerationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Restyle rewrites text with the style flow
func (s *GenerationService) Restyle(ctx context.Context, text string) (string, error) {
	return s.invokeCached(ctx, s.flows.Style, text)
}

// Summarize summarizes the stored text
func (s *GenerationService) Summarize(ctx context.Context) (string, error) {
	text, err := s.textRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}

	summary, err := s.invokeCached(ctx, s.flows.Summary, text)
	if err != nil {
		return "", err
	}

	s.broadcaster.Broadcast(model.EventSummaryReady, map[string]int{"chars": len(summary)})
	return summary, nil
}

// GenerateStory turns the stored text into chapters with quiz questions
// and appends them to the chapter store
func (s *GenerationService) GenerateStory(ctx context.Context) ([]model.Chapter, error) {
	text, err := s.textRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	raw, err := s.invokeCached(ctx, s.flows.Story, text)
	if err != nil {
		return nil, err
	}

	chapters := story.Parse(raw)
	if len(chapters) == 0 {
		s.logger.Warn("story flow output contained no chapters",
			zap.String("flow", s.flows.Story.Name()),
			zap.Int("outputLength", len(raw)))
	}

	entries := make([]interface{}, len(chapters))
	for i := range chapters {
		entries[i] = chapters[i]
	}
	if err := s.chapterRepo.Append(ctx, entries...); err != nil {
		return nil, err
	}

	s.broadcaster.Broadcast(model.EventStoryGenerated, map[string]int{"chapters": len(chapters)})
	return chapters, nil
}

// GenerateCompound runs the compound flow without input text and stores
// its result as a single entry
func (s *GenerationService) GenerateCompound(ctx context.Context) (string, error) {
	result, err := s.invoker.Invoke(ctx, s.flows.Compound, model.FlowPayload{Topic: defaultTopic})
	if err != nil {
		return "", err
	}

	if err := s.chapterRepo.Append(ctx, result); err != nil {
		return "", err
	}

	s.broadcaster.Broadcast(model.EventCompoundSaved, map[string]int{"chars": len(result)})
	return result, nil
}

// Chapters returns every stored story entry
func (s *GenerationService) Chapters(ctx context.Context) ([]byte, error) {
	return s.chapterRepo.Load(ctx)
}

func (s *GenerationService) invokeCached(ctx context.Context, def *model.FlowDefinition, text string) (string, error) {
	if cached, ok, err := s.cache.Get(ctx, def.Name(), text); err != nil {
		s.logger.Warn("flow cache read failed", zap.String("flow", def.Name()), zap.Error(err))
	} else if ok {
		s.logger.Debug("flow cache hit", zap.String("flow", def.Name()))
		return cached, nil
	}

	result, err := s.invoker.Invoke(ctx, def, model.FlowPayload{Topic: defaultTopic, Text: text})
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, def.Name(), text, result); err != nil {
		s.logger.Warn("flow cache write failed", zap.String("flow", def.Name()), zap.Error(err))
	}
	return result, nil
}
