// Package speech converts text to MP3 narration through the Google Translate
// text-to-speech endpoint.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxChunkRunes is the longest text the endpoint accepts per request
	MaxChunkRunes = 100

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// ErrEmptyText is returned when there is nothing to narrate
var ErrEmptyText = errors.New("no text to synthesize")

// Synthesizer fetches narration chunk by chunk and joins the MP3 streams
type Synthesizer struct {
	baseURL     string
	client      *http.Client
	concurrency int
	logger      *zap.Logger
}

// NewSynthesizer creates a new synthesizer for the given endpoint
func NewSynthesizer(baseURL string, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		concurrency: 4,
		logger:      logger,
	}
}

// Synthesize returns MP3 audio of text spoken in lang
func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := Chunk(text, MaxChunkRunes)
	if len(chunks) == 0 {
		return nil, ErrEmptyText
	}

	start := time.Now()
	parts := make([][]byte, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			data, err := s.fetch(gctx, chunk, lang, i, len(chunks))
			if err != nil {
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}
			parts[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var size int
	for _, p := range parts {
		size += len(p)
	}
	audio := make([]byte, 0, size)
	for _, p := range parts {
		audio = append(audio, p...)
	}

	s.logger.Info("synthesized speech",
		zap.String("lang", lang),
		zap.Int("chunks", len(chunks)),
		zap.Int("bytes", len(audio)),
		zap.Duration("elapsed", time.Since(start)))

	return audio, nil
}

func (s *Synthesizer) fetch(ctx context.Context, chunk, lang string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", chunk)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech endpoint returned status %d", resp.StatusCode)
	}
	return body, nil
}

// Chunk splits text into pieces of at most max runes, breaking between words.
// Whitespace runs collapse to single spaces; words longer than max are cut.
func Chunk(text string, max int) []string {
	if max < 1 {
		max = 1
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)

		if n > max {
			flush()
			runes := []rune(word)
			for len(runes) > max {
				chunks = append(chunks, string(runes[:max]))
				runes = runes[max:]
			}
			cur.WriteString(string(runes))
			curLen = len(runes)
			continue
		}

		if curLen > 0 && curLen+1+n > max {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += n
	}
	flush()

	return chunks
}
