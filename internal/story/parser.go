// Package story turns generated story text into chapter and quiz records.
//
// The generation flow is prompted to emit text of the form
//
//	Chapter 1: Title
//	Body text...
//	Q1: Question stem?
//	a) ...
//	b) ...
//	c) ...
//	d) ...
//	Correct Answer: b
//
// Parse is tolerant: text that does not follow the convention yields fewer
// records, never an error.
package story

import (
	"fmt"
	"regexp"
	"strings"

	"neurodiverse/internal/model"
)

var (
	chapterMarker  = regexp.MustCompile(`Chapter \d+:`)
	chapterTitle   = regexp.MustCompile(`Chapter \d+: (.+)`)
	headingLine    = regexp.MustCompile(`^ .+`)
	questionMarker = regexp.MustCompile(`Q\d+:`)
	questionBlock  = regexp.MustCompile(`(?s)^(.+?)\n\s*a\)\s*(.+?)\s*b\)\s*(.+?)\s*c\)\s*(.+?)\s*d\)\s*(.+?)\s*Correct Answer:\s*(.)`)
)

// Parse splits raw generated text into chapters. Chapters are numbered by
// position, and titles are paired with chapters by position as well, so a
// marker without a heading shifts every following title by one.
func Parse(raw string) []model.Chapter {
	segments := chapterMarker.Split(raw, -1)[1:]

	var titles []string
	for _, m := range chapterTitle.FindAllStringSubmatch(raw, -1) {
		titles = append(titles, m[1])
	}

	chapters := make([]model.Chapter, 0, len(segments))
	for idx, segment := range segments {
		title := fmt.Sprintf("Chapter %d", idx+1)
		if idx < len(titles) {
			title = titles[idx]
		}

		parts := questionMarker.Split(segment, -1)

		// the heading belongs to the title, not the body
		body := parts[0]
		if h := headingLine.FindString(body); h != "" {
			body = body[len(h):]
		}

		chapter := model.Chapter{
			ChapterNumber: idx + 1,
			Title:         title,
			Text:          strings.TrimSpace(body),
			Questions:     []model.Question{},
		}

		for _, block := range parts[1:] {
			if q, ok := parseQuestion(block); ok {
				chapter.Questions = append(chapter.Questions, q)
			}
		}

		chapters = append(chapters, chapter)
	}

	return chapters
}

// parseQuestion matches a single question block. Blocks missing an option or
// the correct answer are rejected.
func parseQuestion(block string) (model.Question, bool) {
	m := questionBlock.FindStringSubmatch(strings.TrimSpace(block))
	if m == nil {
		return model.Question{}, false
	}

	return model.Question{
		Question: strings.TrimSpace(m[1]),
		Options: map[string]string{
			"a": strings.TrimSpace(m[2]),
			"b": strings.TrimSpace(m[3]),
			"c": strings.TrimSpace(m[4]),
			"d": strings.TrimSpace(m[5]),
		},
		CorrectAnswer: strings.TrimSpace(m[6]),
	}, true
}
