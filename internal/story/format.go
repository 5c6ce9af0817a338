package story

import (
	"fmt"
	"strings"

	"neurodiverse/internal/model"
)

// Format renders chapters back into the marker convention read by Parse.
// Chapter and question numbers are written from the records themselves.
func Format(chapters []model.Chapter) string {
	var b strings.Builder

	for i, ch := range chapters {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Chapter %d: %s\n", ch.ChapterNumber, ch.Title)
		if ch.Text != "" {
			b.WriteString(ch.Text)
			b.WriteString("\n")
		}

		for n, q := range ch.Questions {
			fmt.Fprintf(&b, "Q%d: %s\n", n+1, q.Question)
			for _, key := range model.OptionKeys() {
				fmt.Fprintf(&b, "%s) %s\n", key, q.Options[key])
			}
			fmt.Fprintf(&b, "Correct Answer: %s\n", q.CorrectAnswer)
		}
	}

	return b.String()
}
