// Command seed imports a generated story text file into the chapter store,
// running it through the same parser as the story endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"neurodiverse/internal/app"
	"neurodiverse/internal/config"
	"neurodiverse/internal/story"

	"go.uber.org/zap"
)

func main() {
	dryRun := flag.Bool("n", false, "Parse and print chapters without storing them")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [story.txt]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Reads story text from the file or stdin and appends its chapters to the store.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var input io.Reader = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			logger.Fatal("open story file", zap.Error(err))
		}
		defer f.Close()
		input = f
	}

	raw, err := io.ReadAll(input)
	if err != nil {
		logger.Fatal("read story text", zap.Error(err))
	}

	chapters := story.Parse(string(raw))
	if len(chapters) == 0 {
		logger.Fatal("no chapters found in input")
	}

	if *dryRun {
		fmt.Print(story.Format(chapters))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Load()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open stores", zap.Error(err))
	}
	defer a.Close(ctx)

	entries := make([]interface{}, len(chapters))
	for i := range chapters {
		entries[i] = chapters[i]
	}
	if err := a.ChapterRepo.Append(ctx, entries...); err != nil {
		logger.Fatal("store chapters", zap.Error(err))
	}

	var questions int
	for _, ch := range chapters {
		questions += len(ch.Questions)
	}
	fmt.Printf("Imported %d chapters with %d questions into the %s store\n", len(chapters), questions, cfg.StoreBackend)
}
