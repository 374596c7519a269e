package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/captcha"
	"github.com/gogpu/captcha/config"
	"github.com/gogpu/captcha/dataset"
)

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "", "run configuration YAML (required)")
	parts := fs.String("parts", "", "comma-separated tiers to generate (default: all configured)")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	enableLogging(*verbose)

	if *configPath == "" {
		return fmt.Errorf("generate: -config is required")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	names := cfg.PartNames()
	if *parts != "" {
		names = strings.Split(*parts, ",")
	}

	// Ctrl-C stops issuing new samples and aborts between parts.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var index *dataset.Index
	if cfg.SQLiteIndex {
		index, err = dataset.OpenIndex(filepath.Join(cfg.OutputDir, "labels.db"))
		if err != nil {
			return err
		}
		defer index.Close()
	}

	for _, name := range names {
		part, ok := cfg.Parts[name]
		if !ok {
			return fmt.Errorf("generate: part %q is not configured in %s", name, *configPath)
		}
		if err := generatePart(ctx, cfg, name, part, index); err != nil {
			return err
		}
	}
	return nil
}

func generatePart(ctx context.Context, cfg *config.Config, name string, part config.Part, index *dataset.Index) error {
	opts := part.Options()
	if len(part.Fonts) == 0 {
		if found := config.DiscoverFonts(); len(found) > 0 {
			opts = append(opts, captcha.WithFonts(found...))
		}
	}

	gen, err := captcha.New(part.Width, part.Height, captcha.Tier(name), opts...)
	if err != nil {
		return fmt.Errorf("generate: %s: %w", name, err)
	}

	seed := time.Now().UnixNano()
	if part.Seed != nil {
		seed = *part.Seed
	}

	w, err := dataset.NewWriter(cfg.OutputDir, gen.Tier())
	if err != nil {
		return err
	}

	log.Printf("Generating %s...", name)
	res, err := dataset.Run(ctx, gen, w, dataset.Job{
		Count:   part.NumSamples,
		Seed:    seed,
		Workers: part.Workers,
	})
	if err != nil {
		return fmt.Errorf("generate: %s: %w", name, err)
	}

	if index != nil {
		if err := index.InsertBatch(ctx, res.Records); err != nil {
			return err
		}
	}

	log.Printf("  Completed %s: %d images generated (%d failed)", name, len(res.Records), res.Failed)
	log.Printf("  Images saved to: %s", w.ImagesDir())
	log.Printf("  Labels saved to: %s", w.ManifestPath())
	return nil
}
