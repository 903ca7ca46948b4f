package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/structify/outliner/internal/decoder"
	"github.com/structify/outliner/internal/outline"
	"github.com/structify/outliner/internal/store"
)

func main() {
	var (
		inDir       = flag.String("in", "input", "directory of documents to process")
		outDir      = flag.String("out", "output", "directory for outline JSON files")
		workers     = flag.Int("workers", 4, "number of concurrent workers")
		tolerance   = flag.Float64("tolerance", 0.5, "font size tolerance in points")
		repeatLimit = flag.Int("repeat-limit", 3, "pages a line may repeat on before it is treated as a running header")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	results, err := store.New(*outDir)
	if err != nil {
		log.Error("failed to open output dir", "error", err)
		os.Exit(1)
	}

	cfg := outline.DefaultConfig()
	cfg.SizeTolerance = *tolerance
	cfg.RepeatPageLimit = *repeatLimit
	extractor := outline.New(cfg)

	entries, err := os.ReadDir(*inDir)
	if err != nil {
		log.Error("failed to read input dir", "dir", *inDir, "error", err)
		os.Exit(1)
	}

	var names []string
	for _, ent := range entries {
		if ent.IsDir() || !decoder.IsSupportedExtension(ent.Name()) {
			continue
		}
		names = append(names, ent.Name())
	}
	if len(names) == 0 {
		log.Info("no supported documents found", "dir", *inDir)
		return
	}

	if *workers < 1 {
		*workers = 1
	}
	sem := make(chan struct{}, *workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	processed, failed := 0, 0

	for _, name := range names {
		sem <- struct{}{}
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			defer func() { <-sem }()

			err := processFile(filepath.Join(*inDir, name), name, extractor, results)
			mu.Lock()
			if err != nil {
				failed++
				log.Error("processing failed", "file", name, "error", err)
			} else {
				processed++
				log.Info("processed", "file", name)
			}
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	log.Info("batch complete", "processed", processed, "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func processFile(path, name string, extractor *outline.Extractor, results *store.Store) error {
	d, err := decoder.ForFile(name)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	frags, err := d.Decode(f, name)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	res, err := extractor.Extract(frags)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	id := strings.TrimSuffix(name, filepath.Ext(name))
	if res.Title == "" {
		res.Title = id
	}
	if err := results.Save(id, res); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
