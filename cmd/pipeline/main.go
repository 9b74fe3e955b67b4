// Package main runs the full catalog reconciliation pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"demacat/internal/config"
	"demacat/internal/logger"
	"demacat/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional, defaults apply)")
	inputDir := flag.String("input", "", "Input directory with raw catalog JSON files")
	outputDir := flag.String("output", "", "Output directory for pipeline artifacts")
	workers := flag.Int("workers", 0, "Number of concurrent catalog readers")
	flag.Parse()

	cfg := config.Default()

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v\n", err)
		}
		cfg = loaded
	}

	if *inputDir != "" {
		cfg.Pipeline.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.Pipeline.OutputDir = *outputDir
	}
	if *workers > 0 {
		cfg.Pipeline.Workers = *workers
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v\n", err)
	}

	logg := logger.New(cfg.Pipeline.Logging.Level, cfg.Pipeline.Logging.Format, os.Stderr)

	fmt.Printf("📂 Input: %s\n", cfg.Pipeline.InputDir)

	p := pipeline.New(cfg, logg)

	result, err := p.Run(context.Background())
	if err != nil {
		log.Fatalf("Pipeline failed: %v\n", err)
	}

	fmt.Printf("📊 Processed: %d records, %d groups, %d categories\n",
		len(result.Records), len(result.Groups), len(result.ByCategory))

	if n := len(result.Issues.Issues); n > 0 {
		fmt.Printf("⚠️  Found %d consistency issues (%d critical, %d warnings)\n",
			n, result.Issues.Stats.Critical, result.Issues.Stats.Warnings)
	} else {
		fmt.Println("✅ No consistency issues found")
	}

	if err := p.Write(result, cfg.Pipeline.OutputDir); err != nil {
		log.Fatalf("Error writing artifacts: %v\n", err)
	}

	fmt.Printf("✅ Artifacts written to: %s\n", cfg.Pipeline.OutputDir)
}
