// Package main extracts product records from raw catalog text.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"demacat/internal/extractor"
	"demacat/internal/logger"
	"demacat/internal/models"
)

func main() {
	inputPath := flag.String("input", "", "Path to extracted catalog text file")
	outputPath := flag.String("output", "", "Path to output JSON file")
	catalog := flag.String("catalog", "", "Catalog identifier (defaults to input filename)")
	pages := flag.Int("pages", 0, "Page count of the source document")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		fmt.Println("Usage: extract -input <catalog.txt> -output <records.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	content, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Error reading file: %v\n", err)
	}

	fmt.Printf("📂 Reading: %s (%d bytes)\n", *inputPath, len(content))

	name := *catalog
	if name == "" {
		base := filepath.Base(*inputPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	ext := extractor.New(logger.NewLogger(*logLevel))

	records, err := ext.Extract(extractor.Input{
		Text:      string(content),
		Catalog:   name,
		SourceDoc: filepath.Base(*inputPath),
		PageCount: *pages,
	})
	if err != nil {
		log.Fatalf("Error extracting records: %v\n", err)
	}

	fmt.Printf("📊 Extracted: %d records from catalog %s\n", len(records), name)

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0755); err != nil {
		log.Fatalf("Error creating directory: %v\n", err)
	}

	// Flat interchange form, so the pipeline can read this file back in.
	rows := make([]models.Fields, len(records))
	for i := range records {
		rows[i] = records[i].Flatten()
	}

	jsonData, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling JSON: %v\n", err)
	}

	if err := os.WriteFile(*outputPath, jsonData, 0644); err != nil {
		log.Fatalf("Error writing file: %v\n", err)
	}

	fmt.Printf("✅ Saved to: %s\n", *outputPath)
}
