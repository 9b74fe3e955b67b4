// Package main verifies the provenance block of generated reports.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"demacat/pkg/metadata"
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Usage: verify <report.md> [report2.md ...]")
		os.Exit(1)
	}

	failed := 0

	for _, path := range flag.Args() {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Error reading file: %v\n", err)
		}

		if _, err := metadata.Verify(string(content)); err != nil {
			fmt.Printf("❌ %s: %v\n", path, err)
			failed++
			continue
		}

		meta, _ := metadata.Extract(string(content))
		fmt.Printf("✅ %s: signed by %s at %s\n",
			path, meta.Generator, meta.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	}

	if failed > 0 {
		os.Exit(1)
	}
}
