// Package main reports how completely each locale translates battle
// narration.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/louisbranch/creaturebattle/internal/narration"
	"github.com/louisbranch/creaturebattle/internal/platform/config"
)

func main() {
	var markdownOut string
	var jsonOut string
	var strict bool

	flag.StringVar(&markdownOut, "out", "", "markdown output path (stdout when empty)")
	flag.StringVar(&jsonOut, "json-out", "", "json output path (skipped when empty)")
	flag.BoolVar(&strict, "strict", false, "exit non-zero when a locale misses a narration key")
	flag.Parse()

	catalog, err := narration.DefaultCatalog()
	if err != nil {
		config.Exitf("load narration catalog: %v", err)
	}
	rep := buildReport(catalog, sourceKeys())

	if jsonOut != "" {
		if err := writeJSON(jsonOut, rep); err != nil {
			config.Exitf("write json report: %v", err)
		}
	}
	if err := writeMarkdownTo(markdownOut, rep); err != nil {
		config.Exitf("write markdown report: %v", err)
	}
	if strict && rep.incomplete() {
		config.Exitf("narration translations are incomplete")
	}
}

func writeJSON(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeMarkdownTo(path string, rep report) error {
	var out io.Writer = os.Stdout
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}
	return writeMarkdown(out, rep)
}
