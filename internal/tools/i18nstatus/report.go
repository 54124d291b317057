package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/battle/effects"
	"github.com/louisbranch/creaturebattle/internal/narration"
)

type report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []localeStatus `json:"locales"`
}

type localeStatus struct {
	Locale      string            `json:"locale"`
	SourceKeys  int               `json:"source_keys"`
	Translated  int               `json:"translated"`
	Missing     int               `json:"missing"`
	Extra       int               `json:"extra"`
	Completion  float64           `json:"completion"`
	Namespaces  []namespaceStatus `json:"namespaces"`
	MissingKeys []string          `json:"missing_keys"`
	ExtraKeys   []string          `json:"extra_keys"`
}

type namespaceStatus struct {
	Namespace  string  `json:"namespace"`
	SourceKeys int     `json:"source_keys"`
	Translated int     `json:"translated"`
	Missing    int     `json:"missing"`
	Extra      int     `json:"extra"`
	Completion float64 `json:"completion"`
}

// sourceKeys maps each catalog namespace to the narration formats the code
// emits for it.
func sourceKeys() map[string][]string {
	return map[string][]string{
		"battle":  battle.MessageKeys(),
		"effects": effects.MessageKeys(),
		"cli":     narration.SummaryKeys(),
	}
}

// buildReport compares every translated locale against sources. The base
// locale is skipped: its formats are the source text.
func buildReport(c *narration.Catalog, sources map[string][]string) report {
	namespaces := make([]string, 0, len(sources))
	for ns := range sources {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	var statuses []localeStatus
	for _, locale := range c.Locales() {
		if locale == narration.BaseLocale {
			continue
		}
		status := localeStatus{Locale: locale, MissingKeys: []string{}, ExtraKeys: []string{}}

		union := map[string]struct{}{}
		for _, ns := range namespaces {
			union[ns] = struct{}{}
		}
		for _, ns := range c.Namespaces(locale) {
			union[ns] = struct{}{}
		}
		for _, ns := range sortedSetKeys(union) {
			messages := c.NamespaceMessages(locale, ns)
			missing := missingKeys(sources[ns], messages)
			extra := extraKeys(sources[ns], messages)
			translated := len(sources[ns]) - len(missing)
			status.Namespaces = append(status.Namespaces, namespaceStatus{
				Namespace:  ns,
				SourceKeys: len(sources[ns]),
				Translated: translated,
				Missing:    len(missing),
				Extra:      len(extra),
				Completion: percent(translated, len(sources[ns])),
			})
			status.SourceKeys += len(sources[ns])
			status.Translated += translated
			status.MissingKeys = append(status.MissingKeys, missing...)
			status.ExtraKeys = append(status.ExtraKeys, extra...)
		}
		status.Missing = len(status.MissingKeys)
		status.Extra = len(status.ExtraKeys)
		status.Completion = percent(status.Translated, status.SourceKeys)
		statuses = append(statuses, status)
	}
	return report{BaseLocale: narration.BaseLocale, Locales: statuses}
}

// incomplete reports whether any locale misses a source key.
func (r report) incomplete() bool {
	for _, locale := range r.Locales {
		if locale.Missing > 0 {
			return true
		}
	}
	return false
}

func writeMarkdown(w io.Writer, rep report) error {
	var b strings.Builder
	b.WriteString("# Narration Translation Status\n\n")
	b.WriteString("Base locale: `")
	b.WriteString(rep.BaseLocale)
	b.WriteString("`.\n\n")

	b.WriteString("| Locale | Source Keys | Translated | Missing | Extra | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n", locale.Locale, locale.SourceKeys, locale.Translated, locale.Missing, locale.Extra, locale.Completion)
	}

	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "\n## `%s`\n\n", locale.Locale)
		b.WriteString("| Namespace | Source Keys | Translated | Missing | Extra | Completion |\n")
		b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
		for _, ns := range locale.Namespaces {
			fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n", ns.Namespace, ns.SourceKeys, ns.Translated, ns.Missing, ns.Extra, ns.Completion)
		}
		writeKeyList(&b, "Missing", locale.MissingKeys)
		writeKeyList(&b, "Extra", locale.ExtraKeys)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeKeyList(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, key := range keys {
		fmt.Fprintf(b, "- `%s`\n", key)
	}
}

func missingKeys(source []string, target map[string]string) []string {
	out := make([]string, 0)
	for _, key := range source {
		if _, ok := target[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func extraKeys(source []string, target map[string]string) []string {
	known := make(map[string]struct{}, len(source))
	for _, key := range source {
		known[key] = struct{}{}
	}
	out := make([]string, 0)
	for key := range target {
		if _, ok := known[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func sortedSetKeys(entries map[string]struct{}) []string {
	out := make([]string, 0, len(entries))
	for key := range entries {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
