package main

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/louisbranch/creaturebattle/internal/narration"
)

func TestBuildReportDefaultCatalogIsComplete(t *testing.T) {
	catalog, err := narration.DefaultCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	rep := buildReport(catalog, sourceKeys())
	if len(rep.Locales) != 1 || rep.Locales[0].Locale != "pt-BR" {
		t.Fatalf("locales = %+v, want pt-BR only", rep.Locales)
	}
	if rep.incomplete() {
		t.Fatalf("pt-BR is missing %q", rep.Locales[0].MissingKeys)
	}
	if got := rep.Locales[0].Completion; got != 100 {
		t.Fatalf("completion = %v, want 100", got)
	}
}

func TestBuildReportCountsMissingAndExtra(t *testing.T) {
	catalog, err := narration.NewCatalog(fstest.MapFS{
		"locales/en-US/cli.yaml": {Data: []byte("locale: en-US\nnamespace: cli\nmessages:\n  \"a\": \"a\"\n")},
		"locales/pt-BR/cli.yaml": {Data: []byte("locale: pt-BR\nnamespace: cli\nmessages:\n  \"a\": \"x\"\n  \"z\": \"y\"\n")},
	})
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	rep := buildReport(catalog, map[string][]string{
		"cli":    {"a", "b"},
		"battle": {"c"},
	})
	if !rep.incomplete() {
		t.Fatal("expected incomplete report")
	}
	got := rep.Locales[0]
	if got.SourceKeys != 3 || got.Translated != 1 || got.Missing != 2 || got.Extra != 1 {
		t.Fatalf("status = %+v, want 3 source, 1 translated, 2 missing, 1 extra", got)
	}
	if got.Completion != 33.3 {
		t.Fatalf("completion = %v, want 33.3", got.Completion)
	}
	if len(got.Namespaces) != 2 || got.Namespaces[0].Namespace != "battle" {
		t.Fatalf("namespaces = %+v, want battle then cli", got.Namespaces)
	}

	var out bytes.Buffer
	if err := writeMarkdown(&out, rep); err != nil {
		t.Fatalf("write markdown: %v", err)
	}
	for _, want := range []string{"| `pt-BR` | 3 | 1 | 2 | 1 | 33.3% |", "### Missing", "- `b`", "### Extra", "- `z`"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("markdown missing %q:\n%s", want, out.String())
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		num, den int
		want     float64
	}{
		{num: 0, den: 0, want: 100},
		{num: 1, den: 3, want: 33.3},
		{num: 2, den: 3, want: 66.7},
		{num: 4, den: 4, want: 100},
	}
	for _, tt := range tests {
		if got := percent(tt.num, tt.den); got != tt.want {
			t.Fatalf("percent(%d, %d) = %v, want %v", tt.num, tt.den, got, tt.want)
		}
	}
}
