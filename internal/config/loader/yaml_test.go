package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeYAML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
csv:
  delimiter: "\t"
  comment: ""
theme:
  value_bg: ["#002B36", "#72A0C1"]
`)

	config, err := newFile(t, memfs, FormatYAML).Load("/config.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	csv := config["csv"].(map[string]any)
	if csv["delimiter"] != "\t" {
		t.Errorf("delimiter = %q, want tab", csv["delimiter"])
	}
	if csv["comment"] != "" {
		t.Errorf("comment = %q, want empty", csv["comment"])
	}

	theme := config["theme"].(map[string]any)
	bg, ok := theme["value_bg"].([]any)
	if !ok || len(bg) != 2 {
		t.Errorf("value_bg = %v, want two colors", theme["value_bg"])
	}
}

func TestDecodeYAML_Empty(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yml", "")

	config, err := newFile(t, memfs, FormatYAML).Load("/empty.yml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("expected empty map, got %v", config)
	}
}

func TestDecodeYAML_Missing(t *testing.T) {
	config, err := newFile(t, NewMemFS(), FormatYAML).Load("/none.yaml")
	if err != nil || config != nil {
		t.Errorf("expected nil, nil for missing file, got %v, %v", config, err)
	}
}

func TestDecodeYAML_Invalid(t *testing.T) {
	_, err := newFile(t, NewMemFS(), FormatYAML).LoadFromReader(strings.NewReader("csv:\n  trim: [unclosed"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Path != "<reader>" {
		t.Errorf("Path = %q, want <reader>", perr.Path)
	}
	if perr.Line == 0 {
		t.Error("expected a line number in the parse error")
	}
}

func TestDecodeYAML_Includes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/etc/csvscope/config.yml", "\"@include\": colors.yml\nlayout:\n  row_height: 1\n")
	memfs.AddFile("/etc/csvscope/colors.yml", "theme:\n  background: \"#101010\"\nlayout:\n  row_height: 4\n")

	config, err := newFile(t, memfs, FormatYAML).Load("/etc/csvscope/config.yml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := config["layout"].(map[string]any)["row_height"]; got != 1 {
		t.Errorf("row_height = %v, want 1 from the including file", got)
	}
	if got := config["theme"].(map[string]any)["background"]; got != "#101010" {
		t.Errorf("background = %v, want #101010 from the include", got)
	}
}
