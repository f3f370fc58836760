package formats

import (
	"io"
	"strings"
	"testing"

	"github.com/arthur-debert/ttcg/types"
)

func noopRender(w io.Writer, cards []types.Card) error { return nil }

func TestRegister(t *testing.T) {
	originalRegistry := registry
	defer func() { registry = originalRegistry }()
	registry = make(map[string]*CardFormat)

	tests := []struct {
		name      string
		format    *CardFormat
		wantError bool
		errorMsg  string
	}{
		{
			name:   "valid format",
			format: &CardFormat{Name: "test-format", Extension: ".test", Render: noopRender},
		},
		{
			name:      "invalid name with uppercase",
			format:    &CardFormat{Name: "TestFormat", Extension: ".test", Render: noopRender},
			wantError: true,
			errorMsg:  "invalid format name",
		},
		{
			name:      "invalid name with special chars",
			format:    &CardFormat{Name: "test@format", Extension: ".test", Render: noopRender},
			wantError: true,
			errorMsg:  "invalid format name",
		},
		{
			name:      "empty name",
			format:    &CardFormat{Name: "", Extension: ".test", Render: noopRender},
			wantError: true,
			errorMsg:  "invalid format name",
		},
		{
			name:      "missing renderer",
			format:    &CardFormat{Name: "no-render", Extension: ".test"},
			wantError: true,
			errorMsg:  "no renderer",
		},
		{
			name:   "extension without dot",
			format: &CardFormat{Name: "test-format-2", Extension: "test", Render: noopRender},
		},
		{
			name:      "duplicate",
			format:    &CardFormat{Name: "test-format", Extension: ".test", Render: noopRender},
			wantError: true,
			errorMsg:  "already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Register(tt.format)

			if tt.wantError {
				if err == nil {
					t.Errorf("expected error but got none")
				} else if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(tt.format.Extension, ".") {
				t.Errorf("extension not normalized: %q", tt.format.Extension)
			}
		})
	}
}

func TestGetAndList(t *testing.T) {
	got := strings.Join(List(), ",")
	if got != "csv,markdown,plaintext" {
		t.Errorf("List() = %q", got)
	}

	format, err := Get("markdown")
	if err != nil {
		t.Fatalf("Get(markdown): %v", err)
	}
	if format.Extension != ".md" {
		t.Errorf("markdown extension = %q", format.Extension)
	}

	_, err = Get("pdf")
	if err == nil || !strings.Contains(err.Error(), "available: csv, markdown, plaintext") {
		t.Errorf("expected unknown format error listing formats, got %v", err)
	}
}
