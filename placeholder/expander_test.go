package placeholder

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func mapExpander(files map[string]string) *Expander {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name+FileExtension] = &fstest.MapFile{Data: []byte(content)}
	}
	return New("", WithFS(fsys))
}

func TestResolve(t *testing.T) {
	e := mapExpander(map[string]string{
		"rank":       "1\n2\n3\n",
		"color":      "  red \n\n_blue_\n",
		"blank":      "\n   \n___\n",
		"creature":   "<color> dragon\nbeast\n",
		"duplicates": "a\na\nb\n",
	})

	tests := []struct {
		name     string
		expected []string
	}{
		{"rank", []string{"1", "2", "3"}},
		{"color", []string{"red", "blue"}},
		{"missing", []string{"<missing>"}},
		{"blank", []string{"<blank>"}},
		{"creature", []string{"red dragon", "blue dragon", "beast"}},
		{"duplicates", []string{"a", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Resolve(tt.name, nil)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestResolveCycle(t *testing.T) {
	e := mapExpander(map[string]string{
		"a": "x <b>\n",
		"b": "y <a>\nz\n",
		"self": "<self> again\nplain\n",
	})

	if diff := cmp.Diff([]string{"x y <a>", "x z"}, e.Resolve("a", nil)); diff != "" {
		t.Errorf("Resolve(a) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"<self> again", "plain"}, e.Resolve("self", nil)); diff != "" {
		t.Errorf("Resolve(self) mismatch (-want +got):\n%s", diff)
	}

	// a name already on the path resolves to its literal token
	if diff := cmp.Diff([]string{"<a>"}, e.Resolve("a", (*Visited)(nil).With("a"))); diff != "" {
		t.Errorf("Resolve(a) on path mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveDoesNotLeakVisited(t *testing.T) {
	e := mapExpander(map[string]string{
		"pair":  "<inner> and <inner>\n",
		"inner": "<leaf>\n",
		"leaf":  "v\n",
	})

	// both occurrences share one token, resolved once; the second top-level
	// call must not see names from the first
	for i := 0; i < 2; i++ {
		if diff := cmp.Diff([]string{"v and v"}, e.Resolve("pair", nil)); diff != "" {
			t.Errorf("call %d mismatch (-want +got):\n%s", i+1, diff)
		}
	}
}

func TestExpand(t *testing.T) {
	e := mapExpander(map[string]string{
		"rank":  "1\n2\n3\n",
		"color": "red\nblue\n",
		"word":  "one\n7\n",
	})

	tests := []struct {
		name     string
		sentence string
		expected []string
	}{
		{
			name:     "no placeholders",
			sentence: "Draw a card.",
			expected: []string{"Draw a card."},
		},
		{
			name:     "single token",
			sentence: "Rank <rank>",
			expected: []string{"Rank 1", "Rank 2", "Rank 3"},
		},
		{
			name:     "positive offset",
			sentence: "Rank <rank+1>",
			expected: []string{"Rank 2", "Rank 3", "Rank 4"},
		},
		{
			name:     "negative offset",
			sentence: "Rank <rank-1>",
			expected: []string{"Rank 0", "Rank 1", "Rank 2"},
		},
		{
			name:     "offset leaves non-numeric values",
			sentence: "<word+2>",
			expected: []string{"one", "9"},
		},
		{
			name:     "two tokens",
			sentence: "<rank> <color>",
			expected: []string{"1 red", "1 blue", "2 red", "2 blue", "3 red", "3 blue"},
		},
		{
			name:     "repeated token substitutes every occurrence",
			sentence: "<color> or <color>",
			expected: []string{"red or red", "blue or blue"},
		},
		{
			name:     "same base different offsets",
			sentence: "<rank> to <rank+1>",
			expected: []string{
				"1 to 2", "1 to 3", "1 to 4",
				"2 to 2", "2 to 3", "2 to 4",
				"3 to 2", "3 to 3", "3 to 4",
			},
		},
		{
			name:     "unresolved token stays visible",
			sentence: "Summon <missing> with <color>",
			expected: []string{"Summon <missing> with red", "Summon <missing> with blue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Expand(tt.sentence, nil)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Expand(%q) mismatch (-want +got):\n%s", tt.sentence, diff)
			}
		})
	}
}

// Malformed bracket text is skipped on purpose rather than reported: it stays
// in the sentence and does not multiply the output.
func TestExpandSkipsMalformedTokens(t *testing.T) {
	e := mapExpander(map[string]string{"color": "red\nblue\n"})

	got := e.Expand("<two words> <color> <+1> <color*2>", nil)
	want := []string{
		"<two words> red <+1> <color*2>",
		"<two words> blue <+1> <color*2>",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Expand mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"<not a token>"}, e.Expand("<not a token>", nil)); diff != "" {
		t.Errorf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandSubstitutedTextIsNotRescanned(t *testing.T) {
	e := mapExpander(map[string]string{
		"a": "<b>\n",
		"b": "<a>\n",
		"c": "x\n",
	})

	// a resolves to the cycle sentinel "<a>", which must not be substituted
	// again by the second token
	if diff := cmp.Diff([]string{"<a> <b>"}, e.Expand("<a> <b>", nil)); diff != "" {
		t.Errorf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandFromDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rank.txt"), []byte("1\n2\n3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"resolve", Resolve(dir, "rank"), []string{"1", "2", "3"}},
		{"expand", Expand(dir, "Rank <rank>"), []string{"Rank 1", "Rank 2", "Rank 3"}},
		{"missing", Resolve(dir, "missing"), []string{"<missing>"}},
		{"outside the directory", New(dir).Resolve("../rank", nil), []string{"<../rank>"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestExpandAll(t *testing.T) {
	e := mapExpander(map[string]string{"color": "red\nblue\n"})

	got := e.ExpandAll([]string{"<color> card", "plain"})
	if diff := cmp.Diff([]string{"red card", "blue card", "plain"}, got); diff != "" {
		t.Errorf("ExpandAll mismatch (-want +got):\n%s", diff)
	}
}
