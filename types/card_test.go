package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCardLabels(t *testing.T) {
	c := Card{Type: "Fire", Subtypes: []string{"Dragon", "Warrior"}}
	if diff := cmp.Diff([]string{"Fire", "Dragon", "Warrior"}, c.Labels()); diff != "" {
		t.Errorf("Labels mismatch (-want +got):\n%s", diff)
	}
	if got := c.SubtypeString(); got != "Dragon, Warrior" {
		t.Errorf("SubtypeString() = %q", got)
	}
	if c.IsSpell() {
		t.Error("Fire card reported as spell")
	}
	if !(Card{Type: " spell "}).IsSpell() {
		t.Error("padded Spell type not recognised")
	}
}

func TestParseSubtypes(t *testing.T) {
	if diff := cmp.Diff([]string{"Dragon", "Warrior"}, ParseSubtypes(" Dragon, ,Warrior ")); diff != "" {
		t.Errorf("ParseSubtypes mismatch (-want +got):\n%s", diff)
	}
	if got := ParseSubtypes(""); got != nil {
		t.Errorf("ParseSubtypes(\"\") = %v, want nil", got)
	}
}

func TestMetadataTags(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want []string
	}{
		{"unit", Card{Type: "Fire", Level: 3}, []string{"UNIT", "LEVEL_3"}},
		{"spell", Card{Type: "Spell", Level: 5}, []string{"SPELL", "LEVEL_5"}},
		{"missing level", Card{Type: "Water"}, []string{"UNIT", "LEVEL_1"}},
		{"level out of range", Card{Type: "Water", Level: 7}, []string{"UNIT", "LEVEL_1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, MetadataTags(tt.card)); diff != "" {
				t.Errorf("MetadataTags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
