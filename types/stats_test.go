package types

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestStatRange(t *testing.T) {
	if lo, hi := StatRange(3, false); lo != 0 || hi != 1500 {
		t.Errorf("StatRange(3, unit) = [%d, %d], want [0, 1500]", lo, hi)
	}
	if lo, hi := StatRange(2, true); lo != -20 || hi != 20 {
		t.Errorf("StatRange(2, spell) = [%d, %d], want [-20, 20]", lo, hi)
	}
}

func TestParseStat(t *testing.T) {
	tests := []struct {
		cell string
		want int
	}{
		{"", 0},
		{" 500 ", 500},
		{"+20", 20},
		{"-10", -10},
	}
	for _, tt := range tests {
		got, err := ParseStat(tt.cell)
		if err != nil {
			t.Errorf("ParseStat(%q) failed: %v", tt.cell, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStat(%q) = %d, want %d", tt.cell, got, tt.want)
		}
	}

	if _, err := ParseStat("lots"); err == nil {
		t.Error("expected error for non-numeric stat")
	}
}

func TestFormatStat(t *testing.T) {
	tests := []struct {
		value int
		spell bool
		want  string
	}{
		{500, false, "500"},
		{0, true, "+0"},
		{20, true, "+20"},
		{-10, true, "-10"},
	}
	for _, tt := range tests {
		if got := FormatStat(tt.value, tt.spell); got != tt.want {
			t.Errorf("FormatStat(%d, %v) = %q, want %q", tt.value, tt.spell, got, tt.want)
		}
	}
}

func TestRandomStats(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for level := MinLevel; level <= MaxLevel; level++ {
		for i := 0; i < 50; i++ {
			a, d := RandomStats(level, false, rng)
			av, err := ParseStat(a)
			if err != nil {
				t.Fatalf("attack %q: %v", a, err)
			}
			dv, err := ParseStat(d)
			if err != nil {
				t.Fatalf("defense %q: %v", d, err)
			}
			if av+dv != UnitPointsPerLevel*level {
				t.Errorf("level %d unit stats %d+%d, want sum %d", level, av, dv, UnitPointsPerLevel*level)
			}
			if av%5 != 0 || av < 0 || dv < 0 {
				t.Errorf("level %d unit stats %d/%d, want non-negative steps of 5", level, av, dv)
			}

			a, d = RandomStats(level, true, rng)
			for _, cell := range []string{a, d} {
				v, err := ParseStat(cell)
				if err != nil {
					t.Fatalf("spell stat %q: %v", cell, err)
				}
				limit := SpellBonusPerLevel * level
				if v%10 != 0 || v > limit || v < -limit {
					t.Errorf("level %d spell stat %d, want a multiple of 10 within ±%d", level, v, limit)
				}
				if v >= 0 && !strings.HasPrefix(cell, "+") {
					t.Errorf("non-negative spell stat %q should carry a + sign", cell)
				}
			}
		}
	}
}

func TestRandomStatsClampsLevel(t *testing.T) {
	a, d := RandomStats(9, false, rand.New(rand.NewPCG(1, 2)))
	av, _ := ParseStat(a)
	dv, _ := ParseStat(d)
	if av+dv != UnitPointsPerLevel {
		t.Errorf("out-of-range level split %d, want %d", av+dv, UnitPointsPerLevel)
	}
}
