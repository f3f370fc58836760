package types

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SpellType is the primary category whose stats are signed bonuses and
// which carries no subtypes.
const SpellType = "Spell"

// Catalog is the registry of valid card labels. The order of every list is
// part of the serial number contract: serials encode positions, so entries
// may only ever be appended.
type Catalog struct {
	Types        []string `yaml:"types"`
	Subtypes     []string `yaml:"subtypes"`
	EffectStyles []string `yaml:"effect_styles"`
}

// DefaultCatalog returns the built-in label registry.
func DefaultCatalog() Catalog {
	return Catalog{
		Types: []string{
			"Spell", "Earth", "Fire", "Water", "Air", "Light", "Dark", "Electric", "Nature",
		},
		Subtypes: []string{
			"Avian", "Dragon", "Beast", "Elemental", "Aquatic", "Warrior", "Spellcaster",
			"Machine", "Ghost", "Insect", "Reptile", "Fairy", "Undead", "Botanic",
		},
		EffectStyles: []string{
			"", "continuous", "counter", "dormant", "latent", "passive", "equip", "overload", "echo", "pulse",
		},
	}
}

// LoadCatalog reads a catalog from a YAML file. Lists missing from the file
// keep their default values.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes YAML catalog data on top of the defaults.
func ParseCatalog(data []byte) (Catalog, error) {
	var parsed Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&parsed); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}

	catalog := DefaultCatalog()
	if len(parsed.Types) > 0 {
		catalog.Types = parsed.Types
	}
	if len(parsed.Subtypes) > 0 {
		catalog.Subtypes = parsed.Subtypes
	}
	if len(parsed.EffectStyles) > 0 {
		catalog.EffectStyles = parsed.EffectStyles
		if catalog.EffectStyles[0] != "" {
			// index 0 always means "no style"
			catalog.EffectStyles = append([]string{""}, catalog.EffectStyles...)
		}
	}

	if err := catalog.Validate(); err != nil {
		return Catalog{}, err
	}
	return catalog, nil
}

// Validate checks the catalog for empty and duplicate labels. Labels are
// compared case-insensitively because the enumerator folds case.
func (c Catalog) Validate() error {
	if len(c.Types) == 0 {
		return fmt.Errorf("catalog must define at least one type")
	}

	seen := make(map[string]string)
	for _, group := range []struct {
		name   string
		labels []string
	}{{"type", c.Types}, {"subtype", c.Subtypes}} {
		for _, label := range group.labels {
			key := strings.ToLower(strings.TrimSpace(label))
			if key == "" {
				return fmt.Errorf("catalog %s labels cannot be empty", group.name)
			}
			if prev, ok := seen[key]; ok {
				return fmt.Errorf("duplicate catalog label %q (already a %s)", label, prev)
			}
			seen[key] = group.name
		}
	}

	styles := make(map[string]bool)
	for i, style := range c.EffectStyles {
		key := strings.ToLower(strings.TrimSpace(style))
		if key == "" && i > 0 {
			return fmt.Errorf("effect style %d cannot be empty", i)
		}
		if styles[key] {
			return fmt.Errorf("duplicate effect style %q", style)
		}
		styles[key] = true
	}
	return nil
}

// Labels returns types followed by subtypes: the enumeration universe.
func (c Catalog) Labels() []string {
	labels := make([]string, 0, len(c.Types)+len(c.Subtypes))
	labels = append(labels, c.Types...)
	return append(labels, c.Subtypes...)
}

// CanonicalType returns the catalog spelling of a type label.
func (c Catalog) CanonicalType(label string) (string, bool) {
	return lookup(c.Types, label)
}

// CanonicalSubtype returns the catalog spelling of a subtype label.
func (c Catalog) CanonicalSubtype(label string) (string, bool) {
	return lookup(c.Subtypes, label)
}

// StyleIndex returns the position of an effect style. The empty style is
// index 0.
func (c Catalog) StyleIndex(style string) (int, bool) {
	key := strings.ToLower(strings.TrimSpace(style))
	for i, s := range c.EffectStyles {
		if strings.ToLower(s) == key {
			return i, true
		}
	}
	return 0, false
}

func lookup(labels []string, label string) (string, bool) {
	label = strings.TrimSpace(label)
	for _, l := range labels {
		if strings.EqualFold(l, label) {
			return l, true
		}
	}
	return "", false
}
