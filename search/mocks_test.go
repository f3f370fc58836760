package search

// MockTextProvider implements TextProvider for testing
type MockTextProvider struct {
	texts []string
	err   error
}

// NewMockTextProvider creates a new mock provider with the given texts
func NewMockTextProvider(texts []string) *MockTextProvider {
	return &MockTextProvider{texts: texts}
}

// SetError configures the mock to return an error
func (m *MockTextProvider) SetError(err error) {
	m.err = err
}

// Texts implements TextProvider
func (m *MockTextProvider) Texts() ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.texts, nil
}

// SampleEffects returns a set of effect texts for testing
func SampleEffects() []string {
	return []string{
		"Draw one card",
		"Destroy one Dragon on the field",
		"Gain 200 life points",
		"Return one Beast card to the hand",
		"DRAW two cards and discard one",
		"Dragons you control gain 100 attack",
	}
}
