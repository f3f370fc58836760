package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrEmptySerial is returned when appending a blank serial number.
	ErrEmptySerial = errors.New("serial number is empty")

	// ErrDuplicateSerial is returned when appending a serial that is
	// already recorded.
	ErrDuplicateSerial = errors.New("serial number already recorded")
)

// Serials is a loaded serial history. It satisfies serial.Taken.
type Serials map[string]struct{}

// Has reports whether serial is recorded.
func (s Serials) Has(serial string) bool {
	_, ok := s[serial]
	return ok
}

// Len returns the number of distinct serials.
func (s Serials) Len() int {
	return len(s)
}

// History is the append-only serial number history: one serial per line.
type History struct {
	path string
	settings
}

// NewHistory returns the history stored at path.
func NewHistory(path string, opts ...Option) *History {
	return &History{path: path, settings: newSettings(opts)}
}

// Path returns the history file path.
func (h *History) Path() string {
	return h.path
}

// Load reads every recorded serial. A missing file is an empty history.
func (h *History) Load() (Serials, error) {
	data, err := h.fs.ReadFile(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return Serials{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read serial history: %w", err)
	}
	return parseSerials(data), nil
}

// Contains reports whether serial is recorded.
func (h *History) Contains(serial string) (bool, error) {
	serials, err := h.Load()
	if err != nil {
		return false, err
	}
	return serials.Has(strings.TrimSpace(serial)), nil
}

// Append records a newly issued serial. The file is locked for the
// duration of the check and write.
func (h *History) Append(serial string) error {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return ErrEmptySerial
	}

	return withLock(h.lockFactory, h.path, func() error {
		data, err := h.fs.ReadFile(h.path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read serial history: %w", err)
		}
		if parseSerials(data).Has(serial) {
			return fmt.Errorf("%w: %s", ErrDuplicateSerial, serial)
		}

		line := serial + "\n"
		if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
			line = "\n" + line
		}
		if err := h.fs.AppendFile(h.path, []byte(line), 0644); err != nil {
			return fmt.Errorf("failed to append serial: %w", err)
		}

		h.logger.Info("recorded serial", zap.String("serial", serial), zap.String("history", h.path))
		return nil
	})
}

func parseSerials(data []byte) Serials {
	serials := make(Serials)
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			serials[line] = struct{}{}
		}
	}
	return serials
}
