package runner

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidKeyEvent is returned for malformed key script entries.
var ErrInvalidKeyEvent = errors.New("invalid key event")

const maxKey = 0xF

// KeyEvent presses or releases a key before the instruction of the given
// cycle is executed.
type KeyEvent struct {
	Cycle   uint64
	Key     uint8
	Pressed bool
}

func (e KeyEvent) String() string {
	action := '-'
	if e.Pressed {
		action = '+'
	}
	return fmt.Sprintf("%d:%c%X", e.Cycle, action, e.Key)
}

// ParseKeyScript parses a comma separated list of key events in the form
// cycle:+key or cycle:-key, with the key given as a hex digit. For example
// "10:+5,40:-5" presses key 5 at cycle 10 and releases it at cycle 40.
// The returned events are ordered by cycle, events of the same cycle keep
// their script order.
func ParseKeyScript(script string) ([]KeyEvent, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, nil
	}

	entries := strings.Split(script, ",")
	events := make([]KeyEvent, 0, len(entries))

	for _, entry := range entries {
		event, err := parseKeyEvent(strings.TrimSpace(entry))
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	slices.SortStableFunc(events, func(a, b KeyEvent) int {
		switch {
		case a.Cycle < b.Cycle:
			return -1
		case a.Cycle > b.Cycle:
			return 1
		default:
			return 0
		}
	})
	return events, nil
}

func parseKeyEvent(entry string) (KeyEvent, error) {
	cyclePart, keyPart, ok := strings.Cut(entry, ":")
	if !ok || len(keyPart) < 2 {
		return KeyEvent{}, fmt.Errorf("%w '%s': expected cycle:+key or cycle:-key", ErrInvalidKeyEvent, entry)
	}

	cycle, err := strconv.ParseUint(cyclePart, 10, 64)
	if err != nil {
		return KeyEvent{}, fmt.Errorf("%w '%s': parsing cycle: %w", ErrInvalidKeyEvent, entry, err)
	}

	var pressed bool
	switch keyPart[0] {
	case '+':
		pressed = true
	case '-':
	default:
		return KeyEvent{}, fmt.Errorf("%w '%s': unsupported action '%c'", ErrInvalidKeyEvent, entry, keyPart[0])
	}

	key, err := strconv.ParseUint(keyPart[1:], 16, 8)
	if err != nil || key > maxKey {
		return KeyEvent{}, fmt.Errorf("%w '%s': key must be a hex digit 0-F", ErrInvalidKeyEvent, entry)
	}

	return KeyEvent{
		Cycle:   cycle,
		Key:     uint8(key),
		Pressed: pressed,
	}, nil
}
