package decoder

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFlowClassification(t *testing.T) {
	tests := []struct {
		name        string
		word        uint16
		skip        bool
		controlFlow bool
	}{
		{"jump", 0x1234, false, true},
		{"call", 0x2345, false, true},
		{"return", 0x00EE, false, true},
		{"skip equal immediate", 0x3A12, true, false},
		{"skip not equal immediate", 0x4A12, true, false},
		{"skip equal register", 0x5AB0, true, false},
		{"skip not equal register", 0x9AB0, true, false},
		{"skip key pressed", 0xE19E, true, false},
		{"skip key not pressed", 0xE1A1, true, false},
		{"wait key", 0xF10A, false, false},
		{"draw", 0xD123, false, false},
		{"clear screen", 0x00E0, false, false},
		{"unknown", 0x5AB1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.skip, IsSkip(tt.word))
			assert.Equal(t, tt.controlFlow, IsControlFlow(tt.word))
		})
	}
}
