package offers

import (
	"testing"

	"glowdesk/models"

	"github.com/stretchr/testify/assert"
)

func testSlots() []models.Slot {
	return []models.Slot{
		{Index: 1, Start: "2026-06-15T10:00:00-04:00", StartTime: "10:00 AM"},
		{Index: 2, Start: "2026-06-15T14:30:00-04:00", StartTime: "2:30 PM"},
		{Index: 3, Start: "2026-06-15T17:30:00-04:00", StartTime: "5:30 PM"},
	}
}

func TestExtractChoice(t *testing.T) {
	slots := testSlots()

	tests := []struct {
		name    string
		message string
		want    int
	}{
		{"bare number", "3", 3},
		{"bare number with whitespace", "  2  ", 2},
		{"bare number out of range", "5", 0},
		{"option keyword", "option 3", 3},
		{"option keyword capitalized", "Option 2 please", 2},
		{"number keyword", "number 1", 1},
		{"choice keyword", "choice 2", 2},
		{"hash prefix", "#3", 3},
		{"keyword out of range", "option 9", 0},
		{"ordinal word", "the first one", 1},
		{"ordinal suffix", "2nd works for me", 2},
		{"spoken ordinal", "let's do the third", 3},
		{"time label", "5:30 PM works", 3},
		{"time label lowercased", "how about 2:30 pm?", 2},
		{"time label embedded", "I'd like the 10:00 AM slot please", 1},
		{"keyword beats time label", "option 2, not the 5:30 PM", 2},
		{"not a selection", "do you have anything on Friday?", 0},
		{"empty message", "", 0},
		{"bare clock time without meridiem is not a selection", "5:30", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractChoice(tt.message, slots))
		})
	}
}

func TestExtractChoiceNoSlots(t *testing.T) {
	assert.Equal(t, 0, ExtractChoice("1", nil))
	assert.Equal(t, 0, ExtractChoice("option 1", []models.Slot{}))
}
