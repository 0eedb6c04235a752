package offers

import (
	"regexp"
	"strconv"
	"strings"

	"glowdesk/models"
)

// Choice extraction runs an ordered rule table over the customer's message.
// Rules fire in priority order; the first non-zero result wins. Keeping the
// rules as a table keeps the priority order and keyword sets independently
// testable without touching control flow.

type choiceRule struct {
	name  string
	apply func(text string, slots []models.Slot) int
}

var (
	optionNumberRE = regexp.MustCompile(`(?i)(?:option|number|choice|#)\s*(\d+)`)
)

// ordinalWords maps spoken ordinals to 1-based indexes.
var ordinalWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5, "sixth": 6,
	"1st": 1, "2nd": 2, "3rd": 3, "4th": 4, "5th": 5, "6th": 6,
}

var choiceRules = []choiceRule{
	{
		// The whole message is just a number: "3".
		name: "bare_number",
		apply: func(text string, slots []models.Slot) int {
			n, err := strconv.Atoi(strings.TrimSpace(text))
			if err == nil && n >= 1 && n <= len(slots) {
				return n
			}
			return 0
		},
	},
	{
		// "option 3", "number 2", "choice 1", "#3" anywhere in the message.
		name: "option_number",
		apply: func(text string, slots []models.Slot) int {
			m := optionNumberRE.FindStringSubmatch(text)
			if len(m) > 1 {
				if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= len(slots) {
					return n
				}
			}
			return 0
		},
	},
	{
		// "the first one", "2nd works for me".
		name: "ordinal_word",
		apply: func(text string, slots []models.Slot) int {
			lower := strings.ToLower(text)
			for word, n := range ordinalWords {
				if strings.Contains(lower, word) && n >= 1 && n <= len(slots) {
					return n
				}
			}
			return 0
		},
	},
	{
		// A slot's display label appears in the message: "5:30 PM works".
		name: "time_label",
		apply: func(text string, slots []models.Slot) int {
			lower := strings.ToLower(text)
			for i, slot := range slots {
				if slot.StartTime == "" {
					continue
				}
				if strings.Contains(lower, strings.ToLower(slot.StartTime)) {
					return i + 1
				}
			}
			return 0
		},
	},
}

// ExtractChoice interprets a customer message as a selection among the
// offered slots. Returns the 1-based index of the chosen slot, or 0 when the
// message is not a selection.
func ExtractChoice(text string, slots []models.Slot) int {
	if strings.TrimSpace(text) == "" || len(slots) == 0 {
		return 0
	}
	for _, rule := range choiceRules {
		if n := rule.apply(text, slots); n > 0 {
			return n
		}
	}
	return 0
}
