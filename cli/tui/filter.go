package tui

import (
	"strings"

	"github.com/confsentry/confsentry/core/rules"
)

// levelOrder defines the cycle order for the level filter toggle.
var levelOrder = []rules.Level{
	rules.LevelError,
	rules.LevelWarning,
	rules.LevelInfo,
}

// entry pairs a rule result with the file it came from, since rules.Result
// itself carries no file path.
type entry struct {
	filePath string
	result   rules.Result
}

// filterState tracks the active filter configuration.
type filterState struct {
	levelIdx  int    // -1 = all, 0..len(levelOrder)-1 = specific level
	search    string // free-text search query
	searching bool   // true when search input is active
}

func newFilterState() filterState {
	return filterState{levelIdx: -1}
}

// cycleLevel advances the level filter to the next value.
func (f *filterState) cycleLevel() {
	f.levelIdx++
	if f.levelIdx >= len(levelOrder) {
		f.levelIdx = -1
	}
}

// activeLevel returns the current level filter, or "all".
func (f *filterState) activeLevel() string {
	if f.levelIdx < 0 {
		return "all"
	}
	return string(levelOrder[f.levelIdx])
}

// matchesEntry returns true if e passes all active filters.
func (f *filterState) matchesEntry(e entry) bool {
	if f.levelIdx >= 0 && e.result.Level != levelOrder[f.levelIdx] {
		return false
	}

	if f.search != "" {
		q := strings.ToLower(f.search)
		if !strings.Contains(strings.ToLower(e.result.RuleID), q) &&
			!strings.Contains(strings.ToLower(e.filePath), q) &&
			!strings.Contains(strings.ToLower(e.result.Message), q) &&
			!strings.Contains(strings.ToLower(e.result.NodeID), q) {
			return false
		}
	}

	return true
}

// filterEntries returns entries that pass the active filters.
func (f *filterState) filterEntries(all []entry) []entry {
	var result []entry
	for _, e := range all {
		if f.matchesEntry(e) {
			result = append(result, e)
		}
	}
	return result
}
