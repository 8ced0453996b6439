package service

import "fmt"

// RankDelta classifies the change between two remote-rank observations.
// A smaller rank number is better, so prev 500 -> cur 300 is "Up 200".
// Returns "" when either observation is unknown (nil).
func RankDelta(prev, cur *int) string {
	if prev == nil || cur == nil {
		return ""
	}

	diff := *prev - *cur
	switch {
	case diff > 0:
		return fmt.Sprintf("Up %d", diff)
	case diff < 0:
		return fmt.Sprintf("Down %d", -diff)
	default:
		return "No change"
	}
}
