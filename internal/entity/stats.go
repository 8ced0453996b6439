package entity

import "strings"

// SkillLevel is a proficiency bucket attached to each skill tag by the
// LeetCode API. Advanced orders before Intermediate before Fundamental.
type SkillLevel string

const (
	LevelAdvanced     SkillLevel = "Advanced"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelFundamental  SkillLevel = "Fundamental"
)

// Order returns the display rank of the level, Advanced first.
func (l SkillLevel) Order() int {
	switch l {
	case LevelAdvanced:
		return 0
	case LevelIntermediate:
		return 1
	default:
		return 2
	}
}

// NormalizeLevel maps a raw API bucket name onto one of the three known
// levels. Unknown names coerce to Fundamental; callers should log the raw
// name when that happens, since it can indicate an API schema change.
func NormalizeLevel(raw string) (SkillLevel, bool) {
	capitalized := capitalize(raw)
	switch SkillLevel(capitalized) {
	case LevelAdvanced, LevelIntermediate, LevelFundamental:
		return SkillLevel(capitalized), true
	}
	return LevelFundamental, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// SkillRecord is one (user, skill) observation.
type SkillRecord struct {
	Username       string     `json:"username"`
	Level          SkillLevel `json:"level"`
	Skill          string     `json:"skill"`
	ProblemsSolved int        `json:"problems_solved"`
}

// ProfileStats is the normalized per-user aggregate profile.
// Ranking is the remote site's own rank; nil means the API did not report
// one ("N/A"). It is distinct from the positional leaderboard rank.
type ProfileStats struct {
	Username     string
	TotalSolved  int
	EasySolved   int
	MediumSolved int
	HardSolved   int
	AccuracyPct  float64
	Ranking      *int
}
