package dto

import (
	"time"

	"leetboard/internal/entity"
)

// LeaderboardRow is one user's line in the board. Position is the 1-based
// index after sorting by TotalSolved; Rank is the remote site's own rank
// ("N/A" when unreported). The two are distinct numbers.
type LeaderboardRow struct {
	Position     int     `json:"position"`
	Username     string  `json:"username"`
	TotalSolved  int     `json:"total_solved"`
	EasySolved   int     `json:"easy_solved"`
	MediumSolved int     `json:"medium_solved"`
	HardSolved   int     `json:"hard_solved"`
	AccuracyPct  float64 `json:"accuracy_pct"`
	Rank         string  `json:"rank"`
	RankDelta    string  `json:"rank_delta"`
}

// RankChange is a board row whose remote rank moved since the previous run.
type RankChange struct {
	Username  string `json:"username"`
	RankDelta string `json:"rank_delta"`
}

type Board struct {
	Rows        []LeaderboardRow `json:"rows"`
	RankChanges []RankChange     `json:"rank_changes"`
	Warnings    []string         `json:"warnings"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// SkillTotal is the single-skill pivot: per-user solved sum for one tag.
type SkillTotal struct {
	Username       string `json:"username"`
	ProblemsSolved int    `json:"problems_solved"`
}

// SkillComparison is either the all-skills view (top records grouped by
// level) or a single-skill pivot, depending on whether a filter was given.
type SkillComparison struct {
	Skill       string               `json:"skill,omitempty"`
	TopAdvanced []entity.SkillRecord `json:"top_advanced,omitempty"`
	TopOther    []entity.SkillRecord `json:"top_other,omitempty"`
	Totals      []SkillTotal         `json:"totals,omitempty"`
}

// HeatmapRow is one (skill, level) line of the matrix; Cells align with the
// parent Heatmap's Usernames.
type HeatmapRow struct {
	Skill string            `json:"skill"`
	Level entity.SkillLevel `json:"level"`
	Cells []int             `json:"cells"`
}

type Heatmap struct {
	Usernames []string     `json:"usernames"`
	Rows      []HeatmapRow `json:"rows"`
}

// ProgressEvent is one frame of the live fetch feed.
type ProgressEvent struct {
	Username string `json:"username"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Warning  string `json:"warning,omitempty"`
}
