package service

import (
	"context"
	"sort"

	"leetboard/internal/entity"
	"leetboard/internal/modules/leaderboard/dto"
)

const topSkillLimit = 5

// CompareSkills builds the skill-comparison view. With an empty filter it
// returns the top records per level group across all users; with a tag it
// returns the per-user solved sum for that tag.
func (s *leaderboardService) CompareSkills(ctx context.Context, skill string) (*dto.SkillComparison, error) {
	snapshot, err := s.Snapshot(ctx, nil)
	if err != nil {
		return nil, err
	}

	if skill == "" {
		return compareAllSkills(snapshot.Skills), nil
	}
	return compareSingleSkill(snapshot.Skills, skill), nil
}

// Heatmap builds the full (skill, level) x username matrix. Cells hold the
// solved sum for that pair, zero when the user never touched the skill.
func (s *leaderboardService) Heatmap(ctx context.Context) (*dto.Heatmap, error) {
	snapshot, err := s.Snapshot(ctx, nil)
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int, len(snapshot.Usernames))
	for i, username := range snapshot.Usernames {
		columns[username] = i
	}

	type rowKey struct {
		skill string
		level entity.SkillLevel
	}

	rowIndex := make(map[rowKey]int)
	var rows []dto.HeatmapRow
	for _, record := range snapshot.Skills {
		key := rowKey{skill: record.Skill, level: record.Level}
		idx, ok := rowIndex[key]
		if !ok {
			idx = len(rows)
			rowIndex[key] = idx
			rows = append(rows, dto.HeatmapRow{
				Skill: record.Skill,
				Level: record.Level,
				Cells: make([]int, len(snapshot.Usernames)),
			})
		}
		rows[idx].Cells[columns[record.Username]] += record.ProblemsSolved
	}

	// Level rank first, original appearance within a level.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Level.Order() < rows[j].Level.Order()
	})

	return &dto.Heatmap{Usernames: snapshot.Usernames, Rows: rows}, nil
}

func compareAllSkills(records []entity.SkillRecord) *dto.SkillComparison {
	sorted := make([]entity.SkillRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Level.Order() != sorted[j].Level.Order() {
			return sorted[i].Level.Order() < sorted[j].Level.Order()
		}
		return sorted[i].ProblemsSolved > sorted[j].ProblemsSolved
	})

	comparison := &dto.SkillComparison{
		TopAdvanced: []entity.SkillRecord{},
		TopOther:    []entity.SkillRecord{},
	}
	for _, record := range sorted {
		if record.Level == entity.LevelAdvanced {
			if len(comparison.TopAdvanced) < topSkillLimit {
				comparison.TopAdvanced = append(comparison.TopAdvanced, record)
			}
			continue
		}
		if len(comparison.TopOther) < topSkillLimit {
			comparison.TopOther = append(comparison.TopOther, record)
		}
	}

	return comparison
}

func compareSingleSkill(records []entity.SkillRecord, skill string) *dto.SkillComparison {
	sums := make(map[string]int)
	var order []string
	for _, record := range records {
		if record.Skill != skill {
			continue
		}
		if _, seen := sums[record.Username]; !seen {
			order = append(order, record.Username)
		}
		sums[record.Username] += record.ProblemsSolved
	}

	totals := make([]dto.SkillTotal, 0, len(order))
	for _, username := range order {
		totals = append(totals, dto.SkillTotal{Username: username, ProblemsSolved: sums[username]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].ProblemsSolved > totals[j].ProblemsSolved
	})

	return &dto.SkillComparison{Skill: skill, Totals: totals}
}
