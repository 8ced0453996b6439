package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"leetboard/internal/entity"
	"leetboard/internal/modules/leaderboard/dto"
	statsService "leetboard/internal/modules/stats/service"
	trackerService "leetboard/internal/modules/tracker/service"
	"leetboard/pkg/apperror"
)

// ProgressFunc receives one event per tracked user while a snapshot is
// being built. Used by the live websocket feed; nil is fine.
type ProgressFunc func(event dto.ProgressEvent)

// Snapshot is one full pipeline run: the sorted board plus the flat skill
// records the comparison and heatmap views pivot over.
type Snapshot struct {
	Board     dto.Board
	Skills    []entity.SkillRecord
	Usernames []string
}

type LeaderboardService interface {
	// Snapshot runs the pipeline over every tracked user. Per-user fetch
	// failures become warnings, not errors; ErrNoTrackedUsers and ErrNoData
	// are the only halting conditions.
	Snapshot(ctx context.Context, onProgress ProgressFunc) (*Snapshot, error)
	CompareSkills(ctx context.Context, skill string) (*dto.SkillComparison, error)
	Heatmap(ctx context.Context) (*dto.Heatmap, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	// Refresh clears the response cache and the previous-rank session.
	Refresh(ctx context.Context) error
}

type leaderboardService struct {
	tracker trackerService.TrackerService
	stats   statsService.StatsService
	session *Session
}

func NewLeaderboardService(tracker trackerService.TrackerService, stats statsService.StatsService) LeaderboardService {
	return &leaderboardService{
		tracker: tracker,
		stats:   stats,
		session: NewSession(),
	}
}

func (s *leaderboardService) Snapshot(ctx context.Context, onProgress ProgressFunc) (*Snapshot, error) {
	users, err := s.tracker.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperror.ErrNoTrackedUsers
	}

	var (
		rows      []dto.LeaderboardRow
		skills    []entity.SkillRecord
		warnings  []string
		usernames []string
	)

	for i, user := range users {
		event := dto.ProgressEvent{Username: user.Username, Index: i + 1, Total: len(users)}
		usernames = append(usernames, user.Username)

		profile, err := s.stats.Profile(ctx, user.Username)
		if err != nil {
			warning := fmt.Sprintf("profile error (%s): %v", user.Username, err)
			log.Printf("[Pipeline] %s", warning)
			warnings = append(warnings, warning)
			s.session.RecordRank(user.Username, nil)

			event.Warning = warning
			emit(onProgress, event)
			continue
		}

		rows = append(rows, dto.LeaderboardRow{
			Username:     user.Username,
			TotalSolved:  profile.TotalSolved,
			EasySolved:   profile.EasySolved,
			MediumSolved: profile.MediumSolved,
			HardSolved:   profile.HardSolved,
			AccuracyPct:  profile.AccuracyPct,
			Rank:         formatRank(profile.Ranking),
			RankDelta:    RankDelta(s.session.PreviousRank(user.Username), profile.Ranking),
		})
		s.session.RecordRank(user.Username, profile.Ranking)

		userSkills, err := s.stats.Skills(ctx, user.Username)
		if err != nil {
			warning := fmt.Sprintf("skill error (%s): %v", user.Username, err)
			log.Printf("[Pipeline] %s", warning)
			warnings = append(warnings, warning)
			event.Warning = warning
		} else {
			skills = append(skills, userSkills...)
		}

		emit(onProgress, event)
	}

	if len(rows) == 0 {
		return nil, apperror.ErrNoData
	}

	// Stable sort keeps fetch order as the tiebreak for equal totals.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalSolved > rows[j].TotalSolved
	})
	for i := range rows {
		rows[i].Position = i + 1
	}

	var changes []dto.RankChange
	for _, row := range rows {
		if row.RankDelta != "" {
			changes = append(changes, dto.RankChange{Username: row.Username, RankDelta: row.RankDelta})
		}
	}

	return &Snapshot{
		Board: dto.Board{
			Rows:        rows,
			RankChanges: changes,
			Warnings:    warnings,
			GeneratedAt: time.Now(),
		},
		Skills:    skills,
		Usernames: usernames,
	}, nil
}

func (s *leaderboardService) Refresh(ctx context.Context) error {
	if err := s.stats.ClearCache(ctx); err != nil {
		return err
	}
	s.session.Reset()
	return nil
}

func emit(onProgress ProgressFunc, event dto.ProgressEvent) {
	if onProgress != nil {
		onProgress(event)
	}
}

func formatRank(rank *int) string {
	if rank == nil {
		return "N/A"
	}
	return strconv.Itoa(*rank)
}
