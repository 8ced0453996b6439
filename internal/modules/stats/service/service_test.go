package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leetboard/internal/entity"
	"leetboard/internal/leetcode"
	"leetboard/pkg/cache"
)

type stubAPI struct {
	profile      *leetcode.RawProfile
	skills       leetcode.RawSkillBuckets
	err          error
	profileCalls int
	skillCalls   int
}

func (s *stubAPI) Profile(_ context.Context, _ string) (*leetcode.RawProfile, error) {
	s.profileCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func (s *stubAPI) Skills(_ context.Context, _ string) (leetcode.RawSkillBuckets, error) {
	s.skillCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.skills, nil
}

func intPtr(v int) *int { return &v }

func newTestService(api *stubAPI) (*statsService, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewStatsService(api, cache.NewMemoryStore(), 1800*time.Second).(*statsService)
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestProfile_Normalizes(t *testing.T) {
	api := &stubAPI{profile: &leetcode.RawProfile{
		TotalSolved:  100,
		EasySolved:   50,
		MediumSolved: 35,
		HardSolved:   15,
		Ranking:      intPtr(1234),
		MatchedUserStats: leetcode.MatchedUserStats{
			AcSubmissionNum:    []leetcode.SubmissionCount{{Difficulty: "All", Submissions: 150}},
			TotalSubmissionNum: []leetcode.SubmissionCount{{Difficulty: "All", Submissions: 300}},
		},
	}}
	svc, _ := newTestService(api)

	stats, err := svc.Profile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", stats.Username)
	assert.Equal(t, 100, stats.TotalSolved)
	assert.InDelta(t, 50.0, stats.AccuracyPct, 0.001)
	require.NotNil(t, stats.Ranking)
	assert.Equal(t, 1234, *stats.Ranking)
}

func TestProfile_MissingRankingIsNil(t *testing.T) {
	api := &stubAPI{profile: &leetcode.RawProfile{TotalSolved: 3}}
	svc, _ := newTestService(api)

	stats, err := svc.Profile(context.Background(), "bob")
	require.NoError(t, err)
	assert.Nil(t, stats.Ranking)
	assert.Equal(t, 0.0, stats.AccuracyPct)
}

func TestProfile_CachedWithinTTL(t *testing.T) {
	api := &stubAPI{profile: &leetcode.RawProfile{TotalSolved: 10}}
	svc, now := newTestService(api)
	ctx := context.Background()

	first, err := svc.Profile(ctx, "alice")
	require.NoError(t, err)

	*now = now.Add(1799 * time.Second)
	second, err := svc.Profile(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 1, api.profileCalls)
	assert.Equal(t, first, second)
}

func TestProfile_RefetchesAfterTTL(t *testing.T) {
	api := &stubAPI{profile: &leetcode.RawProfile{TotalSolved: 10}}
	svc, now := newTestService(api)
	ctx := context.Background()

	_, err := svc.Profile(ctx, "alice")
	require.NoError(t, err)

	*now = now.Add(1800 * time.Second)
	_, err = svc.Profile(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 2, api.profileCalls)
}

func TestProfile_CacheKeyedByUsername(t *testing.T) {
	api := &stubAPI{profile: &leetcode.RawProfile{TotalSolved: 10}}
	svc, _ := newTestService(api)
	ctx := context.Background()

	_, err := svc.Profile(ctx, "alice")
	require.NoError(t, err)
	_, err = svc.Profile(ctx, "bob")
	require.NoError(t, err)

	assert.Equal(t, 2, api.profileCalls)
}

func TestClearCache_ForcesRefetch(t *testing.T) {
	api := &stubAPI{profile: &leetcode.RawProfile{TotalSolved: 10}}
	svc, _ := newTestService(api)
	ctx := context.Background()

	_, err := svc.Profile(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, svc.ClearCache(ctx))
	_, err = svc.Profile(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 2, api.profileCalls)
}

func TestProfile_ErrorIsNotCached(t *testing.T) {
	api := &stubAPI{err: errors.New("connection refused")}
	svc, _ := newTestService(api)
	ctx := context.Background()

	_, err := svc.Profile(ctx, "alice")
	require.Error(t, err)

	api.err = nil
	api.profile = &leetcode.RawProfile{TotalSolved: 5}
	stats, err := svc.Profile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalSolved)
	assert.Equal(t, 2, api.profileCalls)
}

func TestSkills_FlattensAndSorts(t *testing.T) {
	api := &stubAPI{skills: leetcode.RawSkillBuckets{
		"fundamental": {
			{TagName: "Array", ProblemsSolved: 40},
			{TagName: "String", ProblemsSolved: 25},
		},
		"intermediate": {
			{TagName: "Hash Table", ProblemsSolved: 30},
		},
		"advanced": {
			{TagName: "Dynamic Programming", ProblemsSolved: 12},
			{TagName: "Union Find", ProblemsSolved: 20},
		},
	}}
	svc, _ := newTestService(api)

	records, err := svc.Skills(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, records, 5)

	// Advanced first, then by problems solved descending within a level.
	assert.Equal(t, "Union Find", records[0].Skill)
	assert.Equal(t, entity.LevelAdvanced, records[0].Level)
	assert.Equal(t, "Dynamic Programming", records[1].Skill)
	assert.Equal(t, "Hash Table", records[2].Skill)
	assert.Equal(t, "Array", records[3].Skill)
	assert.Equal(t, "String", records[4].Skill)
}

func TestSkills_UnknownLevelCoercedToFundamental(t *testing.T) {
	api := &stubAPI{skills: leetcode.RawSkillBuckets{
		"unrated": {{TagName: "Graph", ProblemsSolved: 8}},
	}}
	svc, _ := newTestService(api)

	records, err := svc.Skills(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entity.LevelFundamental, records[0].Level)
}

func TestSkills_EmptyTagNameBecomesUnknown(t *testing.T) {
	api := &stubAPI{skills: leetcode.RawSkillBuckets{
		"advanced": {{ProblemsSolved: 3}},
	}}
	svc, _ := newTestService(api)

	records, err := svc.Skills(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Unknown", records[0].Skill)
}

func TestSkills_EmptyPayload(t *testing.T) {
	api := &stubAPI{skills: leetcode.RawSkillBuckets{}}
	svc, _ := newTestService(api)

	records, err := svc.Skills(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]entity.SkillLevel{
		"advanced":     entity.LevelAdvanced,
		"ADVANCED":     entity.LevelAdvanced,
		"intermediate": entity.LevelIntermediate,
		"fundamental":  entity.LevelFundamental,
		"unrated":      entity.LevelFundamental,
		"":             entity.LevelFundamental,
	}
	for raw, want := range cases {
		level, _ := entity.NormalizeLevel(raw)
		assert.Equal(t, want, level, "raw level %q", raw)
	}
}
