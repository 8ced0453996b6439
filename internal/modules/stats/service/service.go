package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"leetboard/internal/entity"
	"leetboard/internal/leetcode"
	"leetboard/pkg/cache"
)

// StatsService fetches and normalizes per-user statistics from the remote
// API. Responses are cached with a TTL; within the window repeated calls
// never hit the network, and singleflight guarantees at most one in-flight
// fetch per (endpoint, username).
type StatsService interface {
	Profile(ctx context.Context, username string) (*entity.ProfileStats, error)
	Skills(ctx context.Context, username string) ([]entity.SkillRecord, error)
	// ClearCache drops every cached response ("Refresh All").
	ClearCache(ctx context.Context) error
}

type statsService struct {
	client leetcode.API
	store  cache.Store
	ttl    time.Duration
	now    func() time.Time
	group  singleflight.Group
}

func NewStatsService(client leetcode.API, store cache.Store, ttl time.Duration) StatsService {
	return &statsService{
		client: client,
		store:  store,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *statsService) Profile(ctx context.Context, username string) (*entity.ProfileStats, error) {
	payload, err := s.cachedFetch(ctx, "profile:"+username, func() (any, error) {
		return s.client.Profile(ctx, username)
	})
	if err != nil {
		return nil, err
	}

	var raw leetcode.RawProfile
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}

	return &entity.ProfileStats{
		Username:     username,
		TotalSolved:  raw.TotalSolved,
		EasySolved:   raw.EasySolved,
		MediumSolved: raw.MediumSolved,
		HardSolved:   raw.HardSolved,
		AccuracyPct:  ComputeAccuracy(&raw),
		Ranking:      raw.Ranking,
	}, nil
}

func (s *statsService) Skills(ctx context.Context, username string) ([]entity.SkillRecord, error) {
	payload, err := s.cachedFetch(ctx, "skill:"+username, func() (any, error) {
		return s.client.Skills(ctx, username)
	})
	if err != nil {
		return nil, err
	}

	var buckets leetcode.RawSkillBuckets
	if err := json.Unmarshal(payload, &buckets); err != nil {
		return nil, err
	}

	return flattenSkills(username, buckets), nil
}

func (s *statsService) ClearCache(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// cachedFetch is the read-through path shared by both endpoints. Cache
// lookup failures degrade to a refetch rather than failing the caller.
func (s *statsService) cachedFetch(ctx context.Context, key string, fetch func() (any, error)) (json.RawMessage, error) {
	entry, err := s.store.Get(ctx, key)
	if err != nil {
		log.Printf("[Cache] lookup failed for %s: %v", key, err)
	}
	if entry != nil && !entry.Expired(s.now(), s.ttl) {
		return entry.Payload, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		fetched, err := fetch()
		if err != nil {
			return nil, err
		}

		payload, err := json.Marshal(fetched)
		if err != nil {
			return nil, err
		}

		cacheEntry := &cache.Entry{Payload: payload, FetchedAt: s.now()}
		if err := s.store.Set(ctx, key, cacheEntry); err != nil {
			log.Printf("[Cache] store failed for %s: %v", key, err)
		}

		return json.RawMessage(payload), nil
	})
	if err != nil {
		return nil, err
	}

	return result.(json.RawMessage), nil
}

// flattenSkills turns the nested per-level payload into a flat record list
// sorted by (level order, problems solved desc). Buckets are walked in
// level order so ties keep a stable, reproducible ordering.
func flattenSkills(username string, buckets leetcode.RawSkillBuckets) []entity.SkillRecord {
	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		li, _ := entity.NormalizeLevel(names[i])
		lj, _ := entity.NormalizeLevel(names[j])
		if li.Order() != lj.Order() {
			return li.Order() < lj.Order()
		}
		return names[i] < names[j]
	})

	var records []entity.SkillRecord
	for _, name := range names {
		level, known := entity.NormalizeLevel(name)
		if !known {
			// Coerced to Fundamental; surfaced because a new bucket name
			// usually means the API schema changed underneath us.
			log.Printf("[Skills] unknown level %q for %s, treating as %s", name, username, level)
		}

		for _, skill := range buckets[name] {
			tag := skill.TagName
			if tag == "" {
				tag = "Unknown"
			}
			records = append(records, entity.SkillRecord{
				Username:       username,
				Level:          level,
				Skill:          tag,
				ProblemsSolved: skill.ProblemsSolved,
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Level.Order() != records[j].Level.Order() {
			return records[i].Level.Order() < records[j].Level.Order()
		}
		return records[i].ProblemsSolved > records[j].ProblemsSolved
	})

	return records
}
