package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"leetboard/internal/model"
	"leetboard/internal/modules/tracker/dto"
	"leetboard/internal/modules/tracker/repository"
	"leetboard/pkg/apperror"
)

type TrackerService interface {
	// AddUsers parses a comma-separated username list and tracks every name
	// not already on the list. Adding an existing name is a no-op reported
	// back in AlreadyTracked.
	AddUsers(ctx context.Context, raw string) (*dto.AddUsersResult, error)
	RemoveUser(ctx context.Context, username string) error
	ListUsers(ctx context.Context) ([]model.TrackedUser, error)
	// ReplaceUsers applies a direct edit of the list. AddedAt is preserved
	// for usernames that survive the edit.
	ReplaceUsers(ctx context.Context, usernames []string) ([]model.TrackedUser, error)
}

type trackerService struct {
	repo repository.TrackedUserRepository

	// Serializes list writes; a single session is assumed but concurrent
	// HTTP requests must not interleave add/remove/replace.
	mu sync.Mutex
}

func NewTrackerService(repo repository.TrackedUserRepository) TrackerService {
	return &trackerService{repo: repo}
}

func (s *trackerService) AddUsers(ctx context.Context, raw string) (*dto.AddUsersResult, error) {
	usernames := splitUsernames(raw)
	if len(usernames) == 0 {
		return nil, apperror.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := &dto.AddUsersResult{
		Added:          []string{},
		AlreadyTracked: []string{},
	}

	for _, username := range usernames {
		_, err := s.repo.FindByUsername(ctx, username)
		if err == nil {
			result.AlreadyTracked = append(result.AlreadyTracked, username)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		user := &model.TrackedUser{Username: username, AddedAt: time.Now()}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}
		result.Added = append(result.Added, username)
	}

	if len(result.Added) == 0 {
		return result, apperror.ErrAlreadyExists
	}

	return result, nil
}

func (s *trackerService) RemoveUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.repo.Delete(ctx, username)
	if err != nil {
		return err
	}
	if removed == 0 {
		return apperror.ErrNotFound
	}

	return nil
}

func (s *trackerService) ListUsers(ctx context.Context) ([]model.TrackedUser, error) {
	return s.repo.FindAll(ctx)
}

func (s *trackerService) ReplaceUsers(ctx context.Context, usernames []string) ([]model.TrackedUser, error) {
	cleaned := dedupe(usernames)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]model.TrackedUser, len(current))
	for _, user := range current {
		existing[user.Username] = user
	}

	users := make([]model.TrackedUser, 0, len(cleaned))
	for _, username := range cleaned {
		if prev, ok := existing[username]; ok {
			users = append(users, prev)
			continue
		}
		users = append(users, model.TrackedUser{Username: username, AddedAt: time.Now()})
	}

	if err := s.repo.ReplaceAll(ctx, users); err != nil {
		return nil, err
	}

	return users, nil
}

func splitUsernames(raw string) []string {
	parts := strings.Split(raw, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return dedupe(cleaned)
}

func dedupe(usernames []string) []string {
	seen := make(map[string]bool, len(usernames))
	out := make([]string, 0, len(usernames))
	for _, username := range usernames {
		username = strings.TrimSpace(username)
		if username == "" || seen[username] {
			continue
		}
		seen[username] = true
		out = append(out, username)
	}
	return out
}
