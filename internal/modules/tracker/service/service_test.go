package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"leetboard/internal/model"
	"leetboard/pkg/apperror"
)

// fakeRepo is an in-memory TrackedUserRepository keeping insertion order.
type fakeRepo struct {
	users []model.TrackedUser
}

func (r *fakeRepo) Create(_ context.Context, user *model.TrackedUser) error {
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeRepo) FindByUsername(_ context.Context, username string) (*model.TrackedUser, error) {
	for i := range r.users {
		if r.users[i].Username == username {
			return &r.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) FindAll(_ context.Context) ([]model.TrackedUser, error) {
	out := make([]model.TrackedUser, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, username string) (int64, error) {
	for i := range r.users {
		if r.users[i].Username == username {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeRepo) ReplaceAll(_ context.Context, users []model.TrackedUser) error {
	r.users = make([]model.TrackedUser, len(users))
	copy(r.users, users)
	return nil
}

func TestAddUsers_ParsesCommaSeparatedInput(t *testing.T) {
	svc := NewTrackerService(&fakeRepo{})

	result, err := svc.AddUsers(context.Background(), " alice, bob ,,charlie ")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "charlie"}, result.Added)
	assert.Empty(t, result.AlreadyTracked)
}

func TestAddUsers_IsIdempotent(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewTrackerService(repo)

	_, err := svc.AddUsers(context.Background(), "alice")
	require.NoError(t, err)

	result, err := svc.AddUsers(context.Background(), "alice")
	require.ErrorIs(t, err, apperror.ErrAlreadyExists)
	assert.Empty(t, result.Added)
	assert.Equal(t, []string{"alice"}, result.AlreadyTracked)
	assert.Len(t, repo.users, 1)
}

func TestAddUsers_MixedNewAndExisting(t *testing.T) {
	svc := NewTrackerService(&fakeRepo{})

	_, err := svc.AddUsers(context.Background(), "alice")
	require.NoError(t, err)

	result, err := svc.AddUsers(context.Background(), "alice, bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, result.Added)
	assert.Equal(t, []string{"alice"}, result.AlreadyTracked)
}

func TestAddUsers_RejectsEmptyInput(t *testing.T) {
	svc := NewTrackerService(&fakeRepo{})

	_, err := svc.AddUsers(context.Background(), " , , ")
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestRemoveUser(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewTrackerService(repo)

	_, err := svc.AddUsers(context.Background(), "alice,bob")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveUser(context.Background(), "alice"))
	assert.Len(t, repo.users, 1)

	err = svc.RemoveUser(context.Background(), "alice")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReplaceUsers_PreservesAddedAtForSurvivors(t *testing.T) {
	added := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepo{users: []model.TrackedUser{
		{Username: "alice", AddedAt: added},
		{Username: "bob", AddedAt: added},
	}}
	svc := NewTrackerService(repo)

	users, err := svc.ReplaceUsers(context.Background(), []string{"alice", "charlie"})
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, added, users[0].AddedAt)
	assert.Equal(t, "charlie", users[1].Username)
	assert.NotEqual(t, added, users[1].AddedAt)

	all, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReplaceUsers_DropsDuplicatesAndBlanks(t *testing.T) {
	svc := NewTrackerService(&fakeRepo{})

	users, err := svc.ReplaceUsers(context.Background(), []string{"alice", " alice ", "", "bob"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}
