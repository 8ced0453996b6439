package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankDelta(t *testing.T) {
	prev500, prev300, cur300, cur500 := 500, 300, 300, 500

	// Rank number shrinking means the user climbed.
	assert.Equal(t, "Up 200", RankDelta(&prev500, &cur300))
	assert.Equal(t, "Down 200", RankDelta(&prev300, &cur500))
	assert.Equal(t, "No change", RankDelta(&prev300, &cur300))
}

func TestRankDelta_UnknownObservations(t *testing.T) {
	cur := 300
	prev := 500

	assert.Equal(t, "", RankDelta(nil, &cur))
	assert.Equal(t, "", RankDelta(&prev, nil))
	assert.Equal(t, "", RankDelta(nil, nil))
}

func TestSession(t *testing.T) {
	session := NewSession()
	assert.Nil(t, session.PreviousRank("alice"))

	rank := 1200
	session.RecordRank("alice", &rank)
	got := session.PreviousRank("alice")
	assert.NotNil(t, got)
	assert.Equal(t, 1200, *got)

	session.RecordRank("alice", nil)
	assert.Nil(t, session.PreviousRank("alice"))

	session.RecordRank("bob", &rank)
	session.Reset()
	assert.Nil(t, session.PreviousRank("bob"))
}
