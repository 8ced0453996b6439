package service

import "sync"

// Session is the per-process run state: the remote rank observed for each
// username on the previous pipeline run. It starts empty and is reset by
// "Refresh All" together with the response cache.
type Session struct {
	mu        sync.Mutex
	prevRanks map[string]*int
}

func NewSession() *Session {
	return &Session{prevRanks: make(map[string]*int)}
}

// PreviousRank returns the rank recorded on the prior run, or nil when the
// user has not been observed yet (or had no reported rank).
func (s *Session) PreviousRank(username string) *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prevRanks[username]
}

// RecordRank stores the rank seen this run; nil records "N/A".
func (s *Session) RecordRank(username string, rank *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prevRanks[username] = rank
}

// Reset clears all recorded ranks.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prevRanks = make(map[string]*int)
}
