package service

import (
	"math"

	"leetboard/internal/leetcode"
)

// ComputeAccuracy derives the submission-accuracy percentage from the
// profile's parallel accepted/total submission arrays, using the "All"
// difficulty bucket. Malformed or missing data yields 0.0, never an error.
func ComputeAccuracy(profile *leetcode.RawProfile) float64 {
	if profile == nil {
		return 0.0
	}

	accepted, okAccepted := allBucket(profile.MatchedUserStats.AcSubmissionNum)
	total, okTotal := allBucket(profile.MatchedUserStats.TotalSubmissionNum)
	if !okAccepted || !okTotal || total == 0 {
		return 0.0
	}

	pct := float64(accepted) / float64(total) * 100
	return math.Round(pct*100) / 100
}

func allBucket(buckets []leetcode.SubmissionCount) (int, bool) {
	for _, bucket := range buckets {
		if bucket.Difficulty == "All" {
			return bucket.Submissions, true
		}
	}
	return 0, false
}
