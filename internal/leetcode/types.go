package leetcode

// SubmissionCount is one difficulty bucket in the profile payload's
// parallel submission arrays.
type SubmissionCount struct {
	Difficulty  string `json:"difficulty"`
	Count       int    `json:"count"`
	Submissions int    `json:"submissions"`
}

// MatchedUserStats holds the accepted/total submission breakdowns.
type MatchedUserStats struct {
	AcSubmissionNum    []SubmissionCount `json:"acSubmissionNum"`
	TotalSubmissionNum []SubmissionCount `json:"totalSubmissionNum"`
}

// RawProfile mirrors the `/userProfile/{username}` response. Counter fields
// the API omits decode to zero; Ranking stays nil so callers can tell
// "missing" apart from rank zero.
type RawProfile struct {
	TotalSolved      int              `json:"totalSolved"`
	EasySolved       int              `json:"easySolved"`
	MediumSolved     int              `json:"mediumSolved"`
	HardSolved       int              `json:"hardSolved"`
	Ranking          *int             `json:"ranking"`
	MatchedUserStats MatchedUserStats `json:"matchedUserStats"`
}

// RawSkill is one tag inside a level bucket of the `/{username}/skill`
// response.
type RawSkill struct {
	TagName        string `json:"tagName"`
	ProblemsSolved int    `json:"problemsSolved"`
}

// RawSkillBuckets is the `/{username}/skill` response: level name (as the
// API spells it, usually lowercase) to the tags in that bucket.
type RawSkillBuckets map[string][]RawSkill
