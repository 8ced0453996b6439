package dto

// AddUsersRequest carries the sidebar's comma-separated username input.
type AddUsersRequest struct {
	Usernames string `json:"usernames" binding:"required"`
}

// AddUsersResult reports which names were newly tracked and which were
// already on the list.
type AddUsersResult struct {
	Added          []string `json:"added"`
	AlreadyTracked []string `json:"already_tracked"`
}

// ReplaceUsersRequest carries a full edit of the tracked list.
type ReplaceUsersRequest struct {
	Usernames []string `json:"usernames" binding:"required"`
}

type RemoveUserRequest struct {
	Username string `uri:"username" binding:"required"`
}
