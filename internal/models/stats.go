package models

// UserStats is the user slice of the admin dashboard.
type UserStats struct {
	TotalUsers  int64 `json:"total_users"`
	BannedUsers int64 `json:"banned_users"`
	NewUsers30d int64 `json:"new_users_30d"`
}

// SwapStats is the swap slice of the admin dashboard.
type SwapStats struct {
	TotalSwaps     int64 `json:"total_swaps"`
	PendingSwaps   int64 `json:"pending_swaps"`
	AcceptedSwaps  int64 `json:"accepted_swaps"`
	CompletedSwaps int64 `json:"completed_swaps"`
	NewSwaps30d    int64 `json:"new_swaps_30d"`
}

// RatingStats is the rating slice of the admin dashboard.
type RatingStats struct {
	AvgRating    float64 `json:"avg_rating"`
	TotalRatings int64   `json:"total_ratings"`
}

// PlatformStats is the full admin dashboard payload.
type PlatformStats struct {
	Users         UserStats      `json:"users"`
	Swaps         SwapStats      `json:"swaps"`
	PopularSkills []PopularSkill `json:"popular_skills"`
	Ratings       RatingStats    `json:"ratings"`
}
