package entities

// LeaderboardEntry is one row of the weekly XP leaderboard.
type LeaderboardEntry struct {
	Rank        int
	UserID      int64
	DisplayName string
	WeeklyXP    int
}
