package model

type SessionStats struct {
	TotalMovies     int `json:"total_movies"`
	MatchCount      int `json:"match_count"`
	MatchPercentage int `json:"match_percentage"`
	User1Likes      int `json:"user1_likes"`
	User2Likes      int `json:"user2_likes"`
	User1SuperLikes int `json:"user1_super_likes"`
	User2SuperLikes int `json:"user2_super_likes"`
}

type MatchType string

const (
	MatchBothLike      MatchType = "both-like"
	MatchOneSuperlike  MatchType = "one-superlike"
	MatchBothSuperlike MatchType = "both-superlike"
)

type MatchResult struct {
	Movie       Movie       `json:"movie"`
	User1Action SwipeAction `json:"user1_action"`
	User2Action SwipeAction `json:"user2_action"`
	MatchType   MatchType   `json:"match_type"`
}
