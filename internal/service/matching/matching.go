package matching

import (
	"math"

	"github.com/krishkpatil/getflix/internal/model"
)

// MatchedMovieIDs returns movies both participants swiped positively on.
func MatchedMovieIDs(a, b model.Swipes) model.MovieSet {
	matched := make(model.MovieSet)
	for id, action := range a {
		if !action.IsPositive() {
			continue
		}
		if other, ok := b[id]; ok && other.IsPositive() {
			matched[id] = struct{}{}
		}
	}
	return matched
}

// MatchPercentage is relative to the number of movies swiped by a, not b.
// Callers must keep the argument order stable to get stable results.
func MatchPercentage(a, b model.Swipes) int {
	if len(a) == 0 {
		return 0
	}
	matched := len(MatchedMovieIDs(a, b))
	return int(math.Round(float64(matched) / float64(len(a)) * 100))
}

// SessionStats counts likes and superlikes of both users over the movies a swiped.
// A superlike counts as a like too.
func SessionStats(a, b model.Swipes) model.SessionStats {
	stats := model.SessionStats{
		TotalMovies:     len(a),
		MatchCount:      len(MatchedMovieIDs(a, b)),
		MatchPercentage: MatchPercentage(a, b),
	}

	for id, action := range a {
		if action.IsPositive() {
			stats.User1Likes++
		}
		if action == model.ActionSuperlike {
			stats.User1SuperLikes++
		}

		other := b[id]
		if other.IsPositive() {
			stats.User2Likes++
		}
		if other == model.ActionSuperlike {
			stats.User2SuperLikes++
		}
	}

	return stats
}

// MatchResults lists matched deck movies in deck order.
func MatchResults(deck []model.Movie, a, b model.Swipes) []model.MatchResult {
	matched := MatchedMovieIDs(a, b)
	results := make([]model.MatchResult, 0, len(matched))
	for _, m := range deck {
		if !matched.Has(m.ID) {
			continue
		}
		results = append(results, model.MatchResult{
			Movie:       m,
			User1Action: a[m.ID],
			User2Action: b[m.ID],
			MatchType:   matchTypeOf(a[m.ID], b[m.ID]),
		})
	}
	return results
}

func matchTypeOf(x, y model.SwipeAction) model.MatchType {
	switch {
	case x == model.ActionSuperlike && y == model.ActionSuperlike:
		return model.MatchBothSuperlike
	case x == model.ActionSuperlike || y == model.ActionSuperlike:
		return model.MatchOneSuperlike
	}
	return model.MatchBothLike
}
