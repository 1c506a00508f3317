package model

import (
	"fmt"
	"time"
)

type SwipeAction string

const (
	ActionLike      SwipeAction = "like"
	ActionPass      SwipeAction = "pass"
	ActionSuperlike SwipeAction = "superlike"
)

func ParseSwipeAction(s string) (SwipeAction, error) {
	switch a := SwipeAction(s); a {
	case ActionLike, ActionPass, ActionSuperlike:
		return a, nil
	}
	return "", fmt.Errorf("unknown swipe action %q", s)
}

// IsPositive reports whether the action counts towards a match.
func (a SwipeAction) IsPositive() bool {
	return a == ActionLike || a == ActionSuperlike
}

type Swipes map[MovieID]SwipeAction

type UserSwipes struct {
	SessionID     SessionID     `json:"session_id"`
	ParticipantID ParticipantID `json:"participant_id"`
	Swipes        Swipes        `json:"swipes"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

func (u *UserSwipes) Completed() bool {
	return u != nil && u.CompletedAt != nil
}

// SwipesKey is the composite document key of a UserSwipes record.
func SwipesKey(sessionID SessionID, participantID ParticipantID) string {
	return sessionID + "_" + participantID
}

// Cursor is the index of the first deck movie not yet swiped.
func Cursor(deck []Movie, swipes Swipes) int {
	for i, m := range deck {
		if _, ok := swipes[m.ID]; !ok {
			return i
		}
	}
	return len(deck)
}
