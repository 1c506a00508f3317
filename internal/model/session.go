package model

import (
	"fmt"
	"slices"
	"time"
)

type SessionID = string

type ParticipantID = string

// MaxParticipants is the capacity of a matching session.
const MaxParticipants = 2

type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
)

type Timeframe string

const (
	TimeframeFiveYears Timeframe = "5"
	TimeframeTenYears  Timeframe = "10"
	TimeframeAll       Timeframe = "all"
)

const EarliestReleaseYear = 1900

type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (t Timeframe) YearRange(now time.Time) (YearRange, error) {
	year := now.Year()
	switch t {
	case TimeframeFiveYears:
		return YearRange{From: year - 5, To: year}, nil
	case TimeframeTenYears:
		return YearRange{From: year - 10, To: year}, nil
	case TimeframeAll:
		return YearRange{From: EarliestReleaseYear, To: year}, nil
	}
	return YearRange{}, fmt.Errorf("unknown timeframe %q", string(t))
}

type Region string

const (
	RegionHollywood Region = "hollywood"
	RegionBollywood Region = "bollywood"
	RegionAll       Region = "all"
)

// LanguageCode returns "" for RegionAll, which means no language constraint.
func (r Region) LanguageCode() (string, error) {
	switch r {
	case RegionHollywood:
		return "en", nil
	case RegionBollywood:
		return "hi", nil
	case RegionAll:
		return "", nil
	}
	return "", fmt.Errorf("unknown region %q", string(r))
}

type SessionFilters struct {
	Genres     []int     `json:"genres"`
	YearRange  YearRange `json:"year_range"`
	MinRating  float64   `json:"min_rating"`
	MovieCount int       `json:"movie_count"`
	Language   string    `json:"language,omitempty"`
}

type MatchSession struct {
	ID           SessionID       `json:"id"`
	CreatedBy    ParticipantID   `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	Movies       []Movie         `json:"movies"`
	Filters      SessionFilters  `json:"filters"`
	Participants []ParticipantID `json:"participants"`
	Status       SessionStatus   `json:"status"`
}

func (s *MatchSession) HasParticipant(id ParticipantID) bool {
	return slices.Contains(s.Participants, id)
}

// DeckIndex returns the position of movieID in the deck or -1.
func (s *MatchSession) DeckIndex(movieID MovieID) int {
	return slices.IndexFunc(s.Movies, func(m Movie) bool {
		return m.ID == movieID
	})
}

// Partner returns the other participant, if one has joined.
func (s *MatchSession) Partner(id ParticipantID) (ParticipantID, bool) {
	for _, p := range s.Participants {
		if p != id {
			return p, true
		}
	}
	return "", false
}
