package model

import "strconv"

type RatingColor string

const (
	RatingGreen  RatingColor = "green"
	RatingOrange RatingColor = "orange"
	RatingRed    RatingColor = "red"
)

func RatingColorOf(rating float64) RatingColor {
	switch {
	case rating >= 8:
		return RatingGreen
	case rating >= 5:
		return RatingOrange
	}
	return RatingRed
}

func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 1, 64)
}
