package infra_tmdb

import "github.com/krishkpatil/getflix/internal/model"

type genresResponse struct {
	Genres []model.Genre `json:"genres"`
}
