package model

type MovieID = int64

type Movie struct {
	ID               MovieID `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	Overview         string  `json:"overview"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	ReleaseDate      string  `json:"release_date"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
	Adult            bool    `json:"adult"`
}

type MovieDetails struct {
	Movie

	Genres   []Genre `json:"genres"`
	Runtime  int     `json:"runtime"`
	Budget   int64   `json:"budget"`
	Revenue  int64   `json:"revenue"`
	Status   string  `json:"status"`
	Tagline  string  `json:"tagline"`
	Homepage string  `json:"homepage"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// DiscoverQuery describes a filtered catalog lookup. Zero values mean "no constraint".
type DiscoverQuery struct {
	GenreIDs  []int
	Page      int
	YearRange *YearRange
	MinRating float64
	Language  string
	Region    string
}

type MovieSet map[MovieID]struct{}

func (s MovieSet) Has(id MovieID) bool {
	_, ok := s[id]
	return ok
}
