package model

import "fmt"

type PosterSize string

const (
	PosterW500     PosterSize = "w500"
	PosterW780     PosterSize = "w780"
	PosterOriginal PosterSize = "original"
)

type BackdropSize string

const (
	BackdropW780     BackdropSize = "w780"
	BackdropW1280    BackdropSize = "w1280"
	BackdropOriginal BackdropSize = "original"
)

const (
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"

	PosterPlaceholder   = "/placeholder-movie.png"
	BackdropPlaceholder = "/placeholder-backdrop.png"
)

func ParsePosterSize(s string) (PosterSize, error) {
	switch PosterSize(s) {
	case "":
		return PosterW500, nil
	case PosterW500, PosterW780, PosterOriginal:
		return PosterSize(s), nil
	}
	return "", fmt.Errorf("unknown poster size %q", s)
}

// PosterURL never touches the network.
func PosterURL(imageBase string, path *string, size PosterSize) string {
	if path == nil || *path == "" {
		return PosterPlaceholder
	}
	if size == "" {
		size = PosterW500
	}
	return imageURL(imageBase, string(size), *path)
}

func BackdropURL(imageBase string, path *string, size BackdropSize) string {
	if path == nil || *path == "" {
		return BackdropPlaceholder
	}
	if size == "" {
		size = BackdropW1280
	}
	return imageURL(imageBase, string(size), *path)
}

func imageURL(base, size, path string) string {
	if base == "" {
		base = DefaultImageBaseURL
	}
	return base + "/" + size + path
}
