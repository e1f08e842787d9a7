package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cityscout/backend/internal/domain"
)

// DefaultMovieBaseURL is The Movie Database API host.
const DefaultMovieBaseURL = "https://api.themoviedb.org"

const (
	// moviePosterTemplate prefixes TMDB poster paths. The double slash is
	// what the image host actually serves under.
	moviePosterTemplate = "http://image.tmdb.org/t/p/w185//"

	// moviePlaceholderImage is stored when a movie has no poster.
	moviePlaceholderImage = "https://via.placeholder.com/150"
)

// MovieClient searches movies by the location's search term via TMDB.
type MovieClient struct {
	apiKey  string
	baseURL string
	client  *Client
	now     func() int64
}

// NewMovieClient constructs a MovieClient.
func NewMovieClient(apiKey, baseURL string, client *Client) *MovieClient {
	return &MovieClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		now:     domain.NowMillis,
	}
}

type moviePayload struct {
	Results []movieResult `json:"results"`
}

type movieResult struct {
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
	PosterPath  *string `json:"poster_path"`
	Popularity  float64 `json:"popularity"`
	ReleaseDate string  `json:"release_date"`
}

// Fetch returns one Movie row per search result for the location's query
// string. Latitude/longitude are unused — movie search is text-driven.
func (m *MovieClient) Fetch(ctx context.Context, locationID int64, p domain.FetchParams) ([]domain.Movie, error) {
	q := url.Values{}
	q.Set("api_key", m.apiKey)
	q.Set("include_adult", "false")
	q.Set("include_video", "false")
	q.Set("query", p.Query)
	u := m.baseURL + "/3/search/movie?" + q.Encode()

	var payload moviePayload
	if err := m.client.getJSON(ctx, u, nil, &payload); err != nil {
		return nil, fmt.Errorf("provider.MovieClient.Fetch: %w", err)
	}

	createdAt := m.now()
	movies := make([]domain.Movie, len(payload.Results))
	for i, res := range payload.Results {
		movies[i] = mapMovie(res, locationID, createdAt)
	}
	return movies, nil
}

// mapMovie converts one TMDB result into a Movie row.
// A null poster path becomes the fixed placeholder image.
func mapMovie(res movieResult, locationID, createdAt int64) domain.Movie {
	imageURL := moviePlaceholderImage
	if res.PosterPath != nil {
		imageURL = moviePosterTemplate + *res.PosterPath
	}
	return domain.Movie{
		Title:        res.Title,
		Overview:     res.Overview,
		AverageVotes: res.VoteAverage,
		TotalVotes:   res.VoteCount,
		ImageURL:     imageURL,
		Popularity:   res.Popularity,
		ReleasedOn:   res.ReleaseDate,
		CreatedAt:    createdAt,
		LocationID:   locationID,
	}
}
