package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityscout/backend/internal/domain"
	"github.com/cityscout/backend/internal/handler"
)

// mockLocationResolver is a test double for handler.LocationResolver.
type mockLocationResolver struct {
	calls int
	loc   domain.Location
	err   error
}

func (m *mockLocationResolver) Resolve(_ context.Context, _ string) (domain.Location, error) {
	m.calls++
	return m.loc, m.err
}

var _ handler.LocationResolver = (*mockLocationResolver)(nil)

// mockEntryResolver is a test double for handler.EntryResolver, shared by
// every cached domain. It records the key and params it was called with.
type mockEntryResolver[T domain.Entry] struct {
	calls      int
	locationID int64
	params     domain.FetchParams
	rows       []T
	err        error
}

func (m *mockEntryResolver[T]) Resolve(_ context.Context, locationID int64, p domain.FetchParams) ([]T, error) {
	m.calls++
	m.locationID = locationID
	m.params = p
	return m.rows, m.err
}

var _ handler.EntryResolver[domain.Forecast] = (*mockEntryResolver[domain.Forecast])(nil)

// mockTrailFinder is a test double for handler.TrailFinder.
type mockTrailFinder struct {
	calls  int
	trails []domain.Trail
	err    error
}

func (m *mockTrailFinder) Find(_ context.Context, _ domain.FetchParams) ([]domain.Trail, error) {
	m.calls++
	return m.trails, m.err
}

var _ handler.TrailFinder = (*mockTrailFinder)(nil)

// deps bundles one mock per route so tests only fill in what they exercise.
type deps struct {
	locations   *mockLocationResolver
	forecasts   *mockEntryResolver[domain.Forecast]
	restaurants *mockEntryResolver[domain.Restaurant]
	movies      *mockEntryResolver[domain.Movie]
	meetups     *mockEntryResolver[domain.Meetup]
	trails      *mockTrailFinder
}

func newDeps() *deps {
	return &deps{
		locations:   &mockLocationResolver{},
		forecasts:   &mockEntryResolver[domain.Forecast]{},
		restaurants: &mockEntryResolver[domain.Restaurant]{},
		movies:      &mockEntryResolver[domain.Movie]{},
		meetups:     &mockEntryResolver[domain.Meetup]{},
		trails:      &mockTrailFinder{},
	}
}

// newHTTPHandler wires a Server with the given mocks into its router,
// mirroring how main.go wires it in production.
func newHTTPHandler(d *deps) http.Handler {
	log := slog.New(slog.DiscardHandler)
	return handler.NewServer(d.locations, d.forecasts, d.restaurants, d.movies, d.meetups, d.trails, log).Routes()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// coordQuery builds the qs-extended query string the frontend sends.
func coordQuery(id, lat, lng string) string {
	q := url.Values{}
	q.Set("data[id]", id)
	q.Set("data[latitude]", lat)
	q.Set("data[longitude]", lng)
	return q.Encode()
}

// ---- GET /location ---------------------------------------------------------

func TestGetLocation_200(t *testing.T) {
	d := newDeps()
	d.locations.loc = domain.Location{
		ID:             42,
		SearchQuery:    "Seattle",
		FormattedQuery: "Seattle, WA, USA",
		Latitude:       47.6062095,
		Longitude:      -122.3320708,
		CreatedAt:      1748800000000,
	}

	rec := get(t, newHTTPHandler(d), "/location?data=Seattle")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.Location
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "Seattle, WA, USA", resp.FormattedQuery)
	assert.Equal(t, 47.6062095, resp.Latitude)
	assert.Equal(t, -122.3320708, resp.Longitude)
}

func TestGetLocation_400_MissingData(t *testing.T) {
	d := newDeps()

	rec := get(t, newHTTPHandler(d), "/location")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, d.locations.calls, "resolver must not run without a query")
}

func TestGetLocation_500_FixedBody(t *testing.T) {
	d := newDeps()
	d.locations.err = domain.ErrUpstream

	rec := get(t, newHTTPHandler(d), "/location?data=Seattle")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Sorry, something went wrong\n", rec.Body.String(),
		"failures answer with the fixed plain-text body, no error detail")
}

// ---- GET /weather ----------------------------------------------------------

func TestGetWeather_200(t *testing.T) {
	d := newDeps()
	d.forecasts.rows = []domain.Forecast{
		{Forecast: "Cloudy.", Time: "Mon Jun 02 2025", CreatedAt: 1748800000000, LocationID: 5},
		{Forecast: "Sunny.", Time: "Tue Jun 03 2025", CreatedAt: 1748800000000, LocationID: 5},
	}

	rec := get(t, newHTTPHandler(d), "/weather?"+coordQuery("5", "47.6", "-122.3"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.Forecast
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "Cloudy.", resp[0].Forecast)

	assert.Equal(t, int64(5), d.forecasts.locationID)
	assert.Equal(t, 47.6, d.forecasts.params.Latitude)
	assert.Equal(t, -122.3, d.forecasts.params.Longitude)
}

func TestGetWeather_400_MissingID(t *testing.T) {
	d := newDeps()

	rec := get(t, newHTTPHandler(d), "/weather?data[latitude]=47.6&data[longitude]=-122.3")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, d.forecasts.calls)
}

func TestGetWeather_400_MalformedLatitude(t *testing.T) {
	d := newDeps()

	rec := get(t, newHTTPHandler(d), "/weather?"+coordQuery("5", "north-ish", "-122.3"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, d.forecasts.calls)
}

func TestGetWeather_500_FixedBody(t *testing.T) {
	d := newDeps()
	d.forecasts.err = domain.ErrStore

	rec := get(t, newHTTPHandler(d), "/weather?"+coordQuery("5", "47.6", "-122.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Sorry, something went wrong\n", rec.Body.String())
}

// ---- GET /yelp -------------------------------------------------------------

func TestGetRestaurants_200(t *testing.T) {
	d := newDeps()
	d.restaurants.rows = []domain.Restaurant{
		{Name: "Pike Place Chowder", Price: "$$", Rating: 4.5, LocationID: 5},
	}

	rec := get(t, newHTTPHandler(d), "/yelp?"+coordQuery("5", "47.6", "-122.3"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.Restaurant
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Pike Place Chowder", resp[0].Name)
}

// ---- GET /movies -----------------------------------------------------------

func TestGetMovies_200_PassesSearchQuery(t *testing.T) {
	d := newDeps()
	d.movies.rows = []domain.Movie{{Title: "Sleepless in Seattle", LocationID: 5}}

	q := url.Values{}
	q.Set("data[id]", "5")
	q.Set("data[search_query]", "Seattle")
	rec := get(t, newHTTPHandler(d), "/movies?"+q.Encode())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), d.movies.locationID)
	assert.Equal(t, "Seattle", d.movies.params.Query)
}

func TestGetMovies_400_MissingSearchQuery(t *testing.T) {
	d := newDeps()

	rec := get(t, newHTTPHandler(d), "/movies?data[id]=5")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, d.movies.calls)
}

// ---- GET /meetups ----------------------------------------------------------

func TestGetMeetups_200(t *testing.T) {
	d := newDeps()
	d.meetups.rows = []domain.Meetup{{Name: "Go Night", Host: "Seattle Gophers", LocationID: 5}}

	rec := get(t, newHTTPHandler(d), "/meetups?"+coordQuery("5", "47.6", "-122.3"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.Meetup
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Seattle Gophers", resp[0].Host)
}

// ---- GET /trails -----------------------------------------------------------

func TestGetTrails_200(t *testing.T) {
	d := newDeps()
	d.trails.trails = []domain.Trail{{Name: "Rattlesnake Ledge", ConditionDate: "n/a", ConditionTime: "n/a"}}

	q := url.Values{}
	q.Set("data[latitude]", "47.4")
	q.Set("data[longitude]", "-121.8")
	rec := get(t, newHTTPHandler(d), "/trails?"+q.Encode())

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.Trail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Rattlesnake Ledge", resp[0].Name)
}

func TestGetTrails_500_FixedBody(t *testing.T) {
	d := newDeps()
	d.trails.err = domain.ErrUpstream

	q := url.Values{}
	q.Set("data[latitude]", "47.4")
	q.Set("data[longitude]", "-121.8")
	rec := get(t, newHTTPHandler(d), "/trails?"+q.Encode())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Sorry, something went wrong\n", rec.Body.String())
}

// ---- GET /healthz ----------------------------------------------------------

func TestGetHealth_200(t *testing.T) {
	rec := get(t, newHTTPHandler(newDeps()), "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}
