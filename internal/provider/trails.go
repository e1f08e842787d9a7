package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cityscout/backend/internal/domain"
)

// DefaultTrailBaseURL is the Hiking Project API host.
const DefaultTrailBaseURL = "https://www.hikingproject.com"

const (
	// trailConditionUnknown is the provider's status for trails it has no
	// condition report for.
	trailConditionUnknown = "Unknown"

	// trailConditionNA is stored for date and time when conditions are
	// unknown or the condition timestamp is unparseable.
	trailConditionNA = "n/a"

	// trailTimestampLayout is the format the provider reports condition
	// timestamps in.
	trailTimestampLayout = "2006-01-02 15:04:05"

	trailDateLayout = "Mon Jan 02 2006"
	trailTimeLayout = "15:04:05"
)

// TrailClient fetches hiking trails near a set of coordinates. Trails are
// the one pass-through domain: the payload goes straight to the caller,
// never to the store.
type TrailClient struct {
	apiKey  string
	baseURL string
	client  *Client
	now     func() int64
}

// NewTrailClient constructs a TrailClient.
func NewTrailClient(apiKey, baseURL string, client *Client) *TrailClient {
	return &TrailClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		now:     domain.NowMillis,
	}
}

type trailPayload struct {
	Trails []trailResult `json:"trails"`
}

type trailResult struct {
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	Length          float64 `json:"length"`
	Stars           float64 `json:"stars"`
	StarVotes       int64   `json:"starVotes"`
	Summary         string  `json:"summary"`
	URL             string  `json:"url"`
	ConditionStatus string  `json:"conditionStatus"`
	ConditionDate   string  `json:"conditionDate"`
}

// Fetch returns one Trail per result within 10 miles of the coordinates.
func (t *TrailClient) Fetch(ctx context.Context, p domain.FetchParams) ([]domain.Trail, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	q.Set("maxDistance", "10")
	q.Set("key", t.apiKey)
	u := t.baseURL + "/data/get-trails?" + q.Encode()

	var payload trailPayload
	if err := t.client.getJSON(ctx, u, nil, &payload); err != nil {
		return nil, fmt.Errorf("provider.TrailClient.Fetch: %w", err)
	}

	createdAt := t.now()
	trails := make([]domain.Trail, len(payload.Trails))
	for i, res := range payload.Trails {
		trails[i] = mapTrail(res, createdAt)
	}
	return trails, nil
}

// mapTrail converts one provider trail into a Trail. Unknown conditions map
// date and time to "n/a"; otherwise both are derived from the condition
// timestamp.
func mapTrail(res trailResult, createdAt int64) domain.Trail {
	trail := domain.Trail{
		Name:          res.Name,
		Location:      res.Location,
		Length:        res.Length,
		Stars:         res.Stars,
		StarVotes:     res.StarVotes,
		Summary:       res.Summary,
		TrailURL:      res.URL,
		Conditions:    res.ConditionStatus,
		ConditionDate: trailConditionNA,
		ConditionTime: trailConditionNA,
		CreatedAt:     createdAt,
	}

	if res.ConditionStatus != trailConditionUnknown {
		if reported, err := time.Parse(trailTimestampLayout, res.ConditionDate); err == nil {
			trail.ConditionDate = reported.Format(trailDateLayout)
			trail.ConditionTime = reported.Format(trailTimeLayout)
		}
	}

	return trail
}
