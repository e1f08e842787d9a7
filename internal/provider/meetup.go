package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cityscout/backend/internal/domain"
)

// DefaultMeetupBaseURL is the Meetup events API host.
const DefaultMeetupBaseURL = "https://api.meetup.com"

const (
	// meetupDateLayout renders an event's creation timestamp as
	// weekday/month/day/year/hour: "Mon, Jan 2, 2006, 3 PM".
	meetupDateLayout = "Mon, Jan 2, 2006, 3 PM"

	// meetupCreationHidden is stored when the event omits its creation time.
	meetupCreationHidden = "Hidden"
)

// MeetupClient fetches upcoming events near a set of coordinates.
type MeetupClient struct {
	apiKey  string
	baseURL string
	client  *Client
	now     func() int64
}

// NewMeetupClient constructs a MeetupClient.
func NewMeetupClient(apiKey, baseURL string, client *Client) *MeetupClient {
	return &MeetupClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		now:     domain.NowMillis,
	}
}

type meetupPayload struct {
	Events []meetupEvent `json:"events"`
}

type meetupEvent struct {
	Link    string `json:"link"`
	Name    string `json:"name"`
	Created *int64 `json:"created"` // epoch millis; nil when the event hides it
	Group   struct {
		Name string `json:"name"`
	} `json:"group"`
}

// Fetch returns one Meetup row per upcoming event near the coordinates.
// An event without a group name fails the whole fetch: host is required and
// has no default.
func (m *MeetupClient) Fetch(ctx context.Context, locationID int64, p domain.FetchParams) ([]domain.Meetup, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	q.Set("key", m.apiKey)
	q.Set("sign", "true")
	u := m.baseURL + "/find/upcoming_events?" + q.Encode()

	var payload meetupPayload
	if err := m.client.getJSON(ctx, u, nil, &payload); err != nil {
		return nil, fmt.Errorf("provider.MeetupClient.Fetch: %w", err)
	}

	createdAt := m.now()
	meetups := make([]domain.Meetup, len(payload.Events))
	for i, ev := range payload.Events {
		meetup, err := mapMeetup(ev, locationID, createdAt)
		if err != nil {
			return nil, fmt.Errorf("provider.MeetupClient.Fetch: %w", err)
		}
		meetups[i] = meetup
	}
	return meetups, nil
}

// mapMeetup converts one event into a Meetup row. A hidden creation time
// becomes the literal "Hidden"; a missing group name is a mapping error.
func mapMeetup(ev meetupEvent, locationID, createdAt int64) (domain.Meetup, error) {
	if ev.Group.Name == "" {
		return domain.Meetup{}, fmt.Errorf("%w: event %q has no group name", domain.ErrMapping, ev.Name)
	}

	creationDate := meetupCreationHidden
	if ev.Created != nil {
		creationDate = time.UnixMilli(*ev.Created).Format(meetupDateLayout)
	}

	return domain.Meetup{
		Link:         ev.Link,
		Name:         ev.Name,
		CreationDate: creationDate,
		Host:         ev.Group.Name,
		CreatedAt:    createdAt,
		LocationID:   locationID,
	}, nil
}
