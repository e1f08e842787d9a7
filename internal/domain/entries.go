package domain

// Entry is implemented by every cached row type. The cached resolver only
// needs the write-time timestamp to decide freshness, so that is the whole
// contract.
type Entry interface {
	Written() int64
}

// Forecast is one day of weather for a location.
// Time is a human-readable date prefix ("Mon Jan 02 2006"), not a timestamp.
type Forecast struct {
	ID         int64  `json:"-"`
	Forecast   string `json:"forecast"`
	Time       string `json:"time"`
	CreatedAt  int64  `json:"created_at"`
	LocationID int64  `json:"location_id"`
}

// Written returns the epoch-millisecond timestamp set at row construction.
func (f Forecast) Written() int64 { return f.CreatedAt }

// Restaurant is one business-search result for a location.
// Price is the literal "unavailable" when the provider omits it.
type Restaurant struct {
	ID         int64   `json:"-"`
	Name       string  `json:"name"`
	ImageURL   string  `json:"image_url"`
	Price      string  `json:"price"`
	Rating     float64 `json:"rating"`
	URL        string  `json:"url"`
	CreatedAt  int64   `json:"created_at"`
	LocationID int64   `json:"location_id"`
}

func (r Restaurant) Written() int64 { return r.CreatedAt }

// Movie is one movie-search result for a location's search term.
// ImageURL falls back to a fixed placeholder when the provider has no poster.
type Movie struct {
	ID           int64   `json:"-"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	AverageVotes float64 `json:"average_votes"`
	TotalVotes   int64   `json:"total_votes"`
	ImageURL     string  `json:"image_url"`
	Popularity   float64 `json:"popularity"`
	ReleasedOn   string  `json:"released_on"`
	CreatedAt    int64   `json:"created_at"`
	LocationID   int64   `json:"location_id"`
}

func (m Movie) Written() int64 { return m.CreatedAt }

// Meetup is one upcoming event near a location.
// CreationDate is the literal "Hidden" when the provider omits the event's
// creation timestamp.
type Meetup struct {
	ID           int64  `json:"-"`
	Link         string `json:"link"`
	Name         string `json:"name"`
	CreationDate string `json:"creation_date"`
	Host         string `json:"host"`
	CreatedAt    int64  `json:"created_at"`
	LocationID   int64  `json:"location_id"`
}

func (m Meetup) Written() int64 { return m.CreatedAt }

// Trail is one hiking trail near a set of coordinates. Trails are never
// persisted — every request fetches fresh from the provider — so there is no
// LocationID and no Entry implementation.
type Trail struct {
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Length        float64 `json:"length"`
	Stars         float64 `json:"stars"`
	StarVotes     int64   `json:"star_votes"`
	Summary       string  `json:"summary"`
	TrailURL      string  `json:"trail_url"`
	Conditions    string  `json:"conditions"`
	ConditionDate string  `json:"condition_date"`
	ConditionTime string  `json:"condition_time"`
	CreatedAt     int64   `json:"created_at"`
}
