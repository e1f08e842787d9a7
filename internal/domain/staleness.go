package domain

import "time"

// Staleness windows per cached domain. Chosen to match how fast each upstream
// actually changes: forecasts churn within the hour, business and movie
// listings barely move day to day.
const (
	ForecastWindow   = 30 * time.Minute
	RestaurantWindow = 24 * time.Hour
	MovieWindow      = 24 * time.Hour
	MeetupWindow     = time.Hour
)

// Fresh reports whether a row written at createdAt (epoch milliseconds) is
// still inside the staleness window at the given instant. Age exactly equal
// to the window counts as fresh; only strictly older rows trigger a refresh.
//
// Freshness is evaluated at read time only — there is no background expiry.
func Fresh(createdAt int64, window time.Duration, now time.Time) bool {
	age := time.Duration(now.UnixMilli()-createdAt) * time.Millisecond
	return age <= window
}

// NowMillis returns the current wall-clock time as epoch milliseconds, the
// unit every created_at column stores.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
