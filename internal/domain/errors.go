package domain

import "errors"

// ErrNotFound is returned by repo functions when the requested rows do not
// exist in the database. For cached domains this is the cache-miss signal,
// not a client-visible failure.
var ErrNotFound = errors.New("not found")

// ErrUpstream is returned when a provider is unreachable, responds with a
// non-success status, or sends a payload missing the fields we need
// (e.g. an empty geocoding results array). Handlers map this to a generic
// HTTP 500 — no provider detail ever reaches the client.
var ErrUpstream = errors.New("upstream provider error")

// ErrStore is returned when a read, insert, or delete against the database
// fails. Logged where it occurs; handlers map it to a generic HTTP 500.
var ErrStore = errors.New("store error")

// ErrMapping is returned when a provider payload is missing a field that has
// no defined default (e.g. a meetup event without a group name).
// Treated exactly like ErrUpstream for response purposes.
var ErrMapping = errors.New("payload mapping error")
