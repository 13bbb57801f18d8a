package models

import "time"

// GuestSession bounds how many real fetches an anonymous visitor may make
// and caches the last served batch as a fallback.
type GuestSession struct {
	GuestID             string        `json:"guestId"`
	FetchCount          int           `json:"fetchCount"`
	LastFetchTime       time.Time     `json:"lastFetchTime"`
	CachedOpportunities []Opportunity `json:"cachedOpportunities"`
}

// GuestFetchCap is the maximum number of real store fetches per guest
// session. Cache-filtered responses do not count against it.
const GuestFetchCap = 3
