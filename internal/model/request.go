package model

import "strings"

// DefaultNumSources is used when a request does not specify a source count.
const DefaultNumSources = 3

// Request is one normalized fact-check request. Both the GET and POST
// surfaces reduce to this shape before entering the pipeline.
type Request struct {
	Claim      string `json:"claim"`
	NumSources int    `json:"num_sources"`
}

// Validate checks the request before any external call is made.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Claim) == "" {
		return ErrNoClaim
	}
	if r.NumSources < 1 {
		return ErrInvalidSourceCount
	}
	return nil
}
