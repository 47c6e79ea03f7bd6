package models

import "time"

// Session is the durable single-slot record for the currently authenticated
// user. It carries only a pointer (the username) plus a signed token; the
// registry stays the single source of truth for all profile data, and the
// current-user view is regenerated from it on every read.
type Session struct {
	Username   string    `json:"username"`
	Token      string    `json:"token"`
	LoggedInAt time.Time `json:"loggedInAt"`
}
