package models

import "time"

// Token is an opaque bearer credential. A user has at
// most one live token; issuing a new one replaces it.
type Token struct {
	Key       string
	UserID    string
	CreatedAt time.Time
}
