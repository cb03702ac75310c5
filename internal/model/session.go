package model

import "time"

// Session mirrors the 'user_sessions' table. One row is created per login;
// several sessions may be active for the same user at once. Once IsActive is
// cleared it is never set back, so an inactive session is terminal.
type Session struct {
	SessionID    string    `json:"sessionId"`
	UserID       int64     `json:"userId"`
	LoginTime    time.Time `json:"loginTime"`
	LastActivity time.Time `json:"lastActivity"`
	IPAddress    *string   `json:"ipAddress,omitempty"`
	UserAgent    *string   `json:"userAgent,omitempty"`
	IsActive     bool      `json:"isActive"`
}
