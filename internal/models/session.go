package models

import "time"

// Session is the server-side refresh-token session, at most one per user.
// The access token itself is stateless; this row only backs the refresh
// cookie and lets password changes force a re-login everywhere.
type Session struct {
	UserID       int64     `json:"userid" gorm:"column:userid;primaryKey"`
	RefreshToken string    `json:"-" gorm:"column:refreshtoken;uniqueIndex"`
	ExpiresAt    time.Time `json:"expiresat" gorm:"column:expiresat"`
}

func (Session) TableName() string { return "session" }
