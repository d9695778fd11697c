package model

import "time"

// UserGroup binds a chat user to the timetable group they follow.
type UserGroup struct {
	UserID    int64     `json:"user_id"`
	Group     string    `json:"group"`
	UpdatedAt time.Time `json:"updated_at"`
}
