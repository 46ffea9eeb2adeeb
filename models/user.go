package models

import "time"

type User struct {
	ID        int64
	Email     string
	Role      string
	TeamID    *int64
	CreatedAt time.Time
	IsActive  bool
}

type Team struct {
	ID            int64
	Name          string
	ActivatedFrom time.Time
}
