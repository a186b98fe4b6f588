package domain

import "time"

type Movie struct {
	ID          int
	Title       string
	Genre       string
	ReleaseDate time.Time
	Duration    int // minutes
}
