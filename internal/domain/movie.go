package domain

import "time"

type Location string

const (
	LocationMSK Location = "MSK"
	LocationSPB Location = "SPB"
)

var Locations = []Location{LocationMSK, LocationSPB}

func (l Location) Valid() bool {
	return l == LocationMSK || l == LocationSPB
}

const (
	MinGenreID = 1
	MaxGenreID = 8

	MinRating = 0
	MaxRating = 10
)

type Movie struct {
	ID          int
	Name        string
	Price       int
	Description string
	ImageURL    string
	Location    Location
	Published   bool
	Rating      float64
	GenreID     int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type MovieFilters struct {
	Pagination
	Location  Location
	Published *bool
	GenreID   int
	MinPrice  int
	MaxPrice  int
}

func (f MovieFilters) Match(m *Movie) bool {
	if f.Location != "" && m.Location != f.Location {
		return false
	}
	if f.Published != nil && m.Published != *f.Published {
		return false
	}
	if f.GenreID != 0 && m.GenreID != f.GenreID {
		return false
	}
	if f.MinPrice != 0 && m.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice != 0 && m.Price > f.MaxPrice {
		return false
	}

	return true
}

type Review struct {
	MovieID   int
	UserID    string
	FullName  string
	Rating    int
	Text      string
	Hidden    bool
	CreatedAt time.Time
}
