package models

import (
	"testing"

	"github.com/metinatakli/cinescope-autotests/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieCreateRequest_Validate(t *testing.T) {
	valid := func() MovieCreateRequest {
		return MovieCreateRequest{
			Name:        "Фильм abcdef",
			ImageURL:    "https://example.com/movie1.jpg",
			Price:       500,
			Description: "desc",
			Location:    domain.LocationMSK,
			GenreID:     3,
		}
	}

	tests := []struct {
		name           string
		mutate         func(*MovieCreateRequest)
		wantErrMessage string
	}{
		{name: "valid", mutate: func(*MovieCreateRequest) {}},
		{name: "zero price", mutate: func(m *MovieCreateRequest) { m.Price = 0 }, wantErrMessage: "price: must be greater than 0"},
		{name: "unknown location", mutate: func(m *MovieCreateRequest) { m.Location = "NSK" }, wantErrMessage: "Location must be one of MSK, SPB"},
		{name: "genre out of range", mutate: func(m *MovieCreateRequest) { m.GenreID = 9 }, wantErrMessage: "genreId: must be between 1 and 8"},
		{name: "missing name", mutate: func(m *MovieCreateRequest) { m.Name = "" }, wantErrMessage: "name: is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErrMessage == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrMessage)
		})
	}
}

func TestMovie_RatingBounds(t *testing.T) {
	movie := Movie{
		ID:        1,
		Name:      "x",
		Price:     100,
		Location:  domain.LocationSPB,
		Rating:    10.5,
		GenreID:   1,
		CreatedAt: "2025-01-01T00:00:00Z",
	}

	err := movie.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating: must be between 0 and 10")

	movie.Rating = 0
	assert.NoError(t, movie.Validate())
}

func TestAPIError_MessageText(t *testing.T) {
	assert.Equal(t, "Forbidden resource", APIError{Message: "Forbidden resource"}.MessageText())
	assert.Equal(t, "a; b", APIError{Message: []any{"a", "b"}}.MessageText())
	assert.Equal(t, "", APIError{}.MessageText())
}
