package dto

import (
	"errors"
	"testing"
	"time"

	"movielogger/internal/microservices/http-api/models"
	"movielogger/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestMovieIdentity_ToMovieRef(t *testing.T) {
	ref := MovieIdentity{TMDBID: int64Ptr(550), Title: "Fight Club"}.ToMovieRef()
	assert.Zero(t, ref.LocalID)
	require.NotNil(t, ref.External)
	assert.Equal(t, int64(550), ref.External.ExternalID)
	assert.Equal(t, "Fight Club", ref.External.Title)

	ref = MovieIdentity{MovieID: int64Ptr(3)}.ToMovieRef()
	assert.Equal(t, int64(3), ref.LocalID)
	assert.Nil(t, ref.External)

	ref = MovieIdentity{MovieID: int64Ptr(0), TMDBID: int64Ptr(0), Title: "x"}.ToMovieRef()
	assert.Equal(t, service.MovieRef{}, ref)
}

func TestLogMovieRequest_ToLogInput(t *testing.T) {
	nine := 9.0
	in, err := LogMovieRequest{WatchedDate: "2024-01-01", Rating: &nine}.ToLogInput()
	require.NoError(t, err)
	require.NotNil(t, in.Rating)
	assert.Equal(t, 9, *in.Rating)

	half := 7.5
	_, err = LogMovieRequest{WatchedDate: "2024-01-01", Rating: &half}.ToLogInput()
	assert.True(t, errors.Is(err, service.ErrValidation))

	in, err = LogMovieRequest{WatchedDate: "2024-01-01"}.ToLogInput()
	require.NoError(t, err)
	assert.Nil(t, in.Rating)
}

func TestFromModelToMovieLogResponse(t *testing.T) {
	year := 1999
	log := &models.MovieLog{
		ID:          1,
		MovieID:     2,
		WatchedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Movie:       &models.Movie{ID: 2, Title: "Fight Club", Year: &year, ExternalID: int64Ptr(550)},
	}

	resp := FromModelToMovieLogResponse(log)
	assert.Equal(t, "2024-01-01", resp.WatchedDate)
	assert.Equal(t, "Fight Club", resp.Title)
	assert.Equal(t, int64(550), *resp.TMDBID)

	assert.NotNil(t, FromModelsToMovieLogResponses(nil))
	assert.NotNil(t, FromModelsToWatchlistResponses(nil))
}
