package repository_test

import (
	"context"
	"testing"
	"time"

	"movielogger/database"
	"movielogger/internal/microservices/http-api/models"
	"movielogger/internal/microservices/http-api/repository"
	"movielogger/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

func int64Ptr(v int64) *int64    { return &v }
func intPtr(v int) *int          { return &v }
func stringPtr(s string) *string { return &s }

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

// RepositorySuite runs every repository against a fresh SQLite database per test
type RepositorySuite struct {
	suite.Suite
	db        *gorm.DB
	ctx       context.Context
	users     repository.UserRepository
	movies    repository.MovieRepository
	logs      repository.MovieLogRepository
	watchlist repository.WatchlistRepository
}

func (s *RepositorySuite) SetupTest() {
	s.db = testutils.NewSQLiteDB(s.T())
	s.ctx = context.Background()
	s.users = repository.NewUserRepository(s.db)
	s.movies = repository.NewMovieRepository(s.db)
	s.logs = repository.NewMovieLogRepository(s.db)
	s.watchlist = repository.NewWatchlistRepository(s.db)
}

func (s *RepositorySuite) createUser(username string) *models.User {
	u := &models.User{Username: username, Email: username + "@x.com", Password: "hash"}
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u
}

func (s *RepositorySuite) createMovie(title string, externalID *int64) *models.Movie {
	m := &models.Movie{Title: title, ExternalID: externalID}
	s.Require().NoError(s.movies.Create(s.ctx, m))
	return m
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

// --- users ---

func (s *RepositorySuite) TestUser_CreateAndFind() {
	u := s.createUser("alice")
	s.NotEmpty(u.ID, "BeforeCreate assigns a UUID")

	byName, err := s.users.FindByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(u.ID, byName.ID)

	byEmail, err := s.users.FindByEmail(s.ctx, "alice@x.com")
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)

	byID, err := s.users.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("alice", byID.Username)

	_, err = s.users.FindByEmail(s.ctx, "nobody@x.com")
	s.True(database.IsNotFound(err))
}

func (s *RepositorySuite) TestUser_DuplicateUsername() {
	s.createUser("alice")
	err := s.users.Create(s.ctx, &models.User{Username: "alice", Email: "other@x.com", Password: "hash"})
	s.True(database.IsUniqueViolation(err))
}

// --- movies ---

func (s *RepositorySuite) TestMovie_GetByExternalID() {
	m := s.createMovie("Fight Club", int64Ptr(550))

	got, err := s.movies.GetByExternalID(s.ctx, 550)
	s.Require().NoError(err)
	s.Equal(m.ID, got.ID)

	_, err = s.movies.GetByExternalID(s.ctx, 551)
	s.True(database.IsNotFound(err))
}

func (s *RepositorySuite) TestMovie_DuplicateExternalIDRejected() {
	s.createMovie("Fight Club", int64Ptr(550))

	err := s.movies.Create(s.ctx, &models.Movie{Title: "Fight Club (again)", ExternalID: int64Ptr(550)})
	s.True(database.IsUniqueViolation(err))
}

func (s *RepositorySuite) TestMovie_NullExternalIDsDoNotCollide() {
	s.createMovie("Home Video 1", nil)
	s.createMovie("Home Video 2", nil)

	list, err := s.movies.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 2)
}

func (s *RepositorySuite) TestMovie_ListOrderedByTitle() {
	s.createMovie("Zodiac", nil)
	s.createMovie("Alien", nil)
	s.createMovie("Memento", nil)

	list, err := s.movies.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal([]string{"Alien", "Memento", "Zodiac"}, []string{list[0].Title, list[1].Title, list[2].Title})
}

func (s *RepositorySuite) TestMovie_SearchByTitle() {
	s.createMovie("The Dark Knight", nil)
	s.createMovie("Dark City", nil)
	s.createMovie("Heat", nil)

	list, err := s.movies.SearchByTitle(s.ctx, "DARK")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Dark City", list[0].Title)
	s.Equal("The Dark Knight", list[1].Title)

	empty, err := s.movies.SearchByTitle(s.ctx, "   ")
	s.Require().NoError(err)
	s.Empty(empty)
}

// --- movie logs ---

func (s *RepositorySuite) TestMovie_ListIncomplete() {
	complete := &models.Movie{
		Title:       "Alien",
		Year:        intPtr(1979),
		Director:    stringPtr("Ridley Scott"),
		PosterURL:   stringPtr("p"),
		BackdropURL: stringPtr("b"),
		ExternalID:  int64Ptr(348),
	}
	s.Require().NoError(s.movies.Create(s.ctx, complete))
	s.createMovie("Local Only", nil)
	first := s.createMovie("Fight Club", int64Ptr(550))
	second := s.createMovie("Heat", int64Ptr(949))

	list, err := s.movies.ListIncomplete(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(first.ID, list[0].ID)
	s.Equal(second.ID, list[1].ID)

	list, err = s.movies.ListIncomplete(s.ctx, 0, 1)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(first.ID, list[0].ID)

	list, err = s.movies.ListIncomplete(s.ctx, first.ID, 1)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(second.ID, list[0].ID)

	list, err = s.movies.ListIncomplete(s.ctx, second.ID, 0)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *RepositorySuite) TestMovie_FillMissingKeepsExistingValues() {
	m := &models.Movie{Title: "Fight Club", ExternalID: int64Ptr(550), Director: stringPtr("Client Supplied")}
	s.Require().NoError(s.movies.Create(s.ctx, m))

	err := s.movies.FillMissing(s.ctx, m.ID, models.MovieMetadata{
		Year:      intPtr(1999),
		Director:  stringPtr("David Fincher"),
		PosterURL: stringPtr("https://image.tmdb.org/t/p/w500/fc.jpg"),
	})
	s.Require().NoError(err)

	got, err := s.movies.GetByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(1999, *got.Year)
	s.Equal("Client Supplied", *got.Director)
	s.Equal("https://image.tmdb.org/t/p/w500/fc.jpg", *got.PosterURL)
	s.Nil(got.BackdropURL)

	s.NoError(s.movies.FillMissing(s.ctx, m.ID, models.MovieMetadata{}))
	err = s.movies.FillMissing(s.ctx, 999, models.MovieMetadata{Year: intPtr(2000)})
	s.True(database.IsNotFound(err))
}

func (s *RepositorySuite) TestLog_CreateUpdateAndList() {
	u := s.createUser("alice")
	m := s.createMovie("Fight Club", int64Ptr(550))

	log := &models.MovieLog{UserID: u.ID, MovieID: m.ID, WatchedDate: date("2024-01-01"), Rating: intPtr(9)}
	s.Require().NoError(s.logs.Create(s.ctx, log))
	s.NotZero(log.ID)

	log.Rating = intPtr(10)
	log.Review = stringPtr("better the second time")
	log.WatchedDate = date("2024-02-01")
	s.Require().NoError(s.logs.Update(s.ctx, log))

	got, err := s.logs.GetByUserAndMovie(s.ctx, u.ID, m.ID)
	s.Require().NoError(err)
	s.Equal(log.ID, got.ID)
	s.Equal(10, *got.Rating)
	s.Equal("better the second time", *got.Review)
	s.Equal("2024-02-01", got.WatchedDate.Format("2006-01-02"))

	// clearing the rating writes NULL
	log.Rating = nil
	s.Require().NoError(s.logs.Update(s.ctx, log))
	got, err = s.logs.GetByUserAndMovie(s.ctx, u.ID, m.ID)
	s.Require().NoError(err)
	s.Nil(got.Rating)
}

func (s *RepositorySuite) TestLog_UniquePerUserAndMovie() {
	u := s.createUser("alice")
	m := s.createMovie("Fight Club", nil)

	s.Require().NoError(s.logs.Create(s.ctx, &models.MovieLog{UserID: u.ID, MovieID: m.ID, WatchedDate: date("2024-01-01")}))
	err := s.logs.Create(s.ctx, &models.MovieLog{UserID: u.ID, MovieID: m.ID, WatchedDate: date("2024-01-02")})
	s.True(database.IsUniqueViolation(err))
}

func (s *RepositorySuite) TestLog_RatingCheckConstraint() {
	u := s.createUser("alice")
	m := s.createMovie("Fight Club", nil)

	err := s.logs.Create(s.ctx, &models.MovieLog{UserID: u.ID, MovieID: m.ID, WatchedDate: date("2024-01-01"), Rating: intPtr(11)})
	s.Error(err)
}

func (s *RepositorySuite) TestLog_ListOrderedByWatchedDateWithMovie() {
	u := s.createUser("alice")
	older := s.createMovie("Alien", nil)
	newer := s.createMovie("Heat", nil)

	s.Require().NoError(s.logs.Create(s.ctx, &models.MovieLog{UserID: u.ID, MovieID: older.ID, WatchedDate: date("2023-05-01")}))
	s.Require().NoError(s.logs.Create(s.ctx, &models.MovieLog{UserID: u.ID, MovieID: newer.ID, WatchedDate: date("2024-05-01")}))

	logs, err := s.logs.ListByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	s.Equal(newer.ID, logs[0].MovieID)
	s.Require().NotNil(logs[0].Movie)
	s.Equal("Heat", logs[0].Movie.Title)
	s.Equal("Alien", logs[1].Movie.Title)
}

func (s *RepositorySuite) TestLog_DeleteForUserChecksOwnership() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	m := s.createMovie("Fight Club", nil)

	log := &models.MovieLog{UserID: alice.ID, MovieID: m.ID, WatchedDate: date("2024-01-01")}
	s.Require().NoError(s.logs.Create(s.ctx, log))

	err := s.logs.DeleteForUser(s.ctx, log.ID, bob.ID)
	s.True(database.IsNotFound(err))

	s.Require().NoError(s.logs.DeleteForUser(s.ctx, log.ID, alice.ID))

	err = s.logs.DeleteForUser(s.ctx, log.ID, alice.ID)
	s.True(database.IsNotFound(err))
}

func (s *RepositorySuite) TestLog_CascadeOnUserDelete() {
	u := s.createUser("alice")
	m := s.createMovie("Fight Club", nil)
	s.Require().NoError(s.logs.Create(s.ctx, &models.MovieLog{UserID: u.ID, MovieID: m.ID, WatchedDate: date("2024-01-01")}))
	s.Require().NoError(s.watchlist.Add(s.ctx, &models.WatchlistEntry{UserID: u.ID, MovieID: m.ID, AddedAt: time.Now()}))

	s.Require().NoError(s.db.Delete(&models.User{}, "id = ?", u.ID).Error)

	var logCount, watchCount int64
	s.db.Model(&models.MovieLog{}).Count(&logCount)
	s.db.Model(&models.WatchlistEntry{}).Count(&watchCount)
	s.Zero(logCount)
	s.Zero(watchCount)
}

// --- watchlist ---

func (s *RepositorySuite) TestWatchlist_AddListRemove() {
	u := s.createUser("alice")
	first := s.createMovie("Alien", nil)
	second := s.createMovie("Heat", nil)

	now := time.Now().UTC()
	e1 := &models.WatchlistEntry{UserID: u.ID, MovieID: first.ID, AddedAt: now.Add(-time.Hour)}
	e2 := &models.WatchlistEntry{UserID: u.ID, MovieID: second.ID, AddedAt: now}
	s.Require().NoError(s.watchlist.Add(s.ctx, e1))
	s.Require().NoError(s.watchlist.Add(s.ctx, e2))

	entries, err := s.watchlist.List(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(e2.ID, entries[0].ID, "most recently added first")
	s.Require().NotNil(entries[0].Movie)
	s.Equal("Heat", entries[0].Movie.Title)

	got, err := s.watchlist.GetByUserAndMovie(s.ctx, u.ID, first.ID)
	s.Require().NoError(err)
	s.Equal(e1.ID, got.ID)

	s.Require().NoError(s.watchlist.RemoveForUser(s.ctx, e1.ID, u.ID))
	_, err = s.watchlist.GetByUserAndMovie(s.ctx, u.ID, first.ID)
	s.True(database.IsNotFound(err))
}

func (s *RepositorySuite) TestWatchlist_DuplicateAndOwnership() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	m := s.createMovie("Alien", nil)

	entry := &models.WatchlistEntry{UserID: alice.ID, MovieID: m.ID, AddedAt: time.Now()}
	s.Require().NoError(s.watchlist.Add(s.ctx, entry))

	err := s.watchlist.Add(s.ctx, &models.WatchlistEntry{UserID: alice.ID, MovieID: m.ID, AddedAt: time.Now()})
	s.True(database.IsUniqueViolation(err))

	err = s.watchlist.RemoveForUser(s.ctx, entry.ID, bob.ID)
	s.True(database.IsNotFound(err))
}

func TestMovieLogUpdate_MissingRow(t *testing.T) {
	db := testutils.NewSQLiteDB(t)
	logs := repository.NewMovieLogRepository(db)

	err := logs.Update(context.Background(), &models.MovieLog{ID: 999, WatchedDate: date("2024-01-01")})
	require.Error(t, err)
	assert.True(t, database.IsNotFound(err))
}
