package service

import (
	"context"

	"movielogger/internal/ingestion/tmdb"
	"movielogger/internal/microservices/http-api/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockMovieRepository mocks the MovieRepository interface
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetByExternalID(ctx context.Context, externalID int64) (*models.Movie, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) List(ctx context.Context) ([]models.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockMovieRepository) SearchByTitle(ctx context.Context, query string) ([]models.Movie, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockMovieRepository) ListIncomplete(ctx context.Context, afterID int64, limit int) ([]models.Movie, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockMovieRepository) FillMissing(ctx context.Context, id int64, meta models.MovieMetadata) error {
	args := m.Called(ctx, id, meta)
	return args.Error(0)
}

// MockMovieLogRepository mocks the MovieLogRepository interface
type MockMovieLogRepository struct {
	mock.Mock
}

func (m *MockMovieLogRepository) Create(ctx context.Context, log *models.MovieLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockMovieLogRepository) Update(ctx context.Context, log *models.MovieLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockMovieLogRepository) GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.MovieLog, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MovieLog), args.Error(1)
}

func (m *MockMovieLogRepository) DeleteForUser(ctx context.Context, id int64, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockMovieLogRepository) ListByUser(ctx context.Context, userID string) ([]models.MovieLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MovieLog), args.Error(1)
}

// MockWatchlistRepository mocks the WatchlistRepository interface
type MockWatchlistRepository struct {
	mock.Mock
}

func (m *MockWatchlistRepository) Add(ctx context.Context, entry *models.WatchlistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWatchlistRepository) GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.WatchlistEntry, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchlistEntry), args.Error(1)
}

func (m *MockWatchlistRepository) RemoveForUser(ctx context.Context, id int64, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockWatchlistRepository) List(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WatchlistEntry), args.Error(1)
}

// MockCatalogGateway mocks the CatalogGateway interface
type MockCatalogGateway struct {
	mock.Mock
}

func (m *MockCatalogGateway) SearchMovies(ctx context.Context, query string) ([]tmdb.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tmdb.SearchResult), args.Error(1)
}

func (m *MockCatalogGateway) MovieDetails(ctx context.Context, externalID int64) (*tmdb.MovieDetails, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tmdb.MovieDetails), args.Error(1)
}
