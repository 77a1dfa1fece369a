// Package repository contains hand-written testify mocks for the domain
// repository interfaces.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SookX/Demeter/internal/domain/entity"
	"github.com/SookX/Demeter/internal/domain/repository"
)

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

// MockAuthRepository mocks repository.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	if auth, ok := args.Get(0).(*entity.Authentication); ok {
		return auth, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

// MockRefreshTokenRepository mocks repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if token, ok := args.Get(0).(*entity.RefreshToken); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

// MockRegionRepository mocks repository.RegionRepository.
type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Region, error) {
	args := m.Called(ctx, userID)
	if region, ok := args.Get(0).(*entity.Region); ok {
		return region, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRegionRepository) Upsert(ctx context.Context, region *entity.Region) error {
	return m.Called(ctx, region).Error(0)
}

// MockPlantRepository mocks repository.PlantRepository.
type MockPlantRepository struct {
	mock.Mock
}

func (m *MockPlantRepository) CreatePlant(ctx context.Context, plant *entity.Plant) error {
	return m.Called(ctx, plant).Error(0)
}

func (m *MockPlantRepository) FindByRegion(ctx context.Context, regionID uuid.UUID) ([]entity.Plant, error) {
	args := m.Called(ctx, regionID)
	if plants, ok := args.Get(0).([]entity.Plant); ok {
		return plants, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPlantRepository) FindByID(ctx context.Context, plantID uuid.UUID) (*entity.Plant, error) {
	args := m.Called(ctx, plantID)
	if plant, ok := args.Get(0).(*entity.Plant); ok {
		return plant, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPlantRepository) AppendWatering(ctx context.Context, plantID uuid.UUID, watering *entity.Watering, lastWateredAt, nextWateringAt time.Time) error {
	return m.Called(ctx, plantID, watering, lastWateredAt, nextWateringAt).Error(0)
}

// MockEventRepository mocks repository.EventRepository.
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) FindByRegion(ctx context.Context, regionID uuid.UUID) ([]entity.Event, error) {
	args := m.Called(ctx, regionID)
	if events, ok := args.Get(0).([]entity.Event); ok {
		return events, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockEventRepository) AppendEvents(ctx context.Context, regionID uuid.UUID, version int64, events []entity.Event, lastCreated time.Time) error {
	return m.Called(ctx, regionID, version, events, lastCreated).Error(0)
}

func (m *MockEventRepository) MarkEventRead(ctx context.Context, regionID, eventID uuid.UUID) error {
	return m.Called(ctx, regionID, eventID).Error(0)
}

// StubRepositoryFactory hands out fixed repositories, standing in for the
// transaction-bound factory.
type StubRepositoryFactory struct {
	UserRepository         repository.UserRepository
	AuthRepository         repository.AuthRepository
	RefreshTokenRepository repository.RefreshTokenRepository
	RegionRepository       repository.RegionRepository
}

func (f *StubRepositoryFactory) UserRepo() repository.UserRepository {
	return f.UserRepository
}

func (f *StubRepositoryFactory) AuthRepo() repository.AuthRepository {
	return f.AuthRepository
}

func (f *StubRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.RefreshTokenRepository
}

func (f *StubRepositoryFactory) RegionRepo() repository.RegionRepository {
	return f.RegionRepository
}

// StubTransactionManager executes the callback immediately against the
// embedded factory, without any real transaction semantics.
type StubTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (m *StubTransactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
