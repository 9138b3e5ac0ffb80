package service

import (
	"context"
	"testing"

	"address-geocoder/internal/models"
	"address-geocoder/internal/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCityRepository is a mock implementation of the CityRepository interface
type MockCityRepository struct {
	mock.Mock
}

// CityNames implements CityRepository.
func (m *MockCityRepository) CityNames(ctx context.Context, prefecture string) ([]pattern.Candidate, error) {
	args := m.Called(ctx, prefecture)
	cands, _ := args.Get(0).([]pattern.Candidate)
	return cands, args.Error(1)
}

func TestGeocodeService_Geocode(t *testing.T) {
	tests := []struct {
		name        string
		req         models.GeocodeRequest
		mockBlocks  []models.TownBlock
		mockRsdts   []models.RsdtAddr
		expectError error
		residual    string
		addr1       string
	}{
		{
			name:        "empty address",
			req:         models.GeocodeRequest{Prefecture: "東京都", City: "千代田区", Town: "紀尾井町"},
			expectError: ErrEmptyAddress,
		},
		{
			name:        "missing town",
			req:         models.GeocodeRequest{Prefecture: "東京都", City: "千代田区", Address: "1-3"},
			expectError: ErrMissingScope,
		},
		{
			name:       "full-width digits and 番/号 are normalized",
			req:        models.GeocodeRequest{Prefecture: "東京都", City: "千代田区", Town: "紀尾井町", Address: "１番３号"},
			mockBlocks: blocks("1"),
			mockRsdts:  []models.RsdtAddr{rsdt("1", "3", "", 35.68, 139.73)},
			residual:   "",
			addr1:      "3",
		},
		{
			name:       "text after the number is kept",
			req:        models.GeocodeRequest{Prefecture: "東京都", City: "千代田区", Town: "紀尾井町", Address: "1-3 東京ガーデンテラス"},
			mockBlocks: blocks("1"),
			mockRsdts:  []models.RsdtAddr{rsdt("1", "3", "", 35.68, 139.73)},
			residual:   " 東京ガーデンテラス",
			addr1:      "3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockAddressRepository)
			service := NewGeocodeService(NewAddressFinder(mockRepo))

			if tt.mockBlocks != nil {
				mockRepo.On("GetBlockList", mock.Anything, kioicho).Return(tt.mockBlocks, nil)
				mockRepo.On("GetRsdtList", mock.Anything, kioicho).Return(tt.mockRsdts, nil)
			}

			// Execute
			result, err := service.Geocode(context.Background(), tt.req)

			// Assert
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				mockRepo.AssertNotCalled(t, "GetBlockList", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.residual, result.Residual())
			addr1, ok := result.Addr1()
			assert.True(t, ok)
			assert.Equal(t, tt.addr1, addr1)
			assert.Equal(t, tt.req.Prefecture+tt.req.City+tt.req.Town+tt.req.Address, result.Input())

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGeocodeService_CityCanonicalization(t *testing.T) {
	taketomi := models.Scope{Prefecture: "沖縄県", City: "八重山郡竹富町", Town: "竹富"}

	mockRepo := new(MockAddressRepository)
	mockCities := new(MockCityRepository)
	cache, err := pattern.NewCache(4)
	require.NoError(t, err)

	service := NewGeocodeService(NewAddressFinder(mockRepo), WithCityCanonicalization(mockCities, cache))

	mockCities.On("CityNames", mock.Anything, "沖縄県").Return([]pattern.Candidate{
		{Qualifier: "八重山郡", Name: "竹富町"},
		{Name: "那覇市"},
	}, nil).Once()
	mockRepo.On("GetBlockList", mock.Anything, taketomi).Return([]models.TownBlock(nil), nil).Twice()

	for i := 0; i < 2; i++ {
		result, err := service.Geocode(context.Background(), models.GeocodeRequest{
			Prefecture: "沖縄県", City: "竹富町", Town: "竹富", Address: "1",
		})
		require.NoError(t, err)

		city, _ := result.City()
		assert.Equal(t, "八重山郡竹富町", city)
	}

	assert.Equal(t, 1, cache.Len())
	mockCities.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestGeocodeService_UnknownCityPassesThrough(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	mockCities := new(MockCityRepository)
	cache, err := pattern.NewCache(4)
	require.NoError(t, err)

	service := NewGeocodeService(NewAddressFinder(mockRepo), WithCityCanonicalization(mockCities, cache))

	mockCities.On("CityNames", mock.Anything, "東京都").Return([]pattern.Candidate{{Name: "千代田"}}, nil)
	mockRepo.On("GetBlockList", mock.Anything, kioicho).Return([]models.TownBlock(nil), nil)

	result, err := service.Geocode(context.Background(), models.GeocodeRequest{
		Prefecture: "東京都", City: "千代田区", Town: "紀尾井町", Address: "1",
	})
	require.NoError(t, err)

	city, _ := result.City()
	assert.Equal(t, "千代田区", city)
}

func TestGeocodeService_CityLookupError(t *testing.T) {
	mockCities := new(MockCityRepository)
	cache, err := pattern.NewCache(4)
	require.NoError(t, err)

	service := NewGeocodeService(NewAddressFinder(new(MockAddressRepository)), WithCityCanonicalization(mockCities, cache))
	mockCities.On("CityNames", mock.Anything, "東京都").Return(nil, assert.AnError)

	_, err = service.Geocode(context.Background(), models.GeocodeRequest{
		Prefecture: "東京都", City: "千代田区", Town: "紀尾井町", Address: "1",
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, cache.Len())
}

func TestGeocodeService_GeocodeBatch(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	service := NewGeocodeService(NewAddressFinder(mockRepo), WithWorkers(2))

	mockRepo.On("GetBlockList", mock.Anything, kioicho).Return(blocks("1", "2"), nil)
	mockRepo.On("GetRsdtList", mock.Anything, kioicho).Return([]models.RsdtAddr{
		rsdt("1", "3", "", 35.1, 139.1),
		rsdt("2", "", "", 35.2, 139.2),
	}, nil)

	reqs := []models.GeocodeRequest{
		{Prefecture: "東京都", City: "千代田区", Town: "紀尾井町", Address: "1-3"},
		{Prefecture: "東京都", City: "千代田区", Town: "紀尾井町", Address: "2-22"},
		{Prefecture: "東京都", City: "千代田区", Town: "紀尾井町", Address: "ビル"},
	}

	results, err := service.GeocodeBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "", results[0].Residual())
	assert.Equal(t, models.LevelResidentialDetail, results[0].MatchLevel())
	assert.Equal(t, "-22", results[1].Residual())
	assert.Equal(t, models.LevelResidentialBlock, results[1].MatchLevel())
	assert.Equal(t, "ビル", results[2].Residual())
	assert.Equal(t, models.LevelMachiaza, results[2].MatchLevel())
}

func TestGeocodeService_GeocodeBatchStopsOnError(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	service := NewGeocodeService(NewAddressFinder(mockRepo), WithWorkers(1))

	mockRepo.On("GetBlockList", mock.Anything, kioicho).Return(nil, assert.AnError)

	results, err := service.GeocodeBatch(context.Background(), []models.GeocodeRequest{
		{Prefecture: "東京都", City: "千代田区", Town: "紀尾井町", Address: "1-3"},
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, results)
}

func TestNormalizeResidual(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"1-3", "1-3"},
		{"１－３", "1-3"},
		{"1番3号", "1-3"},
		{"1番地3", "1-3"},
		{"3の25", "3-25"},
		{"1−2−3", "1-2-3"},
		{"1番2号3", "1-2-3"},
		{"25号 ビル", "25 ビル"},
		{"1番地の3", "1-3"},
		{"1番の3", "1-3"},
		{"3号室", "3号室"},
		{"2-5-7号室", "2-5-7号室"},
		{"5号棟", "5号棟"},
		{"2番館", "2番館"},
		{"1番3号、ビル", "1-3、ビル"},
		{"12番地", "12"},
		{"東京ガーデンテラス", "東京ガーデンテラス"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeResidual(tt.in))
		})
	}
}
