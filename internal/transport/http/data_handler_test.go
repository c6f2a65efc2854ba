package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"branchpulse/internal/analytics"
	"branchpulse/internal/dataset"
	apierrors "branchpulse/internal/errors"
	"branchpulse/internal/services"
)

// MockDataService is a mock implementation of DataServiceInterface
type MockDataService struct {
	mock.Mock
}

func (m *MockDataService) Records(ctx context.Context) ([]dataset.Record, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dataset.Record), args.Error(1)
}

func (m *MockDataService) Branches(ctx context.Context, state, city, bank string) ([]dataset.Record, error) {
	args := m.Called(state, city, bank)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dataset.Record), args.Error(1)
}

func (m *MockDataService) BankBranches(ctx context.Context, bank string) ([]dataset.Record, error) {
	args := m.Called(bank)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dataset.Record), args.Error(1)
}

func (m *MockDataService) Banks(ctx context.Context) ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDataService) Stats(ctx context.Context) (analytics.Statistics, error) {
	args := m.Called()
	return args.Get(0).(analytics.Statistics), args.Error(1)
}

func (m *MockDataService) StateDistribution(ctx context.Context) ([]analytics.DistributionEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.DistributionEntry), args.Error(1)
}

func (m *MockDataService) BankDistribution(ctx context.Context) ([]analytics.DistributionEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.DistributionEntry), args.Error(1)
}

func (m *MockDataService) Reload(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}

func newTestDataHandler(svc DataServiceInterface) *DataHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDataHandler(svc, logger, apierrors.NewErrorHandler(logger, false))
}

func TestDataHandler_GetBranches(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockDataService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful get branches",
			url:  "/branches",
			setupMock: func(m *MockDataService) {
				m.On("Branches", "", "", "").Return([]dataset.Record{
					{Bank: "State Bank", Branch: "Kochi Main", State: "Kerala", City: "Kochi"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":1`,
		},
		{
			name: "selectors forwarded",
			url:  "/branches?state=Kerala&city=Kochi&bank=Axis+Bank",
			setupMock: func(m *MockDataService) {
				m.On("Branches", "Kerala", "Kochi", "Axis Bank").Return([]dataset.Record{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":0`,
		},
		{
			name: "missing dataset maps to 404 problem",
			url:  "/branches",
			setupMock: func(m *MockDataService) {
				m.On("Branches", "", "", "").Return(nil, services.ErrDatasetNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"status":404`,
		},
		{
			name: "unexpected error maps to 500 problem",
			url:  "/branches",
			setupMock: func(m *MockDataService) {
				m.On("Branches", "", "", "").Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"status":500`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockDataService)
			tt.setupMock(mockSvc)

			router := newTestDataHandler(mockSvc).Routes()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestDataHandler_GetBanks(t *testing.T) {
	mockSvc := new(MockDataService)
	mockSvc.On("Banks").Return([]string{"Axis Bank", "State Bank"}, nil)

	router := newTestDataHandler(mockSvc).Routes()
	req := httptest.NewRequest(http.MethodGet, "/banks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Axis Bank"`)
	assert.Contains(t, rec.Body.String(), `"count":2`)
}

func TestDataHandler_GetBankBranches(t *testing.T) {
	t.Run("unknown bank returns 404", func(t *testing.T) {
		mockSvc := new(MockDataService)
		mockSvc.On("BankBranches", "nope").Return(nil, services.ErrBankNotFound)

		router := newTestDataHandler(mockSvc).Routes()
		req := httptest.NewRequest(http.MethodGet, "/banks/nope/branches", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("known bank returns branch rows", func(t *testing.T) {
		mockSvc := new(MockDataService)
		mockSvc.On("BankBranches", "Axis").Return([]dataset.Record{
			{Bank: "Axis", City: "Gaya", State: "Bihar"},
		}, nil)

		router := newTestDataHandler(mockSvc).Routes()
		req := httptest.NewRequest(http.MethodGet, "/banks/Axis/branches", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"Bihar"`)
	})
}

func TestDataHandler_GetStats(t *testing.T) {
	mockSvc := new(MockDataService)
	mockSvc.On("Stats").Return(analytics.Statistics{
		TotalBranches: 100, TotalBanks: 8, TotalStates: 4, TotalCities: 25, WithCoordinates: 90,
	}, nil)

	router := newTestDataHandler(mockSvc).Routes()
	req := httptest.NewRequest(http.MethodGet, "/statistics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_branches":100`)
}

func TestDataHandler_Distributions(t *testing.T) {
	mockSvc := new(MockDataService)
	mockSvc.On("StateDistribution").Return([]analytics.DistributionEntry{
		{Name: "Kerala", BranchCount: 3},
	}, nil)
	mockSvc.On("BankDistribution").Return([]analytics.DistributionEntry{
		{Name: "State Bank", BranchCount: 2},
	}, nil)

	router := newTestDataHandler(mockSvc).Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/distribution/states", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Kerala"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/distribution/banks", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"State Bank"`)
}

func TestDataHandler_Reload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(MockDataService)
		mockSvc.On("Reload").Return(nil)

		router := newTestDataHandler(mockSvc).Routes()
		req := httptest.NewRequest(http.MethodPost, "/reload", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "dataset reloaded")
	})

	t.Run("missing source", func(t *testing.T) {
		mockSvc := new(MockDataService)
		mockSvc.On("Reload").Return(services.ErrDatasetNotFound)

		router := newTestDataHandler(mockSvc).Routes()
		req := httptest.NewRequest(http.MethodPost, "/reload", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
