package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rodfox31/cierre-caja-backend/internal/apperrors"
	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	portssvc "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/services"
	"github.com/Rodfox31/cierre-caja-backend/internal/dto"
	"github.com/Rodfox31/cierre-caja-backend/internal/handlers"
	"github.com/Rodfox31/cierre-caja-backend/internal/middleware"
	"github.com/Rodfox31/cierre-caja-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ClosingService ---
type MockClosingService struct {
	mock.Mock
}

func (m *MockClosingService) CreateClosing(ctx context.Context, req dto.CreateClosingRequest, creatorUserID string) (*domain.ClosingRecord, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingService) GetClosingByID(ctx context.Context, closingID int64) (*domain.ClosingRecord, error) {
	args := m.Called(ctx, closingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingService) ListClosings(ctx context.Context, params dto.ListClosingsParams) ([]domain.ClosingRecord, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingService) ClosingExists(ctx context.Context, date, store, cashier string) (bool, error) {
	args := m.Called(ctx, date, store, cashier)
	return args.Bool(0), args.Error(1)
}

func (m *MockClosingService) UpdateClosing(ctx context.Context, closingID int64, req dto.UpdateClosingRequest, updaterUserID string) (*domain.ClosingRecord, error) {
	args := m.Called(ctx, closingID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingService) DeleteClosing(ctx context.Context, closingID int64) error {
	args := m.Called(ctx, closingID)
	return args.Error(0)
}

func (m *MockClosingService) ValidateClosing(ctx context.Context, closingID int64, validatorUserID string) (*domain.ClosingRecord, error) {
	args := m.Called(ctx, closingID, validatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingService) FlagClosingForReview(ctx context.Context, closingID int64, reviewerUserID string) (*domain.ClosingRecord, error) {
	args := m.Called(ctx, closingID, reviewerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingService) ReopenClosing(ctx context.Context, closingID int64, userID string) (*domain.ClosingRecord, error) {
	args := m.Called(ctx, closingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingRecord), args.Error(1)
}

func (m *MockClosingService) PreviewClosing(ctx context.Context, req dto.PreviewClosingRequest) (*dto.PreviewClosingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PreviewClosingResponse), args.Error(1)
}

func (m *MockClosingService) ClassifyClosing(ctx context.Context, closing *domain.ClosingRecord) (string, error) {
	args := m.Called(ctx, closing)
	return args.String(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ClosingSvcFacade = (*MockClosingService)(nil)

// --- Test Suite ---
type ClosingHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockClosingService *MockClosingService
	jwtSecret          string
	token              string
}

func (suite *ClosingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		suite.Require().NoError(dto.RegisterValidations(v))
	}
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockClosingService = new(MockClosingService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterClosingRoutes(v1, suite.mockClosingService)

	token, err := utils.GenerateJWT("sup", suite.jwtSecret, time.Hour, "test")
	suite.Require().NoError(err)
	suite.token = token
}

func TestClosingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingHandlerTestSuite))
}

func (suite *ClosingHandlerTestSuite) performRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ClosingHandlerTestSuite) sampleClosing() *domain.ClosingRecord {
	return &domain.ClosingRecord{
		ClosingID:            7,
		ClosingDate:          "2025-03-01",
		Store:                "Solar",
		Cashier:              "ana",
		BillTotal:            decimal.NewFromInt(55000),
		FinalCashBalance:     decimal.NewFromInt(45000),
		ArmoredTotal:         decimal.NewFromInt(5000),
		GrandDifferenceTotal: decimal.NewFromInt(200),
		BalanceUnexplained:   decimal.Zero,
		ValidationState:      domain.Unvalidated,
	}
}

func (suite *ClosingHandlerTestSuite) TestCreateClosing_Success() {
	closing := suite.sampleClosing()
	suite.mockClosingService.On("CreateClosing", mock.Anything, mock.AnythingOfType("dto.CreateClosingRequest"), "sup").Return(closing, nil)
	suite.mockClosingService.On("ClassifyClosing", mock.Anything, closing).Return("BALANCED", nil)

	w := suite.performRequest(http.MethodPost, "/api/v1/closings", dto.CreateClosingRequest{
		ClosingDate: "2025-03-01",
		Store:       "Solar",
		Cashier:     "ana",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ClosingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(7), resp.ClosingID)
	suite.Equal("BALANCED", resp.Severity)
	suite.Equal("UNVALIDATED", resp.ValidationStateName)
	suite.mockClosingService.AssertExpectations(suite.T())
}

func (suite *ClosingHandlerTestSuite) TestCreateClosing_Duplicate() {
	suite.mockClosingService.On("CreateClosing", mock.Anything, mock.AnythingOfType("dto.CreateClosingRequest"), "sup").Return(nil, apperrors.ErrDuplicate)

	w := suite.performRequest(http.MethodPost, "/api/v1/closings", dto.CreateClosingRequest{
		ClosingDate: "2025-03-01",
		Store:       "Solar",
		Cashier:     "ana",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ClosingHandlerTestSuite) TestCreateClosing_MissingFields() {
	w := suite.performRequest(http.MethodPost, "/api/v1/closings", map[string]string{"store": "Solar"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockClosingService.AssertNotCalled(suite.T(), "CreateClosing", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingHandlerTestSuite) TestGetClosing_NotFound() {
	suite.mockClosingService.On("GetClosingByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound)

	w := suite.performRequest(http.MethodGet, "/api/v1/closings/99", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ClosingHandlerTestSuite) TestGetClosing_InvalidID() {
	w := suite.performRequest(http.MethodGet, "/api/v1/closings/abc", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ClosingHandlerTestSuite) TestValidateClosing_InvalidTransition() {
	suite.mockClosingService.On("ValidateClosing", mock.Anything, int64(7), "sup").Return(nil, fmt.Errorf("%w: VALIDATED -> VALIDATED", apperrors.ErrInvalidTransition))

	w := suite.performRequest(http.MethodPost, "/api/v1/closings/7/validate", nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *ClosingHandlerTestSuite) TestValidateClosing_Success() {
	closing := suite.sampleClosing()
	closing.ValidationState = domain.Validated
	by := "sup"
	closing.ValidatedBy = &by
	suite.mockClosingService.On("ValidateClosing", mock.Anything, int64(7), "sup").Return(closing, nil)
	suite.mockClosingService.On("ClassifyClosing", mock.Anything, closing).Return("BALANCED", nil)

	w := suite.performRequest(http.MethodPost, "/api/v1/closings/7/validate", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ClosingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("VALIDATED", resp.ValidationStateName)
	suite.Require().NotNil(resp.ValidatedBy)
	suite.Equal("sup", *resp.ValidatedBy)
}

func (suite *ClosingHandlerTestSuite) TestClosingExists() {
	suite.mockClosingService.On("ClosingExists", mock.Anything, "2025-03-01", "Solar", "ana").Return(true, nil)

	w := suite.performRequest(http.MethodGet, "/api/v1/closings/exists?date=2025-03-01&store=Solar&cashier=ana", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ExistsClosingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Exists)
}

func (suite *ClosingHandlerTestSuite) TestClosingExists_MissingParams() {
	w := suite.performRequest(http.MethodGet, "/api/v1/closings/exists?date=2025-03-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ClosingHandlerTestSuite) TestRequestWithoutToken() {
	req, err := http.NewRequest(http.MethodGet, "/api/v1/closings", nil)
	suite.Require().NoError(err)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ClosingHandlerTestSuite) TestDeleteClosing() {
	suite.mockClosingService.On("DeleteClosing", mock.Anything, int64(7)).Return(nil)

	w := suite.performRequest(http.MethodDelete, "/api/v1/closings/7", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}
