package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	portssvc "github.com/invomesh/invoice_marketplace_app/internal/core/ports/services"
	"github.com/invomesh/invoice_marketplace_app/internal/dto"
	"github.com/invomesh/invoice_marketplace_app/internal/handlers"
	"github.com/invomesh/invoice_marketplace_app/internal/middleware"
	"github.com/invomesh/invoice_marketplace_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

// Ensure mock implements the interface
var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

func (m *MockInvoiceService) GetInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListForCreator(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListPendingForBuyer(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListProcessedForBuyer(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListMarketplace(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListOwned(ctx context.Context, actor domain.Actor) ([]domain.Invoice, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) UploadInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ApproveInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) DeclineInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListForSale(ctx context.Context, actor domain.Actor, invoiceID string, listedPrice decimal.Decimal) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, invoiceID, listedPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) PurchaseInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) RepayInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, actor, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// --- Test Suite ---
type InvoiceHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockInvoiceService *MockInvoiceService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT carrying the full session context.
func (suite *InvoiceHandlerTestSuite) generateTestToken(userID, email, role string) string {
	token, err := utils.GenerateJWT(userID, email, role, suite.jwtSecret, time.Hour, "imp-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *InvoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockInvoiceService = new(MockInvoiceService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterInvoiceRoutes(v1, suite.mockInvoiceService)
}

// --- Test Cases ---

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_DateOnlyDueDate() {
	msmeID := uuid.NewString()
	created := &domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-1001",
		Status:        domain.StatusPending,
		Amount:        decimal.NewFromInt(3),
		DueDate:       time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
	}

	suite.mockInvoiceService.On("UploadInvoice",
		mock.Anything,
		mock.AnythingOfType("domain.Actor"),
		mock.MatchedBy(func(r dto.CreateInvoiceRequest) bool {
			return r.DueDate == "2026-09-30"
		}),
	).Return(created, nil).Once()

	payload, _ := json.Marshal(dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-1001",
		Amount:        decimal.NewFromInt(3),
		DueDate:       "2026-09-30",
		BuyerEmail:    "payer@buyer.example",
		PdfURL:        "https://docs.example/inv-1001.pdf",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(msmeID, "seller@msme.example", "msme"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestCreateInvoice_RejectsNonDateDueDate() {
	payload, _ := json.Marshal(dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-1001",
		Amount:        decimal.NewFromInt(3),
		DueDate:       "2026-09-30T00:00:00Z",
		BuyerEmail:    "payer@buyer.example",
		PdfURL:        "https://docs.example/inv-1001.pdf",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString(), "seller@msme.example", "msme"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "UploadInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestApproveInvoice_Success() {
	invoiceID := uuid.NewString()
	buyerID := uuid.NewString()
	approved := &domain.Invoice{
		InvoiceID:         invoiceID,
		Status:            domain.StatusAcknowledged,
		BuyerAcknowledged: true,
		BuyerEmail:        "payer@buyer.example",
		Amount:            decimal.NewFromInt(3),
	}

	suite.mockInvoiceService.On("ApproveInvoice",
		mock.Anything,
		mock.MatchedBy(func(a domain.Actor) bool {
			return a.UserID == buyerID && a.Role == domain.RoleBuyer && a.Email == "payer@buyer.example"
		}),
		invoiceID,
	).Return(approved, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/"+invoiceID+"/approve", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(buyerID, "payer@buyer.example", "buyer"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.InvoiceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(string(domain.StatusAcknowledged), body.Status)
	suite.True(body.BuyerAcknowledged)

	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestApproveInvoice_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/"+uuid.NewString()+"/approve", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "ApproveInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceHandlerTestSuite) TestListForSale_PartialSuccessCarriesTxHash() {
	invoiceID := uuid.NewString()
	msmeID := uuid.NewString()
	price := decimal.NewFromFloat(1.5)

	suite.mockInvoiceService.On("ListForSale",
		mock.Anything,
		mock.AnythingOfType("domain.Actor"),
		invoiceID,
		price,
	).Return(nil, apperrors.NewPartialSuccess("0xfeed", apperrors.ErrPersistence)).Once()

	payload, _ := json.Marshal(dto.ListForSaleRequest{ListedPrice: price})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/"+invoiceID+"/list", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(msmeID, "seller@msme.example", "msme"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadGateway, w.Code)

	var body map[string]any
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("0xfeed", body["txHash"])

	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *InvoiceHandlerTestSuite) TestListForSale_ForbiddenMapsTo403() {
	invoiceID := uuid.NewString()
	price := decimal.NewFromInt(2)

	suite.mockInvoiceService.On("ListForSale",
		mock.Anything,
		mock.AnythingOfType("domain.Actor"),
		invoiceID,
		price,
	).Return(nil, apperrors.ErrForbidden).Once()

	payload, _ := json.Marshal(dto.ListForSaleRequest{ListedPrice: price})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/"+invoiceID+"/list", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString(), "seller@msme.example", "msme"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *InvoiceHandlerTestSuite) TestMarketplace_Success() {
	tokenID := "4"
	price := decimal.NewFromInt(2)
	listed := []domain.Invoice{{
		InvoiceID:   uuid.NewString(),
		Status:      domain.StatusTokenized,
		TokenID:     &tokenID,
		ListedPrice: &price,
		Amount:      decimal.NewFromInt(3),
	}}

	suite.mockInvoiceService.On("ListMarketplace", mock.Anything).Return(listed, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices/marketplace", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString(), "funds@investor.example", "investor"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListInvoicesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Invoices, 1)
	suite.Equal(string(domain.StatusTokenized), body.Invoices[0].Status)
	// An investor viewing a marketplace invoice should be offered the purchase action.
	suite.Contains(body.Invoices[0].AllowedActions, domain.TransitionPurchase)

	suite.mockInvoiceService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestInvoiceHandler(t *testing.T) {
	suite.Run(t, new(InvoiceHandlerTestSuite))
}
