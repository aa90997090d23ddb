package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	portsrepo "github.com/invomesh/invoice_marketplace_app/internal/core/ports/repositories"
	portssvc "github.com/invomesh/invoice_marketplace_app/internal/core/ports/services"
	"github.com/invomesh/invoice_marketplace_app/internal/core/services"
	"github.com/invomesh/invoice_marketplace_app/internal/dto"
	"github.com/invomesh/invoice_marketplace_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

// Ensure MockUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, deletedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Email:    "Seller@MSME.example",
		Name:     "Seller Co",
		Password: "a-strong-password",
		Role:     "msme",
	}

	suite.mockRepo.On("FindUserByEmail", ctx, "seller@msme.example").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(created.UserID)
	suite.Equal("seller@msme.example", created.Email)
	suite.Equal(domain.RoleMSME, created.Role)
	suite.Equal(domain.ProviderLocal, created.AuthProvider)
	suite.True(utils.CheckPasswordHash(req.Password, created.PasswordHash))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "seller@msme.example"}

	suite.mockRepo.On("FindUserByEmail", ctx, "seller@msme.example").Return(existing, nil).Once()

	_, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{
		Email:    "seller@msme.example",
		Password: "a-strong-password",
		Role:     "msme",
	})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownRole() {
	_, err := suite.service.CreateUser(context.Background(), dto.CreateUserRequest{
		Email:    "x@example.com",
		Password: "a-strong-password",
		Role:     "admin",
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_ReturnsExisting() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "payer@buyer.example", Role: domain.RoleBuyer}

	suite.mockRepo.On("FindUserByEmail", ctx, "payer@buyer.example").Return(existing, nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, "Payer", "payer@buyer.example", domain.ProviderGoogle, domain.RoleBuyer)

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_AppliesOnlySetFields() {
	ctx := context.Background()
	existing := &domain.User{
		UserID: uuid.NewString(),
		Email:  "payer@buyer.example",
		Name:   "Old Name",
		Role:   domain.RoleBuyer,
	}
	wallet := "0x1111111111111111111111111111111111111111"

	suite.mockRepo.On("FindUserByID", ctx, existing.UserID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == "Old Name" && u.WalletAddress != nil && *u.WalletAddress == wallet
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, existing.UserID, dto.UpdateUserRequest{WalletAddress: &wallet})

	suite.Require().NoError(err)
	suite.Equal("Old Name", updated.Name)
	suite.Require().NotNil(updated.WalletAddress)
	suite.Equal(wallet, *updated.WalletAddress)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_MarksDeleted() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("MarkUserDeleted", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_AlreadyGone() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("MarkUserDeleted", ctx, userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteUser(ctx, userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
