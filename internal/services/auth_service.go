package services

import (
	"context"
	"errors"

	"github.com/brendimo/spinwheel-backend/internal/config"
	"github.com/brendimo/spinwheel-backend/internal/models"
	"github.com/brendimo/spinwheel-backend/internal/repositories"
	"github.com/brendimo/spinwheel-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a failed login attempt
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService defines the interface for admin authentication operations
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (string, error) // Returns JWT token
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error)
}

type authService struct {
	adminUserRepo repositories.AdminUserRepository
	cfg           *config.Config
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(adminUserRepo repositories.AdminUserRepository, cfg *config.Config) AuthService {
	return &authService{
		adminUserRepo: adminUserRepo,
		cfg:           cfg,
	}
}

// Login checks admin credentials and issues a JWT token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	adminUser, err := s.adminUserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminUser.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(adminUser.ID.Hex(), adminUser.Role, s.cfg)
}

// Register creates a new admin account
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error) {
	if _, err := s.adminUserRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("admin user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	adminUser := &models.AdminUser{
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     "admin",
	}
	if err := s.adminUserRepo.Create(ctx, adminUser); err != nil {
		return nil, errors.New("failed to create admin user")
	}

	adminUser.Password = ""
	return adminUser, nil
}
