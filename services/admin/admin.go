package admin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	adminRepo "kts/database/repository/admin"
	"kts/models"
	"kts/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

// ErrBadCredentials is returned for any failed login, without revealing
// whether the account exists.
var ErrBadCredentials = errors.New("invalid email or password")

// AdminService manages admin accounts, authentication and permissions.
type AdminService interface {
	Authenticate(email, password string) (*models.Admin, string, error)
	GetActor(adminID string) (*Actor, error)
	Create(name, email, password string, isSuper bool) (*models.Admin, error)
	Update(a *models.Admin) error
	Delete(id string) error
	List() ([]models.Admin, error)
	SetPermissions(adminID string, flags map[string]bool) error
	UpdatePassword(adminID, newPassword string) error
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Repo adminRepo.AdminRepository
}

// Authenticate verifies credentials and issues a JWT.
func (s *DefaultAdminService) Authenticate(email, password string) (*models.Admin, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	a, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if a == nil {
		return nil, "", ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrBadCredentials
	}

	token, err := utils.GenerateToken(a.ID, a.Email, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	a.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(a); err != nil {
		return nil, "", err
	}
	return a, token, nil
}

// GetActor loads an admin and its permission record for gate checks.
func (s *DefaultAdminService) GetActor(adminID string) (*Actor, error) {
	a, err := s.Repo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("admin %s not found", adminID)
	}
	perms, err := s.Repo.GetPermissions(adminID)
	if err != nil {
		return nil, err
	}
	return &Actor{Admin: a, Permissions: perms}, nil
}

// Create registers a new admin account.
func (s *DefaultAdminService) Create(name, email, password string, isSuper bool) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a := &models.Admin{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsSuperAdmin: isSuper,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update persists profile changes.
func (s *DefaultAdminService) Update(a *models.Admin) error {
	return s.Repo.Update(a)
}

// Delete removes an admin account and its permissions.
func (s *DefaultAdminService) Delete(id string) error {
	return s.Repo.Delete(id)
}

// List returns every admin account.
func (s *DefaultAdminService) List() ([]models.Admin, error) {
	return s.Repo.GetAll()
}

// SetPermissions replaces the permission flags for an admin.
func (s *DefaultAdminService) SetPermissions(adminID string, flags map[string]bool) error {
	a, err := s.Repo.GetByID(adminID)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("admin %s not found", adminID)
	}
	return s.Repo.SetPermissions(&models.AdminPermissions{AdminID: adminID, Flags: flags})
}

// UpdatePassword sets a new password for an admin.
func (s *DefaultAdminService) UpdatePassword(adminID, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	a, err := s.Repo.GetByID(adminID)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("admin %s not found", adminID)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	a.PasswordHash = string(hash)
	return s.Repo.Update(a)
}
