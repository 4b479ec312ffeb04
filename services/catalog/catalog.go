package catalog

import (
	"errors"
	"strings"

	serviceRepo "kts/database/repository/service"
	"kts/models"

	"github.com/google/uuid"
)

// CatalogService manages the services catalog.
type CatalogService interface {
	ListPublic() ([]models.Service, error)
	ListAll() ([]models.Service, error)
	Get(id string) (*models.Service, error)
	Create(svc *models.Service) error
	Update(svc *models.Service) error
	Delete(id string) error
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo serviceRepo.ServiceRepository
}

// ListPublic returns active, visible services in display order. This is what
// the website and the booking wizard show.
func (s *DefaultCatalogService) ListPublic() ([]models.Service, error) {
	return s.Repo.GetVisible()
}

// ListAll returns every service for the admin screen.
func (s *DefaultCatalogService) ListAll() ([]models.Service, error) {
	return s.Repo.GetAll()
}

// Get returns one service, nil when absent.
func (s *DefaultCatalogService) Get(id string) (*models.Service, error) {
	return s.Repo.GetByID(id)
}

// Create stores a new catalog entry.
func (s *DefaultCatalogService) Create(svc *models.Service) error {
	if strings.TrimSpace(svc.Name) == "" {
		return errors.New("service name is required")
	}
	if svc.Price != nil && *svc.Price < 0 {
		return errors.New("service price must not be negative")
	}
	svc.ID = uuid.New().String()
	return s.Repo.Create(svc)
}

// Update persists changes to a catalog entry.
func (s *DefaultCatalogService) Update(svc *models.Service) error {
	if strings.TrimSpace(svc.Name) == "" {
		return errors.New("service name is required")
	}
	if svc.Price != nil && *svc.Price < 0 {
		return errors.New("service price must not be negative")
	}
	return s.Repo.Update(svc)
}

// Delete removes a catalog entry.
func (s *DefaultCatalogService) Delete(id string) error {
	return s.Repo.Delete(id)
}
