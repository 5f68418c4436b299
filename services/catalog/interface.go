package catalog

import (
	serviceRepo "bikefix/database/repository/service"
	"bikefix/models"
)

// ServiceInput carries the writable fields of a catalog service.
type ServiceInput struct {
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	Active          *bool
}

// CatalogService manages the repair services a workshop offers.
type CatalogService interface {
	CreateService(actor *models.User, in ServiceInput) (*models.Service, error)
	UpdateService(id string, actor *models.User, in ServiceInput) (*models.Service, error)
	DeleteService(id string, actor *models.User) error
	// ListByWorkshop returns a workshop's catalog. Non-owners only see
	// active services.
	ListByWorkshop(workshopID string, actor *models.User) ([]models.Service, error)
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo serviceRepo.ServiceRepository
}
