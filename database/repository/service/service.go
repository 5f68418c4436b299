package serviceRepo

import "bikefix/models"

// ServiceRepository defines methods for service-catalog data access.
type ServiceRepository interface {
	// Create inserts a new catalog service.
	Create(service *models.Service) error
	// GetByID retrieves a service by its unique ID.
	GetByID(id string) (*models.Service, error)
	// GetMany retrieves the services with the given IDs.
	GetMany(ids []string) ([]models.Service, error)
	// Update replaces an existing service document.
	Update(service *models.Service) error
	// Delete removes a service by its ID.
	Delete(id string) error
	// ListByWorkshop returns a workshop's services, active only when
	// activeOnly is set.
	ListByWorkshop(workshopID string, activeOnly bool) ([]models.Service, error)
}
