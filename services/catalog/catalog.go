package catalog

import (
	"strings"
	"time"

	"bikefix/models"
	"bikefix/utils"

	"github.com/google/uuid"
)

func (s *DefaultCatalogService) CreateService(actor *models.User, in ServiceInput) (*models.Service, error) {
	if !actor.IsWorkshop() {
		return nil, utils.NewForbiddenError("only workshops can manage services")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	now := time.Now()
	svc := &models.Service{
		ID:              uuid.New().String(),
		WorkshopID:      actor.ID,
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
		Active:          active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *DefaultCatalogService) UpdateService(id string, actor *models.User, in ServiceInput) (*models.Service, error) {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc.WorkshopID != actor.ID {
		return nil, utils.NewForbiddenError("service belongs to another workshop")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	svc.Name = strings.TrimSpace(in.Name)
	svc.Description = in.Description
	svc.Price = in.Price
	svc.DurationMinutes = in.DurationMinutes
	if in.Active != nil {
		svc.Active = *in.Active
	}
	svc.UpdatedAt = time.Now()

	if err := s.Repo.Update(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *DefaultCatalogService) DeleteService(id string, actor *models.User) error {
	svc, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if svc.WorkshopID != actor.ID {
		return utils.NewForbiddenError("service belongs to another workshop")
	}
	return s.Repo.Delete(id)
}

func (s *DefaultCatalogService) ListByWorkshop(workshopID string, actor *models.User) ([]models.Service, error) {
	activeOnly := actor == nil || actor.ID != workshopID
	return s.Repo.ListByWorkshop(workshopID, activeOnly)
}

func validateInput(in ServiceInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return utils.NewValidationError("service name is required")
	}
	if in.Price <= 0 {
		return utils.NewValidationError("price must be positive")
	}
	if in.DurationMinutes < 0 {
		return utils.NewValidationError("durationMinutes cannot be negative")
	}
	return nil
}
