package user

import (
	"time"

	"bikefix/models"
	"bikefix/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 72 * time.Hour

// Register creates a cyclist or workshop account and signs the caller in.
// The welcome email is best effort and never fails registration.
func (s *DefaultUserService) Register(input RegisterInput) (*AuthResponse, error) {
	if input.Role != models.RoleCyclist && input.Role != models.RoleWorkshop {
		return nil, utils.NewValidationError("role must be %q or %q", models.RoleCyclist, models.RoleWorkshop)
	}
	if input.Role == models.RoleWorkshop && input.Address == "" {
		return nil, utils.NewValidationError("workshops must provide an address")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Role:         input.Role,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}

	s.Notifier.Email(u.Email, "Welcome to BikeFix",
		"Your "+u.Role+" account is ready.")

	return s.issueToken(u)
}

// Authenticate verifies credentials and issues a fresh token, revoking any
// previous one via the stored token hash.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, utils.NewForbiddenError("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, utils.NewForbiddenError("invalid credentials")
	}
	return s.issueToken(u)
}

func (s *DefaultUserService) issueToken(u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, tokenDuration)
	if err != nil {
		return nil, utils.NewInternalError("failed to issue token", err)
	}
	u.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return &AuthResponse{
		ID:    u.ID,
		Role:  u.Role,
		Name:  u.Name,
		Email: u.Email,
		Token: token,
	}, nil
}

func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultUserService) UpdateProfile(userID string, updates ProfileUpdates) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		u.Name = *updates.Name
	}
	if updates.PhoneNumber != nil {
		u.PhoneNumber = *updates.PhoneNumber
	}
	if updates.Address != nil {
		u.Address = *updates.Address
	}
	if updates.Description != nil {
		u.Description = *updates.Description
	}
	if updates.WorkingHours != nil {
		if !u.IsWorkshop() {
			return nil, utils.NewValidationError("only workshops have working hours")
		}
		for day, hours := range updates.WorkingHours {
			if _, err := time.Parse("15:04", hours.Open); err != nil {
				return nil, utils.NewValidationError("invalid opening time for %s", day)
			}
			if _, err := time.Parse("15:04", hours.Close); err != nil {
				return nil, utils.NewValidationError("invalid closing time for %s", day)
			}
		}
		u.WorkingHours = updates.WorkingHours
	}

	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *DefaultUserService) RevokeToken(userID string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	u.TokenHash = ""
	return s.Repo.Update(u)
}

func (s *DefaultUserService) ListWorkshops() ([]models.User, error) {
	return s.Repo.ListByRole(models.RoleWorkshop)
}
