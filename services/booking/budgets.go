package booking

import (
	"fmt"
	"time"

	"bikefix/models"
	"bikefix/utils"
)

// AddAdditionalBudget lets the workshop propose extra work discovered
// mid-service. The appointment moves to waiting_approval until the cyclist
// responds.
func (s *DefaultBookingService) AddAdditionalBudget(appointmentID string, actor *models.User, items []models.BudgetItem) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if actor.ID != appt.WorkshopID {
		return nil, utils.NewForbiddenError("only the workshop can propose an additional budget")
	}
	if !CanTransition(appt.Status, models.StatusWaitingApproval) {
		return nil, utils.NewInvalidTransitionError(appt.Status, models.StatusWaitingApproval)
	}
	if len(items) == 0 {
		return nil, utils.NewValidationError("a budget needs at least one item")
	}

	var total float64
	for _, item := range items {
		if item.Amount <= 0 {
			return nil, utils.NewValidationError("budget item amounts must be positive")
		}
		total += item.Amount
	}

	appt.AdditionalBudgets = append(appt.AdditionalBudgets, models.AdditionalBudget{
		Items:       items,
		TotalAmount: total,
		Status:      models.BudgetPending,
		SentAt:      time.Now(),
	})
	appt.Status = models.StatusWaitingApproval
	if err := s.Repo.Update(appt); err != nil {
		return nil, err
	}

	s.Notifier.Notify(appt.CyclistID, models.NotifBudgetProposed,
		fmt.Sprintf("Additional budget of %.2f proposed for your appointment", total),
		map[string]any{"appointmentId": appt.ID})
	return appt, nil
}

// RespondAdditionalBudget records the cyclist's decision on a pending budget
// entry. Approval folds the budget total into the pricing and recomputes the
// commission; rejection leaves pricing untouched. Either way the appointment
// returns to confirmed. Responding to an already-resolved entry is a
// conflict, so a duplicate approval can never double-count.
func (s *DefaultBookingService) RespondAdditionalBudget(appointmentID string, actor *models.User, budgetIndex int, approve bool) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if actor.ID != appt.CyclistID {
		return nil, utils.NewForbiddenError("only the cyclist can respond to an additional budget")
	}
	if appt.Status != models.StatusWaitingApproval {
		return nil, utils.NewInvalidTransitionError(appt.Status, models.StatusConfirmed)
	}
	if budgetIndex < 0 || budgetIndex >= len(appt.AdditionalBudgets) {
		return nil, utils.NewNotFoundError("budget entry not found")
	}

	entry := &appt.AdditionalBudgets[budgetIndex]
	if entry.Status != models.BudgetPending {
		return nil, utils.NewConflictError("budget entry has already been %s", entry.Status)
	}

	now := time.Now()
	entry.RespondedAt = &now
	if approve {
		entry.Status = models.BudgetApproved
		pricing, err := s.computePricing(appt.WorkshopID, appt.Pricing.BasePrice,
			appt.Pricing.AdditionalPrice+entry.TotalAmount)
		if err != nil {
			return nil, err
		}
		appt.Pricing = *pricing
	} else {
		entry.Status = models.BudgetRejected
	}
	appt.Status = models.StatusConfirmed
	if err := s.Repo.Update(appt); err != nil {
		return nil, err
	}

	decision := "rejected"
	if approve {
		decision = "approved"
	}
	s.Notifier.Notify(appt.WorkshopID, models.NotifBudgetResolved,
		"Additional budget was "+decision,
		map[string]any{"appointmentId": appt.ID})
	return appt, nil
}
