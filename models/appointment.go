package models

import "time"

// Appointment statuses.
const (
	StatusPending         = "pending"
	StatusConfirmed       = "confirmed"
	StatusInProgress      = "in_progress"
	StatusWaitingApproval = "waiting_approval"
	StatusCompleted       = "completed"
	StatusCancelled       = "cancelled"
	StatusRejected        = "rejected"
)

// Additional-budget entry statuses.
const (
	BudgetPending  = "pending"
	BudgetApproved = "approved"
	BudgetRejected = "rejected"
)

// Pricing is the money breakdown embedded in an appointment. TotalPrice is
// always BasePrice + AdditionalPrice; the fee fields are derived from the
// commission policy against TotalPrice.
type Pricing struct {
	BasePrice       float64 `bson:"basePrice" json:"basePrice"`
	AdditionalPrice float64 `bson:"additionalPrice" json:"additionalPrice"`
	TotalPrice      float64 `bson:"totalPrice" json:"totalPrice"`
	PlatformFeeRate float64 `bson:"platformFeeRate" json:"platformFeeRate"`
	PlatformFee     float64 `bson:"platformFee" json:"platformFee"`
	WorkshopAmount  float64 `bson:"workshopAmount" json:"workshopAmount"`
}

// BudgetItem is one line of an additional-budget proposal.
type BudgetItem struct {
	Description string  `bson:"description" json:"description"`
	Amount      float64 `bson:"amount" json:"amount"`
}

// AdditionalBudget is a mid-service cost proposal raised by the workshop.
// It must be approved or rejected by the cyclist before work continues.
type AdditionalBudget struct {
	Items       []BudgetItem `bson:"items" json:"items"`
	TotalAmount float64      `bson:"totalAmount" json:"totalAmount"`
	Status      string       `bson:"status" json:"status"`
	SentAt      time.Time    `bson:"sentAt" json:"sentAt"`
	RespondedAt *time.Time   `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
}

// RequestedService is a snapshot of a catalog service at booking time.
type RequestedService struct {
	ServiceID string  `bson:"serviceId" json:"serviceId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
}

// Appointment is one booking between a cyclist and a workshop.
type Appointment struct {
	ID         string `bson:"id" json:"id"`
	CyclistID  string `bson:"cyclistId" json:"cyclistId"`
	WorkshopID string `bson:"workshopId" json:"workshopId"`

	Date string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time string `bson:"time" json:"time"` // "HH:MM", slot start

	Status            string             `bson:"status" json:"status"`
	RequestedServices []RequestedService `bson:"requestedServices" json:"requestedServices"`
	Pricing           Pricing            `bson:"pricing" json:"pricing"`
	AdditionalBudgets []AdditionalBudget `bson:"additionalBudgets,omitempty" json:"additionalBudgets,omitempty"`

	Notes            string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CancelledBy      string     `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancellationNote string     `bson:"cancellationNote,omitempty" json:"cancellationNote,omitempty"`
	CompletedAt      *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsTerminal reports whether the appointment can no longer change state.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// ScheduledAt combines the date and time fields into a single instant.
func (a *Appointment) ScheduledAt() (time.Time, error) {
	return time.Parse("2006-01-02 15:04", a.Date+" "+a.Time)
}
