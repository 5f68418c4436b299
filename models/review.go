package models

import "time"

// Review statuses.
const (
	ReviewActive   = "active"
	ReviewHidden   = "hidden"
	ReviewReported = "reported"
)

// SubRatings are the optional per-dimension scores, each 1..5 when set.
type SubRatings struct {
	ServiceQuality int `bson:"serviceQuality,omitempty" json:"serviceQuality,omitempty"`
	PriceValue     int `bson:"priceValue,omitempty" json:"priceValue,omitempty"`
	Punctuality    int `bson:"punctuality,omitempty" json:"punctuality,omitempty"`
	Communication  int `bson:"communication,omitempty" json:"communication,omitempty"`
}

// ReviewResponse is the workshop's single reply to a review.
type ReviewResponse struct {
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ReviewVote records one user's helpful / not-helpful vote.
type ReviewVote struct {
	UserID  string    `bson:"userId" json:"userId"`
	Helpful bool      `bson:"helpful" json:"helpful"`
	VotedAt time.Time `bson:"votedAt" json:"votedAt"`
}

// ReviewReport records one user's report against a review. Reports never
// auto-hide the review; moderation is a manual admin action.
type ReviewReport struct {
	UserID     string    `bson:"userId" json:"userId"`
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"`
	ReportedAt time.Time `bson:"reportedAt" json:"reportedAt"`
}

// Review is a cyclist's rating of a completed appointment, unique per
// appointment.
type Review struct {
	ID            string `bson:"id" json:"id"`
	AppointmentID string `bson:"appointmentId" json:"appointmentId"`
	CyclistID     string `bson:"cyclistId" json:"cyclistId"`
	WorkshopID    string `bson:"workshopId" json:"workshopId"`

	Rating     int        `bson:"rating" json:"rating"` // 1..5
	SubRatings SubRatings `bson:"subRatings,omitempty" json:"subRatings,omitempty"`
	Comment    string     `bson:"comment,omitempty" json:"comment,omitempty"`
	Status     string     `bson:"status" json:"status"`

	Response *ReviewResponse `bson:"response,omitempty" json:"response,omitempty"`
	Votes    []ReviewVote    `bson:"votes,omitempty" json:"votes,omitempty"`
	Reports  []ReviewReport  `bson:"reports,omitempty" json:"reports,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
