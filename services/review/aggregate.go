package review

import (
	"math"

	"bikefix/models"
)

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// AggregateRatings computes a rating summary over a set of reviews: the
// arithmetic mean of the overall rating and of each sub-rating dimension,
// rounded to one decimal. Reviews that omit a dimension don't count toward
// that dimension's mean.
func AggregateRatings(reviews []models.Review) models.RatingSummary {
	if len(reviews) == 0 {
		return models.RatingSummary{}
	}

	var total int
	var dims = map[string]*struct{ sum, count int }{
		"serviceQuality": {},
		"priceValue":     {},
		"punctuality":    {},
		"communication":  {},
	}
	for _, r := range reviews {
		total += r.Rating
		for name, value := range map[string]int{
			"serviceQuality": r.SubRatings.ServiceQuality,
			"priceValue":     r.SubRatings.PriceValue,
			"punctuality":    r.SubRatings.Punctuality,
			"communication":  r.SubRatings.Communication,
		} {
			if value > 0 {
				dims[name].sum += value
				dims[name].count++
			}
		}
	}

	mean := func(name string) float64 {
		d := dims[name]
		if d.count == 0 {
			return 0
		}
		return round1(float64(d.sum) / float64(d.count))
	}

	return models.RatingSummary{
		AverageRating: round1(float64(total) / float64(len(reviews))),
		ReviewCount:   len(reviews),
		DetailedRating: models.DetailedRating{
			ServiceQuality: mean("serviceQuality"),
			PriceValue:     mean("priceValue"),
			Punctuality:    mean("punctuality"),
			Communication:  mean("communication"),
		},
	}
}

// RecomputeWorkshopRating rebuilds the denormalized rating fields on the
// workshop document from its active reviews. The computation is a pure
// function of the review set, so repeated runs converge on the same result.
func (s *DefaultReviewService) RecomputeWorkshopRating(workshopID string) error {
	reviews, err := s.Repo.ListByWorkshop(workshopID, []string{models.ReviewActive})
	if err != nil {
		return err
	}
	return s.UserRepo.UpdateRating(workshopID, AggregateRatings(reviews))
}
