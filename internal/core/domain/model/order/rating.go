package order

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating constructor")
)

// RatingScores are the four 1-5 sub-scores of a post-delivery rating.
type RatingScores struct {
	Quality  int
	Delivery int
	Service  int
	Value    int
}

// Rating is a post-delivery feedback record attached to an order, at most one
// per party. The overall score is the rounded mean of the four sub-scores.
type Rating struct { //nolint:recvcheck //using for validation
	scores  RatingScores
	overall int
	review  string
	ratedAt time.Time

	guard guard.ConstructorGuard
}

// NewRating creates a rating from four 1-5 sub-scores and an optional review.
func NewRating(scores RatingScores, review string, ratedAt time.Time) (Rating, error) {
	r := Rating{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		validateScore("quality", scores.Quality),
		validateScore("delivery", scores.Delivery),
		validateScore("service", scores.Service),
		validateScore("value", scores.Value),
	); err != nil {
		return Rating{}, err
	}

	if ratedAt.IsZero() {
		return Rating{}, errs.NewValueIsRequiredError("rating timestamp")
	}

	r.scores = scores
	r.review = review
	r.ratedAt = ratedAt
	r.overall = (scores.Quality + scores.Delivery + scores.Service + scores.Value + 2) / 4
	return r, nil
}

func validateScore(name string, score int) error {
	if score < 1 || score > 5 {
		return errs.NewValueIsOutOfRangeError(name, score, 1, 5)
	}
	return nil
}

// Validate ensures the rating was created through the constructor.
func (r Rating) Validate() error {
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

// Scores returns the four sub-scores.
func (r Rating) Scores() RatingScores {
	return r.scores
}

// Overall returns the overall 1-5 score derived from the sub-scores.
func (r Rating) Overall() int {
	return r.overall
}

// Review returns the optional free-text review.
func (r Rating) Review() string {
	return r.review
}

// RatedAt returns when the rating was submitted.
func (r Rating) RatedAt() time.Time {
	return r.ratedAt
}
