package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinRating       = 1
	MaxRating       = 5
	MinDetailLength = 10
)

var (
	ErrRatingOutOfRange   = errors.New("rating out of range")
	ErrInsufficientDetail = errors.New("insufficient detail")
	ErrInvalidEmail       = errors.New("invalid contact email")
	ErrUnknownCategory    = errors.New("unknown feedback category")
)

type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryPulseTracking Category = "pulseTracking"
	CategoryUserInterface Category = "userInterface"
	CategoryPerformance   Category = "performance"
	CategoryFeatures      Category = "features"
)

var categories = []Category{
	CategoryGeneral,
	CategoryPulseTracking,
	CategoryUserInterface,
	CategoryPerformance,
	CategoryFeatures,
}

// Categories lists the closed set of categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Validate() error {
	switch c {
	case CategoryGeneral, CategoryPulseTracking, CategoryUserInterface, CategoryPerformance, CategoryFeatures:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
}

// MustValid panics for a category outside the closed set. Code paths that
// construct categories themselves treat that as a programming error.
func (c Category) MustValid() Category {
	if err := c.Validate(); err != nil {
		panic("feedback: " + err.Error())
	}
	return c
}

// ParseCategory maps user input (case-insensitive) onto the closed set.
func ParseCategory(raw string) (Category, error) {
	want := strings.TrimSpace(raw)
	for _, c := range categories {
		if strings.EqualFold(string(c), want) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

func (c Category) Label() string {
	switch c {
	case CategoryGeneral:
		return "General"
	case CategoryPulseTracking:
		return "Pulse tracking"
	case CategoryUserInterface:
		return "User interface"
	case CategoryPerformance:
		return "Performance"
	case CategoryFeatures:
		return "Feature request"
	}
	panic(fmt.Sprintf("feedback: unknown category %q", string(c)))
}

// Result is the outcome of form validation. Reason is empty when Valid.
type Result struct {
	Valid  bool
	Reason string
}

// Check validates the rating and body text of a feedback form.
func Check(rating int, text string) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrRatingOutOfRange, rating, MinRating, MaxRating)
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinDetailLength {
		return ErrInsufficientDetail
	}
	return nil
}

func Validate(rating int, text string) Result {
	err := Check(rating, text)
	switch {
	case err == nil:
		return Result{Valid: true}
	case errors.Is(err, ErrRatingOutOfRange):
		return Result{Reason: ErrRatingOutOfRange.Error()}
	default:
		return Result{Reason: err.Error()}
	}
}

// Draft is the editable state of the feedback form.
type Draft struct {
	Rating       int
	Category     Category
	Text         string
	ContactEmail string
	FollowUp     bool
}

func (d Draft) Validate() error {
	d.Category.MustValid()
	if err := Check(d.Rating, d.Text); err != nil {
		return err
	}
	if email := strings.TrimSpace(d.ContactEmail); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidEmail, email)
		}
	}
	return nil
}

// Submission is the immutable snapshot handed to the submission
// collaborator. It is never stored locally.
type Submission struct {
	ID           string
	Rating       int
	Category     Category
	Text         string
	SubmittedAt  time.Time
	AppVersion   string
	ContactEmail string
	FollowUp     bool
}

func NewSubmission(id string, d Draft, at time.Time, appVersion string) Submission {
	return Submission{
		ID:           id,
		Rating:       d.Rating,
		Category:     d.Category,
		Text:         strings.TrimSpace(d.Text),
		SubmittedAt:  at,
		AppVersion:   appVersion,
		ContactEmail: strings.TrimSpace(d.ContactEmail),
		FollowUp:     d.FollowUp,
	}
}
