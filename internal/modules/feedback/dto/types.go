package dto

import "time"

type SubmitInput struct {
	Rating       int
	Category     string
	Text         string
	ContactEmail string
	FollowUp     bool
}

type SubmitOutput struct {
	SubmissionID string
	SubmittedAt  time.Time
	Category     string
	// Acknowledged is always true once validation passed; Delivered reports
	// whether the submission collaborator accepted the hand-off.
	Acknowledged bool
	Delivered    bool
	Message      string
}

type ValidationOutput struct {
	Valid  bool
	Reason string
}

type CategoryOutput struct {
	ID    string
	Label string
}
