package validator

import (
	"strings"

	"github.com/google/uuid"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// ValidateSendRequest checks the body of a send-friend-request call. Each
// operation accepts exactly one shape; anything else is rejected before the
// service runs.
func ValidateSendRequest(userID string) ValidationErrors {
	errs := make(ValidationErrors)

	userID = strings.TrimSpace(userID)
	if userID == "" {
		errs.Add("user_id", "User ID is required")
	} else if _, err := uuid.Parse(userID); err != nil {
		errs.Add("user_id", "User ID must be a valid UUID")
	}

	return errs
}

// ValidateRespond checks the body of a respond-to-request call.
func ValidateRespond(decision string) ValidationErrors {
	errs := make(ValidationErrors)

	switch decision {
	case "accept", "decline":
	case "":
		errs.Add("decision", "Decision is required")
	default:
		errs.Add("decision", "Decision must be accept or decline")
	}

	return errs
}
