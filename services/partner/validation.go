// Package partner holds pure profile validators. They run in the use-case
// layer before any repository call; the datasource layer does not re-validate.
package partner

import (
	"fmt"
	"regexp"
)

// ValidationError describes a rejected field value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	MaxServicePrice = 1_000_000
	MaxExperience   = 50
	MaxBioLength    = 500
	MaxServices     = 10
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// Vietnamese mobile numbers: leading 0 or +84 followed by a 3/5/7/8/9
	// carrier prefix and eight digits.
	phonePattern     = regexp.MustCompile(`^(0|\+84)(3|5|7|8|9)\d{8}$`)
	serviceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
)

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePhone checks Vietnamese mobile number format.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return &ValidationError{Field: "phone", Message: "invalid Vietnamese phone number"}
	}
	return nil
}

// ValidatePrice bounds a service price to (0, 1,000,000].
func ValidatePrice(price float64) error {
	if price <= 0 {
		return &ValidationError{Field: "price", Message: "price must be greater than zero"}
	}
	if price > MaxServicePrice {
		return &ValidationError{Field: "price", Message: fmt.Sprintf("price must not exceed %d", MaxServicePrice)}
	}
	return nil
}

// ValidateExperienceYears bounds experience to [0, 50].
func ValidateExperienceYears(years int) error {
	if years < 0 || years > MaxExperience {
		return &ValidationError{Field: "experienceYears", Message: fmt.Sprintf("experience must be between 0 and %d years", MaxExperience)}
	}
	return nil
}

// ValidateBio bounds the profile bio to 500 characters.
func ValidateBio(bio string) error {
	if len([]rune(bio)) > MaxBioLength {
		return &ValidationError{Field: "bio", Message: fmt.Sprintf("bio must not exceed %d characters", MaxBioLength)}
	}
	return nil
}

// ValidateServices checks the offered service list: 1-10 entries, unique,
// alphanumeric/underscore/hyphen ids.
func ValidateServices(serviceIDs []string) error {
	if len(serviceIDs) == 0 {
		return &ValidationError{Field: "services", Message: "at least one service is required"}
	}
	if len(serviceIDs) > MaxServices {
		return &ValidationError{Field: "services", Message: fmt.Sprintf("at most %d services are allowed", MaxServices)}
	}
	seen := make(map[string]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		if !serviceIDPattern.MatchString(id) {
			return &ValidationError{Field: "services", Message: fmt.Sprintf("invalid service id %q", id)}
		}
		if seen[id] {
			return &ValidationError{Field: "services", Message: fmt.Sprintf("duplicate service id %q", id)}
		}
		seen[id] = true
	}
	return nil
}
