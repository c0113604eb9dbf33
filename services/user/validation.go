package user

import (
	"fmt"
	"regexp"
	"strings"

	"clinichub/models"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// VerifyPasswordComplexity checks that the password meets complexity requirements.
func VerifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
		hasSymbol = regexp.MustCompile(`[\W_]`).MatchString(pw)
	)
	if !hasMinLen {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must include at least one number")
	}
	if !hasSymbol {
		return fmt.Errorf("password must include at least one symbol")
	}
	return nil
}

// ValidEmail reports whether email looks like a deliverable address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidPhone reports whether phone holds 10 to 15 digits with an optional leading '+'.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// ValidateAccount checks the fields shared by every account form.
func ValidateAccount(name, email, phone, password string) error {
	verr := &models.ValidationError{}
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "name is required")
	}
	if !ValidEmail(email) {
		verr.Add("email", "enter a valid email address")
	}
	if !ValidPhone(phone) {
		verr.Add("phone", "enter a valid phone number")
	}
	if err := VerifyPasswordComplexity(password); err != nil {
		verr.Add("password", err.Error())
	}
	return verr.OrNil()
}
