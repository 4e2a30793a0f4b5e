package store

import (
	"strings"

	"github.com/harentsoaR/hospital-api/internal/apperr"
	"github.com/harentsoaR/hospital-api/internal/models"
)

// validateRegistration canonicalizes the input in place, checks its field
// rules and returns the parsed role.
func validateRegistration(op string, r *models.Registration) (models.Role, error) {
	r.Canonicalize()
	if err := models.Validate(r); err != nil {
		return "", apperr.Validation(op, "%v", err)
	}
	role, err := models.ParseRole(r.Role)
	if err != nil {
		return "", apperr.Validation(op, "%v", err)
	}
	return role, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
