package services

import (
	"strconv"
	"strings"

	"jobcard-backend/internal/models"

	"github.com/google/uuid"
)

// ClassifyIdentifier decides which representation an identifier is: an
// internal id, a raw sequence number, or a display number, tried in that order.
func ClassifyIdentifier(identifier string) models.JobcardRef {
	s := strings.TrimSpace(identifier)
	if id, ok := parseID(s); ok {
		return models.JobcardRef{Kind: models.RefByID, ID: id}
	}
	if isDigits(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return models.JobcardRef{Kind: models.RefBySequence, Seq: n}
		}
	}
	return models.JobcardRef{Kind: models.RefByDisplayNumber, DisplayNo: strings.ToUpper(s)}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseID accepts only internal ids in the canonical 36-character form
func parseID(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if len(id) != 36 {
		return "", false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
