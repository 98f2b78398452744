package utils

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// BuildOrderID derives the gateway order id from a booking id.
// The gateway caps order ids at 15 characters, so we take "BK" plus the
// first 13 hex digits of the booking UUID. Deterministic per booking so a
// retried session creation reuses the same reference.
func BuildOrderID(bookingID uuid.UUID) string {
	short := strings.ReplaceAll(bookingID.String(), "-", "")
	if len(short) > 13 {
		short = short[:13]
	}
	return "BK" + short
}
