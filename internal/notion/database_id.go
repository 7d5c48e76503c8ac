package notion

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDatabaseID indicates input that contains no database ID.
var ErrInvalidDatabaseID = errors.New("invalid database ID")

const databaseIDLength = 32

// ExtractDatabaseID pulls a 32-character database ID out of a Notion URL or
// a raw ID, with or without dashes. The ID is returned without dashes.
func ExtractDatabaseID(input string) (string, error) {
	input = strings.TrimSpace(input)

	if i := strings.Index(input, "?"); i >= 0 {
		input = input[:i]
	}

	if i := strings.LastIndex(input, "/"); i >= 0 {
		input = input[i+1:]
	}

	// Page URLs carry a slug before the ID, joined by dashes.
	if i := strings.LastIndex(input, "-"); i >= 0 && len(input)-i-1 == databaseIDLength {
		input = input[i+1:]
	}

	id := strings.ReplaceAll(input, "-", "")
	if len(id) != databaseIDLength || !isHex(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDatabaseID, input)
	}

	return id, nil
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}

	return true
}
