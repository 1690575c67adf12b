package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// ErrInvalidToken is returned when a token cannot be decoded or no longer points into the list.
var ErrInvalidToken = errors.New("invalid pagination token")

// EncodeToken creates a base64 encoded cursor from an entry's creation time and id.
func EncodeToken(createdAt time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", createdAt.Format(timeFormat), id)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded cursor back into creation time and id.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w (base64 decode): %v", ErrInvalidToken, err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("%w (split)", ErrInvalidToken)
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w (created_at parse): %v", ErrInvalidToken, err)
	}
	return createdAt, parts[1], nil
}

// Cursor extracts the fields a token is built from.
type Cursor[T any] func(item T) (createdAt time.Time, id string)

// Page returns up to limit items following the entry named by token, plus the
// token for the next page (nil on the last page). A limit <= 0 returns everything after the cursor.
// Items must be in a stable, append-only order.
func Page[T any](items []T, limit int, token string, cursor Cursor[T]) ([]T, *string, error) {
	start := 0
	if token != "" {
		createdAt, id, err := DecodeToken(token)
		if err != nil {
			return nil, nil, err
		}
		start = -1
		for i, item := range items {
			c, itemID := cursor(item)
			if itemID == id && c.Equal(createdAt) {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, nil, fmt.Errorf("%w: cursor not found", ErrInvalidToken)
		}
	}

	rest := items[start:]
	if limit <= 0 || len(rest) <= limit {
		return rest, nil, nil
	}
	page := rest[:limit]
	createdAt, id := cursor(page[len(page)-1])
	next := EncodeToken(createdAt, id)
	return page, &next, nil
}
