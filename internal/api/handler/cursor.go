package handler

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// PageCursor marks where the next page of a sorted, filtered list starts
type PageCursor struct {
	Offset int
	Sort   string
}

func DecodePageCursor(cursorStr string) (*PageCursor, error) {
	if cursorStr == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursorStr)
	if err != nil {
		return nil, err
	}

	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor format")
	}

	var offset int
	if _, err := fmt.Sscanf(parts[0], "%d", &offset); err != nil {
		return nil, fmt.Errorf("invalid offset in cursor: %w", err)
	}
	if offset < 0 {
		return nil, fmt.Errorf("invalid offset in cursor: %d", offset)
	}

	return &PageCursor{
		Offset: offset,
		Sort:   parts[1],
	}, nil
}

func EncodePageCursor(cursor *PageCursor) string {
	cs := fmt.Sprintf("%d|%s", cursor.Offset, cursor.Sort)
	return base64.URLEncoding.EncodeToString([]byte(cs))
}
