package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type BaseModel struct {
	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StringList stores a list of strings in a single comma separated database
// column. The encoding is only reversible if no element contains a comma.
// Scope entries and document references are short slug-like values, so the
// limitation is acceptable; callers that need arbitrary content must use a
// separate table instead.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "", nil
	}
	return strings.Join(l, ","), nil
}

func (l *StringList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = nil
	case string:
		*l = splitStringList(v)
	case []byte:
		*l = splitStringList(string(v))
	default:
		return fmt.Errorf("unsupported type %T for string list", value)
	}
	return nil
}

func splitStringList(raw string) StringList {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	list := make(StringList, 0, len(parts))
	for _, part := range parts {
		list = append(list, strings.TrimSpace(part))
	}
	return list
}
