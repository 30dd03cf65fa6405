package shared

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AuditEntry is a single append-only record of an action taken on a document
// or transaction. Entries are never edited or removed once appended.
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
}

// AuditLog is an ordered, append-only list of audit entries
type AuditLog []AuditEntry

// Append adds a new entry stamped with the current time and returns the
// extended log. The receiver is not modified when it has spare capacity
// shared with another log; callers must use the return value.
func (l AuditLog) Append(user, action, details string) AuditLog {
	return append(l, AuditEntry{
		Timestamp: time.Now(),
		User:      user,
		Action:    action,
		Details:   details,
	})
}

// Last returns the most recent entry, or nil for an empty log
func (l AuditLog) Last() *AuditEntry {
	if len(l) == 0 {
		return nil
	}
	return &l[len(l)-1]
}

// Value implements driver.Valuer for JSON column storage
func (l AuditLog) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSON column storage
func (l *AuditLog) Scan(value interface{}) error {
	if value == nil {
		*l = AuditLog{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AuditLog", value)
	}
	return json.Unmarshal(data, l)
}
