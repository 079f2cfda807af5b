package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	LinearSecret    string   // Linear webhook signing secret
	TodoistSecret   string   // Todoist app client secret
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute per source; 0 disables
}

// Config holds the handler settings that are not security related.
type Config struct {
	Security       SecurityConfig
	ProcessTimeout time.Duration // Deadline for relaying one event
}

// FlexibleID is an identifier that may arrive as a JSON string or number.
type FlexibleID string

// UnmarshalJSON accepts "123", 123 and null.
func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

// StringPtr returns nil for a nil or empty id.
func (id *FlexibleID) StringPtr() *string {
	if id == nil || *id == "" {
		return nil
	}
	s := string(*id)
	return &s
}
