package model

import "strings"

// SuiNameSuffix is the suffix SuiNS appends to registered names.
const SuiNameSuffix = ".sui"

// DomainRecord is a naming-service registration owned by the queried address.
type DomainRecord struct {
	DisplayName string         `json:"display_name"`
	ObjectID    string         `json:"object_id"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// BareName returns the display name without a trailing ".sui".
func (d DomainRecord) BareName() string {
	return strings.TrimSuffix(d.DisplayName, SuiNameSuffix)
}
