package validationpackage

import "encoding/json"

type CreatePackageDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Criteria    json.RawMessage `json:"criteria"`
	Active      *bool           `json:"active"`
}

type UpdatePackageDTO struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Type        *string         `json:"type"`
	Criteria    json.RawMessage `json:"criteria"`
	Active      *bool           `json:"active"`
}
