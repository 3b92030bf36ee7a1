package model

import "time"

// JobOffer is a user-owned copy of a job listing imported from search results.
type JobOffer struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	ContractType *string   `json:"contractType,omitempty"`
	URL          *string   `json:"url,omitempty"`
	ImportedAt   time.Time `json:"importedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SearchOffer is a transient search result; its ID is only meaningful within one response.
type SearchOffer struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	ContractType string `json:"contractType,omitempty"`
	URL          string `json:"url,omitempty"`
}
