// Package appstate holds a user's application state: identity, CV and offer
// collections with their selections, UI flags, a notification queue and list
// filters. State is an immutable snapshot; every change is a Reducer applied
// by a Store, which persists a durable subset to a Storage.
package appstate

import (
	"time"

	"jobassist/internal/model"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

// Notification is a queued message. A zero Duration means it stays until removed.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty"`
	Duration  time.Duration    `json:"-"`
	Timestamp time.Time        `json:"timestamp"`
}

type Loading struct {
	Global    bool `json:"global"`
	CVs       bool `json:"cvs"`
	JobOffers bool `json:"jobOffers"`
}

type UI struct {
	SidebarOpen   bool           `json:"sidebarOpen"`
	Theme         Theme          `json:"theme"`
	Loading       Loading        `json:"loading"`
	Notifications []Notification `json:"notifications"`
}

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// CVFilters narrow the CV list. Nil fields are unset.
type CVFilters struct {
	FileTypes   []string   `json:"fileType,omitempty"`
	DateRange   *DateRange `json:"dateRange,omitempty"`
	SearchQuery *string    `json:"searchQuery,omitempty"`
}

// JobOfferFilters narrow the offer list. Nil fields are unset.
type JobOfferFilters struct {
	ContractTypes []string   `json:"contractTypes,omitempty"`
	Locations     []string   `json:"locations,omitempty"`
	Companies     []string   `json:"companies,omitempty"`
	DateRange     *DateRange `json:"dateRange,omitempty"`
	SearchQuery   *string    `json:"searchQuery,omitempty"`
}

type Filters struct {
	CVs       CVFilters       `json:"cvs"`
	JobOffers JobOfferFilters `json:"jobOffers"`
}

// State is one snapshot. Reducers never modify a State in place.
type State struct {
	User             *model.PublicUser `json:"user"`
	IsAuthenticated  bool              `json:"isAuthenticated"`
	CVs              []model.CV        `json:"cvs"`
	SelectedCV       *model.CV         `json:"selectedCV"`
	JobOffers        []model.JobOffer  `json:"jobOffers"`
	SelectedJobOffer *model.JobOffer   `json:"selectedJobOffer"`
	UI               UI                `json:"ui"`
	Filters          Filters           `json:"filters"`
}

// Initial is the state of a fresh store: sidebar open, system theme, nothing loaded.
func Initial() State {
	return State{
		CVs:       []model.CV{},
		JobOffers: []model.JobOffer{},
		UI: UI{
			SidebarOpen:   true,
			Theme:         ThemeSystem,
			Notifications: []Notification{},
		},
	}
}

// PersistedUI is the durable part of UI.
type PersistedUI struct {
	Theme       Theme `json:"theme"`
	SidebarOpen bool  `json:"sidebarOpen"`
}

// Persisted is the subset of State written to storage.
type Persisted struct {
	User            *model.PublicUser `json:"user"`
	IsAuthenticated bool              `json:"isAuthenticated"`
	UI              PersistedUI       `json:"ui"`
	Filters         Filters           `json:"filters"`
}

// Persisted extracts the durable subset.
func (s State) Persisted() Persisted {
	return Persisted{
		User:            s.User,
		IsAuthenticated: s.IsAuthenticated,
		UI: PersistedUI{
			Theme:       s.UI.Theme,
			SidebarOpen: s.UI.SidebarOpen,
		},
		Filters: s.Filters,
	}
}
