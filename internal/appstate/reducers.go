package appstate

import (
	"slices"
	"time"

	"jobassist/internal/model"
)

// Reducer derives the next state from the current one.
// It must not modify its argument or anything reachable from it.
type Reducer func(State) State

// CVPatch holds the CV fields to overwrite; nil fields are left as they are.
type CVPatch struct {
	FileName  *string
	FileType  *string
	Content   *string
	UpdatedAt *time.Time
}

func (p CVPatch) apply(cv model.CV) model.CV {
	if p.FileName != nil {
		cv.FileName = *p.FileName
	}
	if p.FileType != nil {
		cv.FileType = *p.FileType
	}
	if p.Content != nil {
		cv.Content = *p.Content
	}
	if p.UpdatedAt != nil {
		cv.UpdatedAt = *p.UpdatedAt
	}
	return cv
}

// JobOfferPatch holds the offer fields to overwrite; nil fields are left as they are.
type JobOfferPatch struct {
	Title        *string
	Description  *string
	Company      *string
	Location     *string
	ContractType *string
	URL          *string
	UpdatedAt    *time.Time
}

func (p JobOfferPatch) apply(o model.JobOffer) model.JobOffer {
	if p.Title != nil {
		o.Title = *p.Title
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.Company != nil {
		o.Company = *p.Company
	}
	if p.Location != nil {
		o.Location = *p.Location
	}
	if p.ContractType != nil {
		v := *p.ContractType
		o.ContractType = &v
	}
	if p.URL != nil {
		v := *p.URL
		o.URL = &v
	}
	if p.UpdatedAt != nil {
		o.UpdatedAt = *p.UpdatedAt
	}
	return o
}

func ptr[T any](v T) *T { return &v }

// SetUser replaces the identity; authentication follows the presence of u.
func SetUser(u *model.PublicUser) Reducer {
	return func(s State) State {
		if u == nil {
			s.User = nil
		} else {
			s.User = ptr(*u)
		}
		s.IsAuthenticated = u != nil
		return s
	}
}

func Login(u model.PublicUser) Reducer {
	return func(s State) State {
		s.User = ptr(u)
		s.IsAuthenticated = true
		return s
	}
}

// Logout clears identity, both collections and both selections.
func Logout() Reducer {
	return func(s State) State {
		s.User = nil
		s.IsAuthenticated = false
		s.CVs = []model.CV{}
		s.JobOffers = []model.JobOffer{}
		s.SelectedCV = nil
		s.SelectedJobOffer = nil
		return s
	}
}

func SetCVs(cvs []model.CV) Reducer {
	return func(s State) State {
		s.CVs = slices.Clone(cvs)
		if s.CVs == nil {
			s.CVs = []model.CV{}
		}
		return s
	}
}

func AddCV(cv model.CV) Reducer {
	return func(s State) State {
		s.CVs = append(slices.Clone(s.CVs), cv)
		return s
	}
}

// UpdateCV patches the CV with the given id and the selection if it is that CV.
func UpdateCV(id string, patch CVPatch) Reducer {
	return func(s State) State {
		next := make([]model.CV, len(s.CVs))
		for i, cv := range s.CVs {
			if cv.ID == id {
				cv = patch.apply(cv)
			}
			next[i] = cv
		}
		s.CVs = next
		if s.SelectedCV != nil && s.SelectedCV.ID == id {
			s.SelectedCV = ptr(patch.apply(*s.SelectedCV))
		}
		return s
	}
}

// RemoveCV drops the CV with the given id and clears the selection if it was that CV.
func RemoveCV(id string) Reducer {
	return func(s State) State {
		s.CVs = slices.DeleteFunc(slices.Clone(s.CVs), func(cv model.CV) bool { return cv.ID == id })
		if s.SelectedCV != nil && s.SelectedCV.ID == id {
			s.SelectedCV = nil
		}
		return s
	}
}

// SelectCV selects a copy of cv; nil clears the selection.
func SelectCV(cv *model.CV) Reducer {
	return func(s State) State {
		if cv == nil {
			s.SelectedCV = nil
		} else {
			s.SelectedCV = ptr(*cv)
		}
		return s
	}
}

func SetJobOffers(offers []model.JobOffer) Reducer {
	return func(s State) State {
		s.JobOffers = slices.Clone(offers)
		if s.JobOffers == nil {
			s.JobOffers = []model.JobOffer{}
		}
		return s
	}
}

func AddJobOffer(o model.JobOffer) Reducer {
	return func(s State) State {
		s.JobOffers = append(slices.Clone(s.JobOffers), o)
		return s
	}
}

// UpdateJobOffer patches the offer with the given id and the selection if it is that offer.
func UpdateJobOffer(id string, patch JobOfferPatch) Reducer {
	return func(s State) State {
		next := make([]model.JobOffer, len(s.JobOffers))
		for i, o := range s.JobOffers {
			if o.ID == id {
				o = patch.apply(o)
			}
			next[i] = o
		}
		s.JobOffers = next
		if s.SelectedJobOffer != nil && s.SelectedJobOffer.ID == id {
			s.SelectedJobOffer = ptr(patch.apply(*s.SelectedJobOffer))
		}
		return s
	}
}

func RemoveJobOffer(id string) Reducer {
	return func(s State) State {
		s.JobOffers = slices.DeleteFunc(slices.Clone(s.JobOffers), func(o model.JobOffer) bool { return o.ID == id })
		if s.SelectedJobOffer != nil && s.SelectedJobOffer.ID == id {
			s.SelectedJobOffer = nil
		}
		return s
	}
}

func SelectJobOffer(o *model.JobOffer) Reducer {
	return func(s State) State {
		if o == nil {
			s.SelectedJobOffer = nil
		} else {
			s.SelectedJobOffer = ptr(*o)
		}
		return s
	}
}

func SetSidebarOpen(open bool) Reducer {
	return func(s State) State {
		s.UI.SidebarOpen = open
		return s
	}
}

func ToggleSidebar() Reducer {
	return func(s State) State {
		s.UI.SidebarOpen = !s.UI.SidebarOpen
		return s
	}
}

func SetTheme(t Theme) Reducer {
	return func(s State) State {
		s.UI.Theme = t
		return s
	}
}

func SetGlobalLoading(loading bool) Reducer {
	return func(s State) State {
		s.UI.Loading.Global = loading
		return s
	}
}

func SetCVsLoading(loading bool) Reducer {
	return func(s State) State {
		s.UI.Loading.CVs = loading
		return s
	}
}

func SetJobOffersLoading(loading bool) Reducer {
	return func(s State) State {
		s.UI.Loading.JobOffers = loading
		return s
	}
}

func appendNotification(n Notification) Reducer {
	return func(s State) State {
		s.UI.Notifications = append(slices.Clone(s.UI.Notifications), n)
		return s
	}
}

// RemoveNotification is a no-op when id is not queued.
func RemoveNotification(id string) Reducer {
	return func(s State) State {
		s.UI.Notifications = slices.DeleteFunc(slices.Clone(s.UI.Notifications), func(n Notification) bool { return n.ID == id })
		return s
	}
}

func ClearNotifications() Reducer {
	return func(s State) State {
		s.UI.Notifications = []Notification{}
		return s
	}
}

// SetCVFilters merges the set fields of f into the CV filters.
func SetCVFilters(f CVFilters) Reducer {
	return func(s State) State {
		cur := s.Filters.CVs
		if f.FileTypes != nil {
			cur.FileTypes = slices.Clone(f.FileTypes)
		}
		if f.DateRange != nil {
			cur.DateRange = ptr(*f.DateRange)
		}
		if f.SearchQuery != nil {
			cur.SearchQuery = ptr(*f.SearchQuery)
		}
		s.Filters.CVs = cur
		return s
	}
}

// SetJobOfferFilters merges the set fields of f into the offer filters.
func SetJobOfferFilters(f JobOfferFilters) Reducer {
	return func(s State) State {
		cur := s.Filters.JobOffers
		if f.ContractTypes != nil {
			cur.ContractTypes = slices.Clone(f.ContractTypes)
		}
		if f.Locations != nil {
			cur.Locations = slices.Clone(f.Locations)
		}
		if f.Companies != nil {
			cur.Companies = slices.Clone(f.Companies)
		}
		if f.DateRange != nil {
			cur.DateRange = ptr(*f.DateRange)
		}
		if f.SearchQuery != nil {
			cur.SearchQuery = ptr(*f.SearchQuery)
		}
		s.Filters.JobOffers = cur
		return s
	}
}

func ClearCVFilters() Reducer {
	return func(s State) State {
		s.Filters.CVs = CVFilters{}
		return s
	}
}

func ClearJobOfferFilters() Reducer {
	return func(s State) State {
		s.Filters.JobOffers = JobOfferFilters{}
		return s
	}
}

func ClearAllFilters() Reducer {
	return func(s State) State {
		s.Filters = Filters{}
		return s
	}
}

// Reset returns to Initial.
func Reset() Reducer {
	return func(State) State {
		return Initial()
	}
}

// ApplyPersisted overwrites the durable subset and leaves everything else alone.
func ApplyPersisted(p Persisted) Reducer {
	return func(s State) State {
		if p.User == nil {
			s.User = nil
		} else {
			s.User = ptr(*p.User)
		}
		s.IsAuthenticated = p.IsAuthenticated
		if p.UI.Theme.Valid() {
			s.UI.Theme = p.UI.Theme
		}
		s.UI.SidebarOpen = p.UI.SidebarOpen
		s.Filters = p.Filters
		return s
	}
}
