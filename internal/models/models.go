package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceCategories is the fixed consulting catalog shown on the landing page
// and offered in the post-job form. Order matters: the first
// FeaturedServiceCount entries are the ones shown before "View More".
var ServiceCategories = []string{
	"Strategy Consulting",
	"Operations Consulting",
	"Financial Consulting",
	"Technology Consulting",
	"Human Capital / People & Change",
	"Risk & Compliance",
	"Customer & Marketing Strategy",
	"Sustainability & ESG Consulting",
	"Public Sector & Government Consulting",
	"M&A, Healthcare & IT Consulting",
}

const FeaturedServiceCount = 6

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

type Toast struct {
	Message   string    `json:"message"`
	Kind      ToastKind `json:"kind"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active reports whether the toast should still be displayed at now.
func (t *Toast) Active(now time.Time) bool {
	return t != nil && t.Message != "" && now.Before(t.ExpiresAt)
}

// Attachment is an uploaded file kept in process memory only.
// Data is never modified after upload, so clones share it.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Data        []byte    `json:"-"`
}

type JobDraft struct {
	Title        string `json:"title"`
	Service      string `json:"service"`
	Budget       string `json:"budget"`
	Duration     string `json:"duration"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location"`
	Deadline     string `json:"deadline"`

	Skills           []string     `json:"skills"`
	Attachments      []Attachment `json:"attachments"`
	PreferredVendors []string     `json:"preferred_vendors"`
}

// Clone returns a copy that shares no slices with d.
func (d JobDraft) Clone() JobDraft {
	c := d
	c.Skills = append([]string(nil), d.Skills...)
	c.Attachments = append([]Attachment(nil), d.Attachments...)
	c.PreferredVendors = append([]string(nil), d.PreferredVendors...)
	return c
}

// IsEmpty reports whether d is still in its initial state.
func (d JobDraft) IsEmpty() bool {
	return d.Title == "" && d.Service == "" && d.Budget == "" && d.Duration == "" &&
		d.Description == "" && d.Requirements == "" && d.Location == "" && d.Deadline == "" &&
		len(d.Skills) == 0 && len(d.Attachments) == 0 && len(d.PreferredVendors) == 0
}

// MissingFields lists the required form fields that are still blank, in form order.
func (d JobDraft) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"title", d.Title},
		{"service", d.Service},
		{"budget", d.Budget},
		{"duration", d.Duration},
		{"description", d.Description},
		{"requirements", d.Requirements},
		{"location", d.Location},
		{"deadline", d.Deadline},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Session is the ephemeral per-visitor state behind the session cookie.
type Session struct {
	ID         uuid.UUID
	Draft      JobDraft
	Toast      *Toast
	Submitting bool
	Preview    bool
	LastSeen   time.Time
}

func (s Session) Clone() Session {
	c := s
	c.Draft = s.Draft.Clone()
	if s.Toast != nil {
		t := *s.Toast
		c.Toast = &t
	}
	return c
}
