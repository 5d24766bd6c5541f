package tenant

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Tenant is one barbershop account on the platform.
type Tenant struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayHours is one weekday's opening window. Closed wins over Open/Close.
type DayHours struct {
	Open   string `json:"open,omitempty"`  // "08:00"
	Close  string `json:"close,omitempty"` // "18:00"
	Closed bool   `json:"closed,omitempty"`
}

// OpeningHours maps lowercase English weekday names to their hours.
type OpeningHours map[string]DayHours

func DefaultOpeningHours() OpeningHours {
	week := DayHours{Open: "08:00", Close: "18:00"}
	return OpeningHours{
		"monday":    week,
		"tuesday":   week,
		"wednesday": week,
		"thursday":  week,
		"friday":    week,
		"saturday":  {Open: "08:00", Close: "17:00"},
		"sunday":    {Closed: true},
	}
}

// Config is the tenant's customization: theme, business profile, opening
// hours and policy text. Everything the site-customization panel edits.
type Config struct {
	TenantID       uuid.UUID    `json:"tenant_id"`
	BusinessName   string       `json:"business_name"`
	Description    string       `json:"description,omitempty"`
	Address        string       `json:"address,omitempty"`
	City           string       `json:"city,omitempty"`
	State          string       `json:"state,omitempty"`
	ZipCode        string       `json:"zip_code,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	Email          string       `json:"email,omitempty"`
	Website        string       `json:"website,omitempty"`
	Instagram      string       `json:"instagram,omitempty"`
	Facebook       string       `json:"facebook,omitempty"`
	WhatsApp       string       `json:"whatsapp,omitempty"`
	LogoURL        string       `json:"logo_url,omitempty"`
	PrimaryColor   string       `json:"primary_color"`
	SecondaryColor string       `json:"secondary_color"`
	AccentColor    string       `json:"accent_color"`
	OpeningHours   OpeningHours `json:"opening_hours"`
	Policies       string       `json:"policies,omitempty"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// DefaultConfig fills a fresh tenant's customization with the platform
// defaults.
func DefaultConfig(t Tenant) Config {
	return Config{
		TenantID:       t.ID,
		BusinessName:   t.Name,
		City:           "Brejo",
		State:          "MA",
		PrimaryColor:   "#1A1A1A",
		SecondaryColor: "#B8860B",
		AccentColor:    "#8B0000",
		OpeningHours:   DefaultOpeningHours(),
	}
}
