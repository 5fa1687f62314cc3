package models

import "time"

const (
	PriceHourly     = "HOURLY"
	PriceFixed      = "FIXED"
	PriceNegotiable = "NEGOTIABLE"
)

type ProviderProfile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Photos    []string  `json:"photos"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OfferingLabel identifies what an offering advertises: a predefined catalog
// service or a provider-supplied custom name, never both and never neither.
// The zero value is invalid; build one with PredefinedLabel or CustomLabel.
type OfferingLabel struct {
	serviceID  int64
	customName string
}

func PredefinedLabel(serviceID int64) OfferingLabel {
	return OfferingLabel{serviceID: serviceID}
}

func CustomLabel(name string) OfferingLabel {
	return OfferingLabel{customName: name}
}

func (l OfferingLabel) ServiceID() (int64, bool) {
	return l.serviceID, l.serviceID > 0
}

func (l OfferingLabel) CustomName() (string, bool) {
	return l.customName, l.serviceID == 0 && l.customName != ""
}

func (l OfferingLabel) IsZero() bool {
	return l.serviceID == 0 && l.customName == ""
}

// ServiceOffering is the stored form of an offering with its predefined
// service resolved, when one is referenced.
type ServiceOffering struct {
	ID          int64    `json:"id"`
	ProfileID   int64    `json:"profile_id"`
	ServiceID   *int64   `json:"service_id"`
	ServiceSlug *string  `json:"service_slug"`
	ServiceName *string  `json:"service_name"`
	CustomName  *string  `json:"custom_name"`
	Description *string  `json:"description"`
	PriceType   string   `json:"price_type"`
	Price       *float64 `json:"price"`
}

// DisplayName resolves the human-readable label of an offering.
func (o ServiceOffering) DisplayName() string {
	if o.ServiceName != nil && *o.ServiceName != "" {
		return *o.ServiceName
	}
	if o.CustomName != nil && *o.CustomName != "" {
		return *o.CustomName
	}
	return "Other"
}

// OfferingInput carries one offering of a provider-profile creation request.
type OfferingInput struct {
	Label       OfferingLabel
	Description *string
	PriceType   string
	Price       *float64
}

// ProviderDetail is the public projection of a provider with offerings,
// reviews and the aggregated rating attached.
type ProviderDetail struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Bio         string               `json:"bio"`
	AvatarURL   string               `json:"avatar_url"`
	PostalCode  string               `json:"postal_code"`
	City        string               `json:"city"`
	Canton      string               `json:"canton"`
	Languages   []string             `json:"languages"`
	Photos      []string             `json:"photos"`
	Services    []ServiceOffering    `json:"services"`
	Rating      float64              `json:"rating"`
	ReviewCount int                  `json:"review_count"`
	Reviews     []ReviewWithReviewer `json:"reviews"`
}
