package dto

// Preference is one category preference entry in a full-replace update.
type Preference struct {
	CategoryID uint `validate:"required,gt=0"`
	// RadiusKM limits discovery for this category; zero means no limit.
	RadiusKM   float64 `validate:"gte=0"`
	EmailOptIn bool
}
