package models

// ServiceType describes one bookable med-spa treatment in the catalog.
type ServiceType struct {
	ID                 string   `json:"id"`   // catalog key, e.g. "botox"
	Name               string   `json:"name"` // display name, e.g. "Botox / Neurotoxin"
	Category           string   `json:"category"`
	DurationMinutes    int      `json:"duration_minutes"`
	Price              string   `json:"price"`      // display string, e.g. "$12/unit"
	PriceType          string   `json:"price_type"` // fixed, variable, starting_at, free
	DepositAmountCents int      `json:"deposit_amount_cents,omitempty"`
	Description        string   `json:"description,omitempty"`
	Aliases            []string `json:"aliases,omitempty"` // alternate names customers use
	Providers          []string `json:"providers,omitempty"`
}
