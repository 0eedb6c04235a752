package booking

import (
	"strings"

	"glowdesk/models"
)

// ServiceCatalog resolves a service type key to its treatment details.
type ServiceCatalog interface {
	Get(serviceType string) (*models.ServiceType, bool)
	All() []models.ServiceType
}

// defaultDurationMinutes applies when a catalog entry leaves duration unset.
const defaultDurationMinutes = 60

// servicesMap is the static med-spa treatment catalog.
var servicesMap = map[string]models.ServiceType{
	"botox": {
		ID:                 "botox",
		Name:               "Botox / Neurotoxin",
		Category:           "Injectables",
		DurationMinutes:    30,
		Price:              "$12/unit",
		PriceType:          "variable",
		DepositAmountCents: 5000,
		Aliases:            []string{"neurotoxin", "tox", "dysport", "jeuveau", "wrinkle relaxer"},
	},
	"dermal-filler": {
		ID:                 "dermal-filler",
		Name:               "Dermal Filler",
		Category:           "Injectables",
		DurationMinutes:    60,
		Price:              "$650/syringe",
		PriceType:          "starting_at",
		DepositAmountCents: 10000,
		Aliases:            []string{"filler", "lip filler", "juvederm", "restylane", "cheek filler"},
	},
	"hydrafacial": {
		ID:              "hydrafacial",
		Name:            "HydraFacial",
		Category:        "Facials",
		DurationMinutes: 45,
		Price:           "$199",
		PriceType:       "fixed",
		Aliases:         []string{"hydra facial", "facial"},
	},
	"chemical-peel": {
		ID:              "chemical-peel",
		Name:            "Chemical Peel",
		Category:        "Skin Treatments",
		DurationMinutes: 45,
		Price:           "$150",
		PriceType:       "starting_at",
		Aliases:         []string{"peel", "vi peel", "glycolic peel"},
	},
	"microneedling": {
		ID:                 "microneedling",
		Name:               "Microneedling",
		Category:           "Skin Treatments",
		DurationMinutes:    60,
		Price:              "$350",
		PriceType:          "fixed",
		DepositAmountCents: 5000,
		Aliases:            []string{"micro needling", "skinpen", "collagen induction"},
	},
	"laser-hair-removal": {
		ID:              "laser-hair-removal",
		Name:            "Laser Hair Removal",
		Category:        "Laser",
		DurationMinutes: 30,
		Price:           "$99/session",
		PriceType:       "starting_at",
		Aliases:         []string{"laser", "hair removal", "lhr"},
	},
	"consultation": {
		ID:              "consultation",
		Name:            "Complimentary Consultation",
		Category:        "Consultations",
		DurationMinutes: 30,
		Price:           "Free",
		PriceType:       "free",
		Aliases:         []string{"consult", "free consultation", "new patient visit"},
	},
}

// StaticCatalog implements ServiceCatalog over the built-in treatment map.
type StaticCatalog struct{}

func (StaticCatalog) Get(serviceType string) (*models.ServiceType, bool) {
	key := strings.ToLower(strings.TrimSpace(serviceType))
	if svc, ok := servicesMap[key]; ok {
		return &svc, true
	}
	// Fall back to alias matching so "lip filler" resolves like "dermal-filler".
	for _, svc := range servicesMap {
		for _, alias := range svc.Aliases {
			if key == alias {
				out := svc
				return &out, true
			}
		}
	}
	return nil, false
}

func (StaticCatalog) All() []models.ServiceType {
	out := make([]models.ServiceType, 0, len(servicesMap))
	for _, svc := range servicesMap {
		out = append(out, svc)
	}
	return out
}

// ServiceDisplayName returns the catalog display name, falling back to the
// raw service type key when the catalog doesn't know it.
func ServiceDisplayName(catalog ServiceCatalog, serviceType string) string {
	if svc, ok := catalog.Get(serviceType); ok {
		return svc.Name
	}
	return serviceType
}
