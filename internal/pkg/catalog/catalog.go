// Package catalog holds the static pricing catalog for the three bundled
// services. The catalog is immutable data loaded at init; lookups are keyed
// by closed types so an unknown tier can never panic at runtime.
package catalog

import (
	"fmt"
	"sort"
)

// Service tags a product with the bundled service it belongs to.
type Service string

const (
	ServiceLeads     Service = "leads"
	ServiceAudit     Service = "audit"
	ServiceMetaAudit Service = "meta_audit"
)

// TierID identifies a pricing level within a service.
type TierID string

const (
	TierBasic         TierID = "basic"
	TierAgencyPartner TierID = "agency_partner"
	TierElite         TierID = "elite"
	TierStarter       TierID = "starter"
	TierProfessional  TierID = "professional"
	TierEnterprise    TierID = "enterprise"
	TierPremiumPlus   TierID = "premium_plus"
	TierDoneForYou    TierID = "done_for_you"
)

// Product is one purchasable tier. Price is in minor currency units (cents)
// per month.
type Product struct {
	ID                TierID   `json:"id"`
	Service           Service  `json:"service"`
	Name              string   `json:"name"`
	Price             int64    `json:"price"`
	Description       string   `json:"description"`
	Features          []string `json:"features"`
	MaxAuditsPerMonth int      `json:"max_audits_per_month,omitempty"`
}

var products = map[Service]map[TierID]Product{
	ServiceLeads: {
		TierBasic: {
			ID: TierBasic, Service: ServiceLeads,
			Name:        "Basic",
			Price:       11100,
			Description: "Basic lead generation tier",
			Features:    []string{"Daily leads", "Basic dashboard", "Email support"},
		},
		TierAgencyPartner: {
			ID: TierAgencyPartner, Service: ServiceLeads,
			Name:        "Agency Partner",
			Price:       22200,
			Description: "White-label + daily leads for agencies",
			Features: []string{
				"Daily qualified leads",
				"White-label option",
				"Advanced dashboard",
				"Priority support",
				"Lead export",
			},
		},
		TierElite: {
			ID: TierElite, Service: ServiceLeads,
			Name:        "Elite",
			Price:       33300,
			Description: "Premium features and dedicated support",
			Features: []string{
				"Unlimited daily leads",
				"White-label + API access",
				"Custom integrations",
				"Dedicated account manager",
				"24/7 priority support",
			},
		},
	},
	ServiceAudit: {
		TierStarter: {
			ID: TierStarter, Service: ServiceAudit,
			Name:              "Starter Audit",
			Price:             11100,
			Description:       "5 audits per month, basic reports",
			Features:          []string{"5 audits per month", "Basic reports"},
			MaxAuditsPerMonth: 5,
		},
		TierProfessional: {
			ID: TierProfessional, Service: ServiceAudit,
			Name:              "Professional Audit",
			Price:             22200,
			Description:       "20 audits per month, detailed reports + recommendations",
			Features:          []string{"20 audits per month", "Detailed reports", "Recommendations"},
			MaxAuditsPerMonth: 20,
		},
		TierEnterprise: {
			ID: TierEnterprise, Service: ServiceAudit,
			Name:              "Enterprise Audit",
			Price:             33300,
			Description:       "Unlimited audits, white-label reports",
			Features:          []string{"Unlimited audits", "White-label reports"},
			MaxAuditsPerMonth: 999999,
		},
		TierPremiumPlus: {
			ID: TierPremiumPlus, Service: ServiceAudit,
			Name:              "Premium Plus",
			Price:             55500,
			Description:       "Everything + quarterly strategy calls",
			Features:          []string{"Unlimited audits", "White-label reports", "Quarterly strategy calls"},
			MaxAuditsPerMonth: 999999,
		},
	},
	ServiceMetaAudit: {
		TierStarter: {
			ID: TierStarter, Service: ServiceMetaAudit,
			Name:        "Meta Ads Starter",
			Price:       11100,
			Description: "Monthly Meta ads account audit",
			Features:    []string{"Monthly account audit", "Creative review"},
		},
		TierProfessional: {
			ID: TierProfessional, Service: ServiceMetaAudit,
			Name:        "Meta Ads Professional",
			Price:       22200,
			Description: "Bi-weekly audits with optimization roadmap",
			Features:    []string{"Bi-weekly audits", "Optimization roadmap", "Priority support"},
		},
		TierDoneForYou: {
			ID: TierDoneForYou, Service: ServiceMetaAudit,
			Name:        "Meta Ads Done For You",
			Price:       44400,
			Description: "Fully managed audits and fixes",
			Features:    []string{"Weekly audits", "Hands-on fixes", "Dedicated specialist"},
		},
	},
}

// PriceUSD renders the monthly price for display, e.g. "$111.00".
func (p Product) PriceUSD() string {
	return FormatPriceUSD(p.Price)
}

// Lookup resolves a (service, tier) pair. The boolean is false for any
// unknown combination.
func Lookup(svc Service, tier TierID) (Product, bool) {
	tiers, ok := products[svc]
	if !ok {
		return Product{}, false
	}
	p, ok := tiers[tier]
	return p, ok
}

// TiersForService returns the tiers of one service sorted by ascending price.
func TiersForService(svc Service) []Product {
	tiers := products[svc]
	out := make([]Product, 0, len(tiers))
	for _, p := range tiers {
		out = append(out, p)
	}
	sortByPrice(out)
	return out
}

// AvailableTiers returns every tier across all services sorted by ascending
// price, with a stable service/id order among equal prices.
func AvailableTiers() []Product {
	var out []Product
	for _, svc := range []Service{ServiceLeads, ServiceAudit, ServiceMetaAudit} {
		for _, p := range products[svc] {
			out = append(out, p)
		}
	}
	sortByPrice(out)
	return out
}

func sortByPrice(ps []Product) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Price != ps[j].Price {
			return ps[i].Price < ps[j].Price
		}
		if ps[i].Service != ps[j].Service {
			return ps[i].Service < ps[j].Service
		}
		return ps[i].ID < ps[j].ID
	})
}

// FormatPriceUSD renders a cent amount as a dollar string, e.g. "$111.00".
func FormatPriceUSD(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
