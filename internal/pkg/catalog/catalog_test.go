package catalog

import "testing"

func TestAvailableTiersAscendingPositivePrices(t *testing.T) {
	tiers := AvailableTiers()
	if len(tiers) == 0 {
		t.Fatalf("expected a non-empty catalog")
	}

	var prev int64
	for _, p := range tiers {
		if p.Price <= 0 {
			t.Fatalf("tier %s/%s has non-positive price %d", p.Service, p.ID, p.Price)
		}
		if p.Price < prev {
			t.Fatalf("tiers not in ascending price order: %d after %d", p.Price, prev)
		}
		prev = p.Price
	}
}

func TestLookupKnownTiers(t *testing.T) {
	tests := []struct {
		svc   Service
		tier  TierID
		price int64
	}{
		{ServiceLeads, TierBasic, 11100},
		{ServiceLeads, TierAgencyPartner, 22200},
		{ServiceLeads, TierElite, 33300},
		{ServiceAudit, TierStarter, 11100},
		{ServiceAudit, TierPremiumPlus, 55500},
		{ServiceMetaAudit, TierDoneForYou, 44400},
	}

	for _, tt := range tests {
		p, ok := Lookup(tt.svc, tt.tier)
		if !ok {
			t.Fatalf("Lookup(%s, %s) not found", tt.svc, tt.tier)
		}
		if p.Price != tt.price {
			t.Fatalf("Lookup(%s, %s) price = %d, want %d", tt.svc, tt.tier, p.Price, tt.price)
		}
	}
}

func TestLookupUnknownTier(t *testing.T) {
	if _, ok := Lookup(ServiceLeads, TierID("platinum")); ok {
		t.Fatalf("expected unknown tier to miss")
	}
	if _, ok := Lookup(Service("video"), TierBasic); ok {
		t.Fatalf("expected unknown service to miss")
	}
	// premium_plus exists for audit only
	if _, ok := Lookup(ServiceLeads, TierPremiumPlus); ok {
		t.Fatalf("expected premium_plus to be audit-only")
	}
}

func TestAuditTiersCarryLimits(t *testing.T) {
	for _, p := range TiersForService(ServiceAudit) {
		if p.MaxAuditsPerMonth <= 0 {
			t.Fatalf("audit tier %s has no monthly limit", p.ID)
		}
	}
}

func TestFormatPriceUSD(t *testing.T) {
	if got := FormatPriceUSD(11100); got != "$111.00" {
		t.Fatalf("FormatPriceUSD(11100) = %q", got)
	}
	if got := FormatPriceUSD(55505); got != "$555.05" {
		t.Fatalf("FormatPriceUSD(55505) = %q", got)
	}
}
