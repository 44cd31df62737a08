package main

import "testing"

func TestResolveIntervalMinutes(t *testing.T) {
	plans := DefaultPlanConfig()

	t.Run("Tier Base Intervals", func(t *testing.T) {
		cases := map[string]int{
			TierFree:     15,
			TierPro:      10,
			TierTeam:     10,
			TierBusiness: 5,
		}
		for tier, expected := range cases {
			got := ResolveIntervalMinutes(plans, BillingOwner{Tier: tier}, 0)
			if got != expected {
				t.Errorf("Expected %d minutes for %s tier, got %d", expected, tier, got)
			}
		}
	})

	t.Run("Unknown Tier Falls Back To Free", func(t *testing.T) {
		if got := ResolveIntervalMinutes(plans, BillingOwner{Tier: "enterprise-beta"}, 0); got != 15 {
			t.Errorf("Expected free tier fallback of 15, got %d", got)
		}
	})

	t.Run("Configured Interval On Allow List", func(t *testing.T) {
		if got := ResolveIntervalMinutes(plans, BillingOwner{Tier: TierPro}, 30); got != 30 {
			t.Errorf("Expected configured interval 30, got %d", got)
		}
	})

	t.Run("Configured Interval Off Allow List", func(t *testing.T) {
		if got := ResolveIntervalMinutes(plans, BillingOwner{Tier: TierPro}, 7); got != 10 {
			t.Errorf("Expected tier base 10 for disallowed interval, got %d", got)
		}
	})

	t.Run("Faster Checks Overrides Everything", func(t *testing.T) {
		if got := ResolveIntervalMinutes(plans, BillingOwner{Tier: TierFree, FasterChecks: true}, 60); got != 5 {
			t.Errorf("Expected faster checks interval 5, got %d", got)
		}
	})
}

func TestSlaTargetPct(t *testing.T) {
	plans := DefaultPlanConfig()

	if got := SlaTargetPct(plans, TierBusiness); got != 99.9 {
		t.Errorf("Expected 99.9 for business, got %v", got)
	}
	if got := SlaTargetPct(plans, TierFree); got != 99.0 {
		t.Errorf("Expected 99.0 for free, got %v", got)
	}
	if got := SlaTargetPct(plans, "no-such-tier"); got != 99.0 {
		t.Errorf("Expected free fallback 99.0 for unknown tier, got %v", got)
	}
}
