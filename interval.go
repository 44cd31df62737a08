package main

import "slices"

// ResolveIntervalMinutes maps a monitor's owning plan to its effective check
// interval. The faster-checks add-on overrides everything account-wide.
// A configured per-monitor interval is honored only when it is on the
// allow-list; otherwise the tier's base interval applies.
func ResolveIntervalMinutes(plans PlanConfig, owner BillingOwner, configuredMinutes int) int {
	plans = plans.withDefaults()

	if owner.FasterChecks {
		return plans.FasterChecksMinutes
	}

	base, ok := plans.TierIntervalMinutes[owner.Tier]
	if !ok {
		base = plans.TierIntervalMinutes[TierFree]
	}

	if configuredMinutes > 0 && slices.Contains(plans.AllowedIntervalMinutes, configuredMinutes) {
		return configuredMinutes
	}

	return base
}

// SlaTargetPct returns the uptime target for a plan tier, falling back to the
// free tier target for unknown tiers.
func SlaTargetPct(plans PlanConfig, tier string) float64 {
	plans = plans.withDefaults()

	if target, ok := plans.SlaTargetPct[tier]; ok {
		return target
	}
	return plans.SlaTargetPct[TierFree]
}
