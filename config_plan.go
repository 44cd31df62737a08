package main

// Plan tiers known to the billing side. The engine only ever reads the tier
// string, never billing state.
const (
	TierFree     = "free"
	TierPro      = "pro"
	TierTeam     = "team"
	TierBusiness = "business"
)

type PlanConfig struct {
	// TierIntervalMinutes maps a plan tier to its base check interval.
	TierIntervalMinutes map[string]int `yaml:"tier_interval_minutes"`
	// AllowedIntervalMinutes is the allow-list a per-monitor configured
	// interval is clamped against.
	AllowedIntervalMinutes []int `yaml:"allowed_interval_minutes"`
	// FasterChecksMinutes is the account-wide override applied when the
	// faster-checks add-on is active.
	FasterChecksMinutes int `yaml:"faster_checks_minutes"`
	// SlaTargetPct maps a plan tier to the uptime percentage below which
	// the monitor is considered in breach.
	SlaTargetPct map[string]float64 `yaml:"sla_target_pct"`
}

// DefaultPlanConfig returns the plan tables used when the config file leaves
// the plans section empty.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		TierIntervalMinutes: map[string]int{
			TierFree:     15,
			TierPro:      10,
			TierTeam:     10,
			TierBusiness: 5,
		},
		AllowedIntervalMinutes: []int{5, 10, 15, 30, 60},
		FasterChecksMinutes:    5,
		SlaTargetPct: map[string]float64{
			TierFree:     99.0,
			TierPro:      99.5,
			TierTeam:     99.9,
			TierBusiness: 99.9,
		},
	}
}

func (p PlanConfig) withDefaults() PlanConfig {
	defaults := DefaultPlanConfig()
	if len(p.TierIntervalMinutes) == 0 {
		p.TierIntervalMinutes = defaults.TierIntervalMinutes
	}
	if len(p.AllowedIntervalMinutes) == 0 {
		p.AllowedIntervalMinutes = defaults.AllowedIntervalMinutes
	}
	if p.FasterChecksMinutes == 0 {
		p.FasterChecksMinutes = defaults.FasterChecksMinutes
	}
	if len(p.SlaTargetPct) == 0 {
		p.SlaTargetPct = defaults.SlaTargetPct
	}
	return p
}

type Contact struct {
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
}

type TeamMemberConfig struct {
	Contact `yaml:",inline"`
	// AlertGrants lists monitor IDs this member explicitly receives alerts
	// for. Owner and admins need no grant.
	AlertGrants []string `yaml:"alert_grants"`
}

type UserAccount struct {
	Contact      `yaml:",inline"`
	Tier         string `yaml:"tier"`
	FasterChecks bool   `yaml:"faster_checks"`
}

type TeamAccount struct {
	ID           string             `yaml:"id"`
	Tier         string             `yaml:"tier"`
	FasterChecks bool               `yaml:"faster_checks"`
	Owner        Contact            `yaml:"owner"`
	Admins       []Contact          `yaml:"admins"`
	Members      []TeamMemberConfig `yaml:"members"`
}

// AccountConfig stands in for the user/team/billing store, which is an
// external collaborator of this engine. Only tier and contact data is read.
type AccountConfig struct {
	Users []UserAccount `yaml:"users"`
	Teams []TeamAccount `yaml:"teams"`
}

type OwnerKind int

const (
	OwnerIndividual OwnerKind = iota
	OwnerTeam
)

// BillingOwner is the entity a monitor bills against: either an individual
// user or a team. Recipient resolution and interval resolution branch on Kind.
type BillingOwner struct {
	Kind         OwnerKind
	Tier         string
	FasterChecks bool
	Owner        Contact
	Admins       []Contact
	Members      []TeamMemberConfig
}

// BillingOwnerFor resolves the owning entity of a monitor. A team reference
// takes precedence over the individual owner. Unknown references fall back to
// a free-tier individual so the engine keeps checking rather than dropping
// the monitor.
func (a AccountConfig) BillingOwnerFor(monitor Monitor) BillingOwner {
	if monitor.TeamID.Valid && monitor.TeamID.String != "" {
		for _, team := range a.Teams {
			if team.ID == monitor.TeamID.String {
				return BillingOwner{
					Kind:         OwnerTeam,
					Tier:         team.Tier,
					FasterChecks: team.FasterChecks,
					Owner:        team.Owner,
					Admins:       team.Admins,
					Members:      team.Members,
				}
			}
		}
	}

	for _, user := range a.Users {
		if user.ID == monitor.OwnerUserID {
			return BillingOwner{
				Kind:         OwnerIndividual,
				Tier:         user.Tier,
				FasterChecks: user.FasterChecks,
				Owner:        user.Contact,
			}
		}
	}

	return BillingOwner{
		Kind:  OwnerIndividual,
		Tier:  TierFree,
		Owner: Contact{ID: monitor.OwnerUserID},
	}
}
