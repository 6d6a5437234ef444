package survey

// OutcomeDistribution counts how often each outcome was ranked least harmful.
type OutcomeDistribution struct {
	Maintain       int     `json:"maintain"`
	SwerveLeft     int     `json:"swerve_left"`
	SwerveRight    int     `json:"swerve_right"`
	Total          int     `json:"total"`
	MaintainPct    float64 `json:"maintain_pct"`
	SwerveLeftPct  float64 `json:"swerve_left_pct"`
	SwerveRightPct float64 `json:"swerve_right_pct"`
}

// EffectMetric is the maintain rate for one scenario condition.
type EffectMetric struct {
	MaintainCount int     `json:"maintain_count"`
	TotalCount    int     `json:"total_count"`
	Percentage    float64 `json:"percentage"`
}

// TailgaterEffect compares choices with and without a following vehicle.
type TailgaterEffect struct {
	WithTailgater    EffectMetric `json:"with_tailgater"`
	WithoutTailgater EffectMetric `json:"without_tailgater"`
}

// ComplianceEffect compares choices for compliant and violating entities.
type ComplianceEffect struct {
	Compliant EffectMetric `json:"compliant"`
	Violation EffectMetric `json:"violation"`
}

// DecisionTimeDistribution buckets response times.
type DecisionTimeDistribution struct {
	Under2s     int `json:"under_2s"`
	Between2s4s int `json:"between_2s_4s"`
	Between4s6s int `json:"between_4s_6s"`
	Over6s      int `json:"over_6s"`
	Total       int `json:"total"`
}

// ArchetypeCount is one archetype's share of completed sessions.
type ArchetypeCount struct {
	Archetype string `json:"archetype"`
	Count     int    `json:"count"`
}

// DashboardStats is the public aggregate view of the survey.
type DashboardStats struct {
	CompletedSessions        int                      `json:"completed_sessions"`
	CountriesRepresented     int                      `json:"countries_represented"`
	LeastHarmfulOutcome      OutcomeDistribution      `json:"least_harmful_outcome"`
	SelfPreservationEffect   TailgaterEffect          `json:"self_preservation_effect"`
	EntityComplianceEffect   ComplianceEffect         `json:"entity_compliance_effect"`
	DecisionTimeDistribution DecisionTimeDistribution `json:"decision_time_distribution"`
	ArchetypeDistribution    []ArchetypeCount         `json:"archetype_distribution"`
}
