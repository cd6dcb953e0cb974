package models

// Thresholds are the absolute bounds for commit and merge counts used by
// the Productivity absolute score and the Collaboration merge component.
type Thresholds struct {
	Mode    ThresholdMode `json:"mode"`
	Commits Threshold     `json:"commits"`
	Merges  Threshold     `json:"merges"`
}

// FixedThresholds returns the fixed table from the settings
func FixedThresholds(cal CalibrationSettings) Thresholds {
	return Thresholds{
		Mode:    ThresholdModeFixed,
		Commits: cal.FixedCommits,
		Merges:  cal.FixedMerges,
	}
}
