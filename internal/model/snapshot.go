package model

// Snapshot is the whole persisted state as one flat document.
type Snapshot struct {
	Gardens        []Garden      `json:"gardens" yaml:"gardens"`
	ActiveGardenID string        `json:"active_garden_id,omitempty" yaml:"active_garden_id,omitempty"`
	Friends        []Friend      `json:"friends" yaml:"friends"`
	Interactions   []Interaction `json:"interactions" yaml:"interactions"`
	Appearances    []Appearance  `json:"appearances" yaml:"appearances"`
}
