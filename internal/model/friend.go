package model

import "time"

// Role is a non-exclusive tag describing what a friend brings.
type Role string

const (
	RoleMentor          Role = "mentor"
	RoleEmotionalAnchor Role = "emotional_anchor"
	RoleAdventure       Role = "adventure"
	RoleProfessional    Role = "professional"
	RoleConnector       Role = "connector"
	RoleAccountability  Role = "accountability"
	RoleLocalGuide      Role = "local_guide"
	RoleFunEnergy       Role = "fun_energy"
)

var roleLabels = map[Role]string{
	RoleMentor:          "Mentor",
	RoleEmotionalAnchor: "Emotional Anchor",
	RoleAdventure:       "Adventure Partner",
	RoleProfessional:    "Professional Ally",
	RoleConnector:       "Social Connector",
	RoleAccountability:  "Accountability Partner",
	RoleLocalGuide:      "Local Guide",
	RoleFunEnergy:       "Fun Energy",
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// Location is where a friend lives.
type Location struct {
	City   string `json:"city" yaml:"city"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// SignificantDate is a recurring date worth remembering other than a birthday.
type SignificantDate struct {
	Label string   `json:"label" yaml:"label"`
	Date  MonthDay `json:"date" yaml:"date"`
}

// TierChange is one entry of a friend's append-only tier history.
type TierChange struct {
	Tier   Tier      `json:"tier" yaml:"tier"`
	At     time.Time `json:"at" yaml:"at"`
	Reason string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Friend is a tracked relationship.
type Friend struct {
	ID             string            `json:"id" yaml:"id"`
	GardenID       string            `json:"garden_id" yaml:"garden_id"`
	Name           string            `json:"name" yaml:"name"`
	Photo          string            `json:"photo,omitempty" yaml:"photo,omitempty"`
	Tier           Tier              `json:"tier" yaml:"tier"`
	Roles          []Role            `json:"roles" yaml:"roles"`
	Location       *Location         `json:"location,omitempty" yaml:"location,omitempty"`
	Birthday       *MonthDay         `json:"birthday,omitempty" yaml:"birthday,omitempty"`
	ImportantDates []SignificantDate `json:"important_dates,omitempty" yaml:"important_dates,omitempty"`
	Profile        *Profile          `json:"profile,omitempty" yaml:"profile,omitempty"`
	TierHistory    []TierChange      `json:"tier_history" yaml:"tier_history"`
	CreatedAt      time.Time         `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" yaml:"updated_at"`
}

// Clone returns a deep copy so callers cannot reach into store state.
func (f Friend) Clone() Friend {
	c := f
	c.Roles = append([]Role(nil), f.Roles...)
	c.ImportantDates = append([]SignificantDate(nil), f.ImportantDates...)
	c.TierHistory = append([]TierChange(nil), f.TierHistory...)
	if f.Location != nil {
		loc := *f.Location
		c.Location = &loc
	}
	if f.Birthday != nil {
		b := *f.Birthday
		c.Birthday = &b
	}
	if f.Profile != nil {
		p := f.Profile.Clone()
		c.Profile = &p
	}
	return c
}

// HasRole reports whether the friend carries role r.
func (f Friend) HasRole(r Role) bool {
	for _, have := range f.Roles {
		if have == r {
			return true
		}
	}
	return false
}
