package model

import "slices"

// Species is the plant a friend is drawn as.
type Species string

const (
	// Tier 1: high-maintenance tropicals
	SpeciesMonstera       Species = "monstera"
	SpeciesFiddleLeafFig  Species = "fiddle_leaf_fig"
	SpeciesBirdOfParadise Species = "bird_of_paradise"
	SpeciesOrchid         Species = "orchid"
	// Tier 2: expressive houseplants
	SpeciesPothos      Species = "pothos"
	SpeciesPeaceLily   Species = "peace_lily"
	SpeciesRubberPlant Species = "rubber_plant"
	// Tier 3: forgiving everyday plants
	SpeciesFern        Species = "fern"
	SpeciesSpiderPlant Species = "spider_plant"
	SpeciesHerbs       Species = "herbs"
	// Tier 4: low maintenance
	SpeciesSucculent  Species = "succulent"
	SpeciesSnakePlant Species = "snake_plant"
	SpeciesAloe       Species = "aloe"
	// Tier 5: neglect tolerant
	SpeciesCactus   Species = "cactus"
	SpeciesAirPlant Species = "air_plant"
	SpeciesSeedling Species = "seedling"
)

var tierSpecies = map[Tier][]Species{
	TierInnerCircle:  {SpeciesMonstera, SpeciesFiddleLeafFig, SpeciesBirdOfParadise, SpeciesOrchid},
	TierCloseFriend:  {SpeciesPothos, SpeciesPeaceLily, SpeciesRubberPlant},
	TierGoodFriend:   {SpeciesFern, SpeciesSpiderPlant, SpeciesHerbs},
	TierFriend:       {SpeciesSucculent, SpeciesSnakePlant, SpeciesAloe},
	TierAcquaintance: {SpeciesCactus, SpeciesAirPlant, SpeciesSeedling},
}

// SpeciesFor returns the species a tier may be drawn as.
func SpeciesFor(t Tier) []Species {
	return slices.Clone(tierSpecies[t])
}

// AllowedFor reports whether s is a valid species for tier t.
func (s Species) AllowedFor(t Tier) bool {
	return slices.Contains(tierSpecies[t], s)
}

// PotStyle is the pot shape.
type PotStyle string

const (
	PotCylinder   PotStyle = "cylinder"
	PotTapered    PotStyle = "tapered"
	PotRound      PotStyle = "round"
	PotTerracotta PotStyle = "terracotta"
	PotBasket     PotStyle = "basket"
)

var PotStyles = []PotStyle{PotCylinder, PotTapered, PotRound, PotTerracotta, PotBasket}

func (p PotStyle) Valid() bool { return slices.Contains(PotStyles, p) }

// PotColor is the pot glaze.
type PotColor string

const (
	ColorSage       PotColor = "sage"
	ColorTerracotta PotColor = "terracotta"
	ColorPink       PotColor = "pink"
	ColorYellow     PotColor = "yellow"
	ColorBlue       PotColor = "blue"
	ColorLavender   PotColor = "lavender"
)

var PotColors = []PotColor{ColorSage, ColorTerracotta, ColorPink, ColorYellow, ColorBlue, ColorLavender}

func (c PotColor) Valid() bool { return slices.Contains(PotColors, c) }

// Appearance is the presentation-only plant assigned 1:1 to a friend.
type Appearance struct {
	FriendID string   `json:"friend_id" yaml:"friend_id"`
	Species  Species  `json:"species" yaml:"species"`
	PotStyle PotStyle `json:"pot_style" yaml:"pot_style"`
	PotColor PotColor `json:"pot_color" yaml:"pot_color"`
}
