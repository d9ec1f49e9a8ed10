package model

import "maps"

// Profile holds free-form notes about a friend. Nothing in scoring reads it.
type Profile struct {
	Basics    *ProfileBasics    `json:"basics,omitempty" yaml:"basics,omitempty"`
	Favorites *ProfileFavorites `json:"favorites,omitempty" yaml:"favorites,omitempty"`
	Life      *ProfileLife      `json:"life,omitempty" yaml:"life,omitempty"`
	GiftIntel *GiftIntel        `json:"gift_intel,omitempty" yaml:"gift_intel,omitempty"`
	RawNotes  []string          `json:"raw_notes,omitempty" yaml:"raw_notes,omitempty"`
}

type ProfileBasics struct {
	Partner     string   `json:"partner,omitempty" yaml:"partner,omitempty"`
	Kids        string   `json:"kids,omitempty" yaml:"kids,omitempty"`
	Pets        string   `json:"pets,omitempty" yaml:"pets,omitempty"`
	Dietary     []string `json:"dietary,omitempty" yaml:"dietary,omitempty"`
	Drinks      []string `json:"drinks,omitempty" yaml:"drinks,omitempty"`
	DoesntDrink []string `json:"doesnt_drink,omitempty" yaml:"doesnt_drink,omitempty"`
}

type ProfileFavorites struct {
	Restaurants []string `json:"restaurants,omitempty" yaml:"restaurants,omitempty"`
	Candy       []string `json:"candy,omitempty" yaml:"candy,omitempty"`
	Brands      []string `json:"brands,omitempty" yaml:"brands,omitempty"`
	Books       []string `json:"books,omitempty" yaml:"books,omitempty"`
	Activities  []string `json:"activities,omitempty" yaml:"activities,omitempty"`
}

// DatedNote is a short note pinned to an ISO date string.
type DatedNote struct {
	Text string `json:"text" yaml:"text"`
	Date string `json:"date" yaml:"date"`
}

type ProfileLife struct {
	Job       string      `json:"job,omitempty" yaml:"job,omitempty"`
	Goals     []string    `json:"goals,omitempty" yaml:"goals,omitempty"`
	Stressors []string    `json:"stressors,omitempty" yaml:"stressors,omitempty"`
	BigNews   []DatedNote `json:"big_news,omitempty" yaml:"big_news,omitempty"`
}

type GiftIntel struct {
	Sizes     map[string]string `json:"sizes,omitempty" yaml:"sizes,omitempty"`
	Likes     []string          `json:"likes,omitempty" yaml:"likes,omitempty"`
	Dislikes  []string          `json:"dislikes,omitempty" yaml:"dislikes,omitempty"`
	GiftIdeas []DatedNote       `json:"gift_ideas,omitempty" yaml:"gift_ideas,omitempty"`
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	c := Profile{RawNotes: cloneStrings(p.RawNotes)}
	if p.Basics != nil {
		b := *p.Basics
		b.Dietary = cloneStrings(b.Dietary)
		b.Drinks = cloneStrings(b.Drinks)
		b.DoesntDrink = cloneStrings(b.DoesntDrink)
		c.Basics = &b
	}
	if p.Favorites != nil {
		f := ProfileFavorites{
			Restaurants: cloneStrings(p.Favorites.Restaurants),
			Candy:       cloneStrings(p.Favorites.Candy),
			Brands:      cloneStrings(p.Favorites.Brands),
			Books:       cloneStrings(p.Favorites.Books),
			Activities:  cloneStrings(p.Favorites.Activities),
		}
		c.Favorites = &f
	}
	if p.Life != nil {
		l := *p.Life
		l.Goals = cloneStrings(l.Goals)
		l.Stressors = cloneStrings(l.Stressors)
		l.BigNews = append([]DatedNote(nil), l.BigNews...)
		c.Life = &l
	}
	if p.GiftIntel != nil {
		g := GiftIntel{
			Sizes:     maps.Clone(p.GiftIntel.Sizes),
			Likes:     cloneStrings(p.GiftIntel.Likes),
			Dislikes:  cloneStrings(p.GiftIntel.Dislikes),
			GiftIdeas: append([]DatedNote(nil), p.GiftIntel.GiftIdeas...),
		}
		c.GiftIntel = &g
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
