// Package pokemon holds the lookup result and widget display types
package pokemon

import "strconv"

const (
	// DefaultIdentifier is looked up when the widget first loads
	DefaultIdentifier = "pikachu"

	// PlaceholderImageURL is shown in place of a sprite when a lookup fails
	// and the card is kept visible
	PlaceholderImageURL = "https://placehold.co/150x150/d63031/ffffff?text=404"
)

// Pokemon is the lookup result extracted from a successful API response
type Pokemon struct {
	// Identifier is the query that produced this result
	Identifier string `json:"identifier"`

	Name string `json:"name"`

	// SpriteURL prefers the dream world artwork and falls back to the
	// default front sprite; empty when the API has neither
	SpriteURL string `json:"sprite_url,omitempty"`

	ID           int     `json:"id"`
	HeightMeters float64 `json:"height_m"`
	WeightKg     float64 `json:"weight_kg"`

	// Abilities are kept in source order, duplicates included
	Abilities []string `json:"abilities"`
}

// Clone returns a deep copy so callers can hand results out without sharing
// the abilities slice
func (p *Pokemon) Clone() *Pokemon {
	if p == nil {
		return nil
	}
	out := *p
	if p.Abilities != nil {
		out.Abilities = append([]string(nil), p.Abilities...)
	}
	return &out
}

// DecimetersToMeters converts the API's raw height unit
func DecimetersToMeters(dm int) float64 {
	return float64(dm) / 10
}

// HectogramsToKilograms converts the API's raw weight unit
func HectogramsToKilograms(hg int) float64 {
	return float64(hg) / 10
}

// FormatDecimal renders a converted measurement with the shortest exact
// representation, so 6.0 prints as "6" and 0.4 as "0.4"
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
