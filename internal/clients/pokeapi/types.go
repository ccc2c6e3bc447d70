package pokeapi

// PokemonResponse is the subset of GET /pokemon/{identifier} we read
type PokemonResponse struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height"` // decimeters
	Weight    int           `json:"weight"` // hectograms
	Sprites   Sprites       `json:"sprites"`
	Abilities []AbilitySlot `json:"abilities"`
}

// Sprites holds the sprite URLs. The API sends null for missing images.
type Sprites struct {
	FrontDefault *string      `json:"front_default"`
	Other        OtherSprites `json:"other"`
}

// OtherSprites holds the high resolution artwork sets
type OtherSprites struct {
	DreamWorld      SpriteSet `json:"dream_world"`
	OfficialArtwork SpriteSet `json:"official-artwork"`
}

// SpriteSet is a single artwork set
type SpriteSet struct {
	FrontDefault *string `json:"front_default"`
}

// AbilitySlot is one entry of the abilities array
type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

// NamedResource is the API's {name, url} reference
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
