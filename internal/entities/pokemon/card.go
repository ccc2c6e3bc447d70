package pokemon

// Card is the render model of the widget. It is derived from a session and
// never stored.
type Card struct {
	Title   string `json:"title"`
	Visible bool   `json:"visible"`

	// Result is nil while loading and after an error
	Result *Pokemon `json:"result,omitempty"`

	// Placeholder is set when a failed lookup keeps the card visible
	Placeholder bool `json:"placeholder"`

	Status         Status `json:"status"`
	Message        string `json:"message,omitempty"`
	SearchDisabled bool   `json:"search_disabled"`
}

// NameCaption is the text shown in the name slot of the card
func (c *Card) NameCaption() string {
	switch {
	case c.Result != nil:
		return c.Result.Name
	case c.Placeholder:
		return "Not found"
	case c.Status == StatusLoading:
		return "Loading..."
	}
	return ""
}

// ImageURL is the image shown on the card, if any
func (c *Card) ImageURL() string {
	switch {
	case c.Result != nil:
		return c.Result.SpriteURL
	case c.Placeholder:
		return PlaceholderImageURL
	}
	return ""
}

// ImageAlt is the alternative text for ImageURL
func (c *Card) ImageAlt() string {
	if c.Result != nil {
		return "Image of " + c.Result.Name
	}
	return ""
}
