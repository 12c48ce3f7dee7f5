package ygoprodeck

// Card mirrors the slice of the YGOPRODeck card shape this bot uses.
// Level, ATK and DEF are pointers because spells and traps carry none,
// and 0 is a legal value for all three.
type Card struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Desc      string     `json:"desc"`
	Attribute string     `json:"attribute"`
	Race      string     `json:"race"`
	Archetype string     `json:"archetype"`
	Level     *int       `json:"level"`
	ATK       *int       `json:"atk"`
	DEF       *int       `json:"def"`
	Images    []CardImage `json:"card_images"`
}

// CardImage is one rendition of the card art.
type CardImage struct {
	URL      string `json:"image_url"`
	URLSmall string `json:"image_url_small"`
}

// ImageURL returns the primary card image, empty when the API sent none.
func (c Card) ImageURL() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[0].URL
}
