package utils

type colors struct {
	c map[string]int
}

var Colors = colors{
	// Palette: https://coolors.co/6a4c93-1982c4-8ac926-ffca3a-ff595e
	c: map[string]int{
		"Ultra violet": 0x6a4c93,
		"Steel blue":   0x1982c4,
		"Yellow green": 0x8ac926,
		"Sunglow":      0xffca3a,
		"Bittersweet":  0xff595e,
	},
}

// Ok returns the color code for success messages
func (c colors) Ok() int {
	return c.c["Yellow green"]
}

// Info returns the color code for informational messages
func (c colors) Info() int {
	return c.c["Steel blue"]
}

// Fancy returns the color code for card and game embeds
func (c colors) Fancy() int {
	return c.c["Ultra violet"]
}

// Error returns the color code for error messages
func (c colors) Error() int {
	return c.c["Bittersweet"]
}

// Warning returns the color code for warning messages
func (c colors) Warning() int {
	return c.c["Sunglow"]
}
