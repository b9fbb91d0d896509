package profile

import "sort"

// Profile defines placeholder parameters for a target surface.
type Profile struct {
	Name        string
	ComponentsX int     // horizontal DCT components, 1-9
	ComponentsY int     // vertical DCT components, 1-9
	MaxDim      int     // longest source edge fed to the encoder (0 = no downscale)
	PreviewW    int     // longest edge of decoded previews
	Punch       float64 // preview contrast
	Formats     []string
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:        "default",
		ComponentsX: 4,
		ComponentsY: 3,
		MaxDim:      64,
		PreviewW:    32,
		Punch:       1,
		Formats:     []string{"png"},
	},
	"compact": {
		Name:        "compact",
		ComponentsX: 3,
		ComponentsY: 3,
		MaxDim:      32,
		PreviewW:    16,
		Punch:       1,
		Formats:     []string{"png"},
	},
	"detailed": {
		Name:        "detailed",
		ComponentsX: 6,
		ComponentsY: 5,
		MaxDim:      128,
		PreviewW:    64,
		Punch:       1.2,
		Formats:     []string{"png", "jpeg"},
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["default"]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profiles in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Components returns the grid oriented to the image: the larger count
// goes to the longer edge, so portrait images get more vertical detail.
func (p Profile) Components(width, height int) (int, int) {
	x, y := p.ComponentsX, p.ComponentsY
	if height > width && x > y || width > height && y > x {
		x, y = y, x
	}
	return x, y
}

// PreviewSize scales width×height so the longer edge equals PreviewW.
func (p Profile) PreviewSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 || p.PreviewW <= 0 {
		return 0, 0
	}
	if width >= height {
		return p.PreviewW, max(1, height*p.PreviewW/width)
	}
	return max(1, width*p.PreviewW/height), p.PreviewW
}
