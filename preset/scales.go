package preset

import (
	"sort"
	"strings"

	"github.com/cwbudde/colourizer/colour"
)

// namedScales are the built-in masks, all rooted at C. The miyako-bushi
// scale is the engine default.
var namedScales = map[string][12]float64{
	"chromatic":        {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	"major":            {1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 0, 1},
	"natural-minor":    {1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 0},
	"minor-pentatonic": {1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 0},
	"miyako-bushi":     colour.MiyakoBushi,
}

// Named looks up a built-in scale mask by name.
func Named(name string) ([12]float64, bool) {
	mask, ok := namedScales[strings.ToLower(strings.TrimSpace(name))]
	return mask, ok
}

// ScaleNames lists the built-in scale names in sorted order.
func ScaleNames() []string {
	names := make([]string, 0, len(namedScales))
	for name := range namedScales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
