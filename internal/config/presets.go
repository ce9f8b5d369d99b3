package config

import (
	"sort"

	"github.com/san-kum/pondmodel/internal/pond"
)

var Presets = map[string]pond.Params{
	"default":  pond.DefaultParams(),
	"wide":     pond.NewParams(5, 4, 10),
	"narrow":   pond.NewParams(5, 1.5, 10),
	"steep":    pond.NewParams(5, 2, 5),
	"shallow":  pond.NewParams(2, 2, 30),
	"terraced": pond.NewParams(8, 3, 45),
}

func GetPreset(name string) (pond.Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
