package cli

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/exp/charmtone"
)

// ColorSchemeFunc builds the fang color scheme from the charmtone palette.
func ColorSchemeFunc(c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           c(charmtone.Charcoal, charmtone.Ash),
		Title:          charmtone.Charple,
		Codeblock:      c(charmtone.Salt, lipgloss.Color("#2F2E36")),
		Program:        charmtone.Malibu,
		Command:        charmtone.Malibu,
		DimmedArgument: c(charmtone.Squid, charmtone.Smoke),
		Comment:        c(charmtone.Squid, charmtone.Smoke),
		Flag:           charmtone.Guac,
		Argument:       c(charmtone.Charcoal, charmtone.Ash),
		Description:    c(charmtone.Charcoal, charmtone.Ash),
		FlagDefault:    c(charmtone.Squid, charmtone.Smoke),
		QuotedString:   charmtone.Zest,
		ErrorHeader: [2]color.Color{
			charmtone.Butter,
			charmtone.Cherry,
		},
	}
}
