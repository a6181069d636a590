package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// overlayTheme forces the dark variant with a slightly tighter layout.
type overlayTheme struct {
	base fyne.Theme
}

func newOverlayTheme() fyne.Theme {
	return &overlayTheme{base: theme.DefaultTheme()}
}

func (t *overlayTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xf0}
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x3d, G: 0x8b, B: 0xfd, A: 0xff}
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 0x7f, G: 0xd4, B: 0xa8, A: 0xff}
	case theme.ColorNameError:
		return color.NRGBA{R: 0xff, G: 0x82, B: 0x82, A: 0xff}
	}
	return t.base.Color(name, theme.VariantDark)
}

func (t *overlayTheme) Font(style fyne.TextStyle) fyne.Resource { return t.base.Font(style) }

func (t *overlayTheme) Icon(name fyne.ThemeIconName) fyne.Resource { return t.base.Icon(name) }

func (t *overlayTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding, theme.SizeNameInnerPadding:
		return 6
	}
	return t.base.Size(name)
}
