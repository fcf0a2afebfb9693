package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// marketTheme is the default theme with a green primary colour.
type marketTheme struct{ dark bool }

func makeTheme(dark bool) fyne.Theme { return &marketTheme{dark: dark} }

func (t *marketTheme) variant() fyne.ThemeVariant {
	if t.dark { return theme.VariantDark }
	return theme.VariantLight
}

func (t *marketTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch n {
	case theme.ColorNamePrimary:
		return color.NRGBA{34, 197, 94, 255}
	case theme.ColorNameButton:
		if t.dark { return color.NRGBA{40, 48, 44, 255} }
		return color.NRGBA{229, 231, 235, 255}
	}
	return theme.DefaultTheme().Color(n, t.variant())
}

func (t *marketTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (t *marketTheme) Icon(n fyne.ThemeIconName) fyne.Resource { return theme.DefaultTheme().Icon(n) }
func (t *marketTheme) Size(n fyne.ThemeSizeName) float32       { return theme.DefaultTheme().Size(n) }
