package config

import (
	"github.com/b9s/b9s/internal/config/data"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// Color represents a skin color by name or hex value.
type Color string

// Color converts to a tcell color.
func (c Color) Color() tcell.Color {
	if c == "" || c == "default" {
		return tcell.ColorDefault
	}

	return tcell.GetColor(string(c)).TrueColor()
}

// Body tracks the skin's base colors.
type Body struct {
	FgColor Color `yaml:"fgColor"`
	BgColor Color `yaml:"bgColor"`
}

// Frame tracks border and title colors.
type Frame struct {
	BorderColor Color `yaml:"borderColor"`
	FocusColor  Color `yaml:"focusColor"`
	TitleColor  Color `yaml:"titleColor"`
}

// Styles represents a b9s skin loaded from the skins dir.
type Styles struct {
	Body  Body  `yaml:"body"`
	Frame Frame `yaml:"frame"`
}

// NewStyles creates styles with default colors.
func NewStyles() *Styles {
	return &Styles{
		Body: Body{
			FgColor: "cadetblue",
			BgColor: "black",
		},
		Frame: Frame{
			BorderColor: "dodgerblue",
			FocusColor:  "aqua",
			TitleColor:  "aqua",
		},
	}
}

// Load reads a skin file on top of the defaults.
func (s *Styles) Load(path string) error {
	return data.LoadYAML(path, s)
}

// Apply pushes the skin onto the global tview styles.
func (s *Styles) Apply() {
	tview.Styles.PrimitiveBackgroundColor = s.Body.BgColor.Color()
	tview.Styles.ContrastBackgroundColor = s.Body.BgColor.Color()
	tview.Styles.PrimaryTextColor = s.Body.FgColor.Color()
	tview.Styles.BorderColor = s.Frame.BorderColor.Color()
	tview.Styles.TitleColor = s.Frame.TitleColor.Color()
	tview.Styles.GraphicsColor = s.Frame.FocusColor.Color()
}
