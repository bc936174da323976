// Package theme holds the grid color palettes. Colors are CSS strings:
// hex, rgb() or hsl(). An empty string means "no background".
package theme

// Palette defines the colors the grid engine resolves per cell.
type Palette struct {
	Name string
	Dark bool

	// Text colors
	DataFont   string // Body cell text
	HeaderFont string // Header text
	Highlight  string // Accent for sorted headers and data bars

	// Cell backgrounds
	CellBackground   string // Theme default, usually empty
	HeaderBackground string // Header and index column
	Focused          string // Focused cell
	Selected         string // Selection range
	SortEven         string // Sort highlighter, even rows
	SortOdd          string // Sort highlighter, odd rows
	Void             string // Canvas outside the cells
	Background       string // Body background
	GridLine         string
	Danger           string // Cells whose formatter failed

	// Unique entries color floor, in percent
	MinSaturation float64
	MinLightness  float64
}

// Light is the default palette.
func Light() Palette {
	return Palette{
		Name:             "Light",
		DataFont:         "#000000",
		HeaderFont:       "#515a5a",
		Highlight:        "#6ba2c7",
		HeaderBackground: "#e6e6e6",
		Focused:          "#c8c8c8",
		Selected:         "#b0bed9",
		SortEven:         "rgb(241, 241, 241)",
		SortOdd:          "rgb(249, 249, 249)",
		Void:             "#ffffff",
		Background:       "#ffffff",
		GridLine:         "#d4d0d0",
		Danger:           "#c0392b",
		MinSaturation:    35,
		MinLightness:     35,
	}
}

// Dark is the dark palette.
func Dark() Palette {
	return Palette{
		Name:             "Dark",
		Dark:             true,
		DataFont:         "#ffffff",
		HeaderFont:       "#ffffff",
		Highlight:        "#dfdfdf",
		HeaderBackground: "#252525",
		Focused:          "#66bb6a",
		Selected:         "#2196f3",
		SortEven:         "rgb(34, 34, 34)",
		SortOdd:          "rgb(26, 26, 26)",
		Void:             "#636363",
		Background:       "#212121",
		GridLine:         "#626262",
		Danger:           "#ef5350",
		MinSaturation:    15,
		MinLightness:     15,
	}
}

// For returns the dark palette when dark is set, otherwise the light one.
func For(dark bool) Palette {
	if dark {
		return Dark()
	}
	return Light()
}

// ByName resolves "Light" or "Dark"; anything else is Light.
func ByName(name string) Palette {
	if name == "Dark" || name == "dark" {
		return Dark()
	}
	return Light()
}

// RowBackground is the zebra stripe for body row i.
func (p Palette) RowBackground(i int) string {
	if i%2 != 0 {
		return ""
	}
	if p.Dark {
		return "#424242"
	}
	return "#f9f9f9"
}
