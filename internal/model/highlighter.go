package model

// HighlighterType names a highlighter implementation.
type HighlighterType string

const (
	HeatmapHighlighter           HighlighterType = "HeatmapHighlighter"
	ThreeColorHeatmapHighlighter HighlighterType = "ThreeColorHeatmapHighlighter"
	UniqueEntriesHighlighter     HighlighterType = "UniqueEntriesHighlighter"
	ValueHighlighter             HighlighterType = "ValueHighlighter"
	SortHighlighter              HighlighterType = "SortHighlighter"
)

// HighlighterStyle selects whether a highlighter paints one column or the
// whole row.
type HighlighterStyle string

const (
	SingleColumn HighlighterStyle = "SINGLE_COLUMN"
	FullRow      HighlighterStyle = "FULL_ROW"
)

// HighlighterState is the stored configuration of a highlighter.
type HighlighterState struct {
	Type     HighlighterType  `json:"type" yaml:"type"`
	ColName  string           `json:"colName" yaml:"colName"`
	Style    HighlighterStyle `json:"style,omitempty" yaml:"style,omitempty"`
	MinVal   *float64         `json:"minVal,omitempty" yaml:"minVal,omitempty"`
	MaxVal   *float64         `json:"maxVal,omitempty" yaml:"maxVal,omitempty"`
	MidVal   *float64         `json:"midVal,omitempty" yaml:"midVal,omitempty"`
	MinColor string           `json:"minColor,omitempty" yaml:"minColor,omitempty"`
	MaxColor string           `json:"maxColor,omitempty" yaml:"maxColor,omitempty"`
	MidColor string           `json:"midColor,omitempty" yaml:"midColor,omitempty"`
	Colors   []string         `json:"colors,omitempty" yaml:"colors,omitempty"`
}

// Clone returns a deep copy of h.
func (h HighlighterState) Clone() HighlighterState {
	h.MinVal = clonePtr(h.MinVal)
	h.MaxVal = clonePtr(h.MaxVal)
	h.MidVal = clonePtr(h.MidVal)
	if h.Colors != nil {
		h.Colors = append([]string(nil), h.Colors...)
	}
	return h
}

// Same reports whether h and other address the same (column, type) slot.
func (h HighlighterState) Same(other HighlighterState) bool {
	return h.ColName == other.ColName && h.Type == other.Type
}
