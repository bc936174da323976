package model

import (
	"github.com/five82/tablegrid/internal/datatype"
)

// Renderer is a per-column cell renderer override.
type Renderer struct {
	Type        string `json:"type" yaml:"type"`
	IncludeText bool   `json:"includeText" yaml:"includeText"`
}

// DataBarsRenderer is the only renderer type the grid draws.
const DataBarsRenderer = "DataBars"

// Record is the model published by the host. Values is row-major and, when
// HasIndex is set, each row's first value is the row index.
type Record struct {
	ColumnNames           []any                            `json:"columnNames" yaml:"columnNames"`
	Types                 []string                         `json:"types" yaml:"types"`
	Values                [][]any                          `json:"values" yaml:"values"`
	HasIndex              bool                             `json:"hasIndex" yaml:"hasIndex"`
	AlignmentForColumn    map[string]string                `json:"alignmentForColumn,omitempty" yaml:"alignmentForColumn,omitempty"`
	AlignmentForType      map[string]string                `json:"alignmentForType,omitempty" yaml:"alignmentForType,omitempty"`
	CellHighlighters      []HighlighterState               `json:"cellHighlighters,omitempty" yaml:"cellHighlighters,omitempty"`
	ColumnOrder           []string                         `json:"columnOrder,omitempty" yaml:"columnOrder,omitempty"`
	ColumnsFrozen         map[string]bool                  `json:"columnsFrozen,omitempty" yaml:"columnsFrozen,omitempty"`
	ColumnsVisible        map[string]bool                  `json:"columnsVisible,omitempty" yaml:"columnsVisible,omitempty"`
	ContextMenuItems      []string                         `json:"contextMenuItems,omitempty" yaml:"contextMenuItems,omitempty"`
	ContextMenuTags       map[string]string                `json:"contextMenuTags,omitempty" yaml:"contextMenuTags,omitempty"`
	DataFontSize          *float64                         `json:"dataFontSize,omitempty" yaml:"dataFontSize,omitempty"`
	HeaderFontSize        *float64                         `json:"headerFontSize,omitempty" yaml:"headerFontSize,omitempty"`
	DoubleClickTag        string                           `json:"doubleClickTag,omitempty" yaml:"doubleClickTag,omitempty"`
	HasDoubleClickAction  bool                             `json:"hasDoubleClickAction,omitempty" yaml:"hasDoubleClickAction,omitempty"`
	FontColor             [][]string                       `json:"fontColor,omitempty" yaml:"fontColor,omitempty"`
	FilteredValues        [][]any                          `json:"filteredValues,omitempty" yaml:"filteredValues,omitempty"`
	HeadersVertical       bool                             `json:"headersVertical,omitempty" yaml:"headersVertical,omitempty"`
	RendererForColumn     map[string]*Renderer             `json:"rendererForColumn,omitempty" yaml:"rendererForColumn,omitempty"`
	RendererForType       map[string]*Renderer             `json:"rendererForType,omitempty" yaml:"rendererForType,omitempty"`
	StringFormatForColumn map[string]datatype.StringFormat `json:"stringFormatForColumn,omitempty" yaml:"stringFormatForColumn,omitempty"`
	StringFormatForType   map[string]datatype.StringFormat `json:"stringFormatForType,omitempty" yaml:"stringFormatForType,omitempty"`
	TimeZone              string                           `json:"timeZone,omitempty" yaml:"timeZone,omitempty"`
	TimeStrings           []string                         `json:"timeStrings,omitempty" yaml:"timeStrings,omitempty"`
	TooManyRows           bool                             `json:"tooManyRows,omitempty" yaml:"tooManyRows,omitempty"`
	Tooltips              [][]string                       `json:"tooltips,omitempty" yaml:"tooltips,omitempty"`
	RowsToShow            int                              `json:"rowsToShow,omitempty" yaml:"rowsToShow,omitempty"`
	AutoLinkTableLinks    bool                             `json:"auto_link_table_links,omitempty" yaml:"auto_link_table_links,omitempty"`
	ShowPublication       bool                             `json:"show_publication,omitempty" yaml:"show_publication,omitempty"`
}

// Empty reports whether the record carries no cell values.
func (r Record) Empty() bool {
	return len(r.Values) == 0 && len(r.ColumnNames) == 0
}

// Clone returns a deep copy of r. Cell values are treated as immutable
// leaves; the row slices holding them are copied.
func (r Record) Clone() Record {
	out := r
	out.ColumnNames = append([]any(nil), r.ColumnNames...)
	out.Types = append([]string(nil), r.Types...)
	out.Values = cloneRows(r.Values)
	out.FilteredValues = cloneRows(r.FilteredValues)
	out.AlignmentForColumn = cloneMap(r.AlignmentForColumn)
	out.AlignmentForType = cloneMap(r.AlignmentForType)
	out.CellHighlighters = make([]HighlighterState, len(r.CellHighlighters))
	for i, h := range r.CellHighlighters {
		out.CellHighlighters[i] = h.Clone()
	}
	if r.CellHighlighters == nil {
		out.CellHighlighters = nil
	}
	out.ColumnOrder = append([]string(nil), r.ColumnOrder...)
	out.ColumnsFrozen = cloneMap(r.ColumnsFrozen)
	out.ColumnsVisible = cloneMap(r.ColumnsVisible)
	out.ContextMenuItems = append([]string(nil), r.ContextMenuItems...)
	out.ContextMenuTags = cloneMap(r.ContextMenuTags)
	out.DataFontSize = clonePtr(r.DataFontSize)
	out.HeaderFontSize = clonePtr(r.HeaderFontSize)
	out.FontColor = cloneStrings2(r.FontColor)
	out.Tooltips = cloneStrings2(r.Tooltips)
	out.RendererForColumn = cloneRenderers(r.RendererForColumn)
	out.RendererForType = cloneRenderers(r.RendererForType)
	out.StringFormatForColumn = cloneFormats(r.StringFormatForColumn)
	out.StringFormatForType = cloneFormats(r.StringFormatForType)
	out.TimeStrings = append([]string(nil), r.TimeStrings...)
	if r.TimeStrings == nil {
		out.TimeStrings = nil
	}
	return out
}

func cloneRows(rows [][]any) [][]any {
	if rows == nil {
		return nil
	}
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = append([]any(nil), row...)
	}
	return out
}

func cloneStrings2(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneRenderers(m map[string]*Renderer) map[string]*Renderer {
	if m == nil {
		return nil
	}
	out := make(map[string]*Renderer, len(m))
	for k, v := range m {
		out[k] = clonePtr(v)
	}
	return out
}

func cloneFormats(m map[string]datatype.StringFormat) map[string]datatype.StringFormat {
	if m == nil {
		return nil
	}
	out := make(map[string]datatype.StringFormat, len(m))
	for k, v := range m {
		if v.Values != nil {
			values := make(map[string][]string, len(v.Values))
			for name, list := range v.Values {
				values[name] = append([]string(nil), list...)
			}
			v.Values = values
		}
		out[k] = v
	}
	return out
}
