package style

// Sheet is an insertion-ordered table of named styles.
type Sheet struct {
	names  []string
	styles map[string]Style
}

// NewSheet creates an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{styles: make(map[string]Style)}
}

// Set stores s under name, keeping the position of an existing entry.
func (sh *Sheet) Set(name string, s Style) {
	if sh.styles == nil {
		sh.styles = make(map[string]Style)
	}
	if _, exists := sh.styles[name]; !exists {
		sh.names = append(sh.names, name)
	}
	sh.styles[name] = s
}

// Get returns the style stored under name.
func (sh *Sheet) Get(name string) (Style, bool) {
	if sh == nil {
		return Style{}, false
	}
	s, ok := sh.styles[name]
	return s, ok
}

// Has reports whether name is defined.
func (sh *Sheet) Has(name string) bool {
	_, ok := sh.Get(name)
	return ok
}

// Names returns style names in insertion order.
func (sh *Sheet) Names() []string {
	if sh == nil {
		return nil
	}
	names := make([]string, len(sh.names))
	copy(names, sh.names)
	return names
}

// Len returns the number of styles.
func (sh *Sheet) Len() int {
	if sh == nil {
		return 0
	}
	return len(sh.names)
}

// Clone returns an independent copy of sh.
func (sh *Sheet) Clone() *Sheet {
	out := NewSheet()
	for _, name := range sh.Names() {
		out.Set(name, sh.styles[name])
	}
	return out
}

// Strings returns each style's description keyed by name, for use as
// template data.
func (sh *Sheet) Strings() map[string]any {
	out := make(map[string]any, sh.Len())
	for _, name := range sh.Names() {
		out[name] = sh.styles[name].String()
	}
	return out
}

// LookupOrParse returns the style named name from sheet, or parses name as
// a style description when the sheet has no such entry.
func LookupOrParse(name string, sheet *Sheet) (Style, error) {
	if s, ok := sheet.Get(name); ok {
		return s, nil
	}
	return Parse(name)
}
