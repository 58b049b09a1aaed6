package models

// Lexicon maps recognized schedule tokens to shift categories. It is an
// injectable table so locales and vocabularies can be swapped without code
// changes. Name tokens are known employee names that must never be read as
// shift indicators.
type Lexicon struct {
	Indicators map[string]ShiftType
	Names      map[string]struct{}
}

// IsIndicator reports whether the word denotes a shift type.
func (l Lexicon) IsIndicator(word string) (ShiftType, bool) {
	if _, isName := l.Names[word]; isName {
		return "", false
	}
	t, ok := l.Indicators[word]
	return t, ok
}

// DefaultLexicon returns the Hebrew schedule vocabulary the recognizer
// typically produces.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Indicators: map[string]ShiftType{
			"בוקר": ShiftMorning,
			"ערב":  ShiftEvening,
			"לילה": ShiftNight,
		},
		Names: map[string]struct{}{
			"מחמוד": {},
			"הראל":  {},
			"אריאל": {},
		},
	}
}
