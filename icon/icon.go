// Package icon maps OpenWeatherMap icon codes onto the tiles of a weather
// icon spritesheet.
//
// An icon code is always three characters: a two-digit condition family
// followed by 'd' (day) or 'n' (night), e.g. "01d" or "10n". The spritesheet
// holds one row per family, with the day variant in column 0 and the night
// variant in column 1.
package icon

// families lists the recognized condition families in spritesheet row order.
var families = [...]string{"01", "02", "03", "04", "09", "10", "11", "13", "50"}

// Columns is the number of tiles in each spritesheet row (day, night).
const Columns = 2

// Count is the number of tiles in the spritesheet.
const Count = len(families) * Columns

// Valid reports whether code is a well-formed icon code: two digits followed
// by 'd' or 'n'. Callers must reject invalid codes before calling Map.
func Valid(code string) bool {
	if len(code) != 3 {
		return false
	}
	if code[0] < '0' || code[0] > '9' || code[1] < '0' || code[1] > '9' {
		return false
	}
	return code[2] == 'd' || code[2] == 'n'
}

// Map returns the spritesheet index for the given icon code.
// The returned ok is false if the code's family is not recognized, in which
// case no icon should be shown. Malformed codes are never recognized.
func Map(code string) (index int, ok bool) {
	if !Valid(code) {
		return 0, false
	}
	row := -1
	for i, f := range families {
		if f == code[0:2] {
			row = i
			break
		}
	}
	if row < 0 {
		return 0, false
	}
	column := 0
	if code[2] == 'n' {
		column = 1
	}
	return row*Columns + column, true
}
