package domain

// Gulf-region location labels that force the UAE market.
var gulfLocations = map[string]struct{}{
	"UAE":       {},
	"Dubai":     {},
	"Abu Dhabi": {},
}

// Domestic metros that deterministically map to the India market.
var indianMetros = map[string]struct{}{
	"Bangalore": {},
	"Delhi NCR": {},
	"Mumbai":    {},
	"Hyderabad": {},
	"Pune":      {},
	"Chennai":   {},
	"Kolkata":   {},
}

// ResolveCountry infers the target market from the selected locations.
// Any Gulf label wins outright; a non-empty selection made up entirely of
// known Indian metros maps to India; anything else keeps the previous value.
// Pure, and the only place country inference may happen.
func ResolveCountry(locations []string, previous string) string {
	for _, loc := range locations {
		if _, ok := gulfLocations[loc]; ok {
			return CountryUAE
		}
	}

	if len(locations) == 0 {
		return previous
	}

	for _, loc := range locations {
		if _, ok := indianMetros[loc]; !ok {
			return previous
		}
	}
	return CountryIndia
}
