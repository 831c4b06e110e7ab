// README: Fixed lookup tables: months, holidays, region aliases, countries.
package dialogue

import "time"

var monthsByName = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// holidayRange is a fixed month/day window for a named holiday, pinned to the
// reference year at extraction time. spansYear marks windows that cross the
// year boundary (the end lands in the following year).
type holidayRange struct {
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
	spansYear  bool
}

var holidays = map[string]holidayRange{
	"diwali":    {time.October, 29, time.November, 2, false},
	"christmas": {time.December, 24, time.December, 26, false},
	"new year":  {time.December, 31, time.January, 1, true},
	"new years": {time.December, 31, time.January, 1, true},
}

// regionAliases are continent or multi-country names that cannot be searched
// directly; each maps to a shortlist of concrete cities offered during
// disambiguation.
var regionAliases = map[string][]string{
	"europe":          {"Paris", "London", "Rome", "Barcelona", "Amsterdam"},
	"asia":            {"Tokyo", "Bangkok", "Singapore", "Seoul", "Hong Kong"},
	"southeast asia":  {"Bangkok", "Singapore", "Bali", "Hanoi", "Kuala Lumpur"},
	"south east asia": {"Bangkok", "Singapore", "Bali", "Hanoi", "Kuala Lumpur"},
	"africa":          {"Cape Town", "Marrakech", "Nairobi", "Cairo"},
	"south america":   {"Rio de Janeiro", "Buenos Aires", "Lima", "Bogota"},
	"north america":   {"New York", "Toronto", "Mexico City", "Los Angeles"},
	"middle east":     {"Dubai", "Doha", "Tel Aviv", "Abu Dhabi"},
	"scandinavia":     {"Stockholm", "Copenhagen", "Oslo"},
	"oceania":         {"Sydney", "Auckland", "Melbourne"},
	"caribbean":       {"Havana", "San Juan", "Nassau"},
	"mediterranean":   {"Barcelona", "Nice", "Athens", "Santorini"},
}

// countryCities maps country names to cities with searchable airports, used
// for country-not-city disambiguation.
var countryCities = map[string][]string{
	"japan":       {"Tokyo", "Osaka", "Sapporo"},
	"india":       {"Delhi", "Mumbai", "Bangalore"},
	"france":      {"Paris", "Nice", "Lyon"},
	"italy":       {"Rome", "Milan", "Venice"},
	"spain":       {"Madrid", "Barcelona", "Seville"},
	"germany":     {"Berlin", "Munich", "Frankfurt"},
	"portugal":    {"Lisbon", "Porto"},
	"greece":      {"Athens", "Santorini"},
	"switzerland": {"Zurich", "Geneva"},
	"turkey":      {"Istanbul", "Ankara"},
	"thailand":    {"Bangkok", "Phuket", "Chiang Mai"},
	"vietnam":     {"Hanoi", "Ho Chi Minh City", "Da Nang"},
	"indonesia":   {"Bali", "Jakarta"},
	"malaysia":    {"Kuala Lumpur", "Penang"},
	"china":       {"Beijing", "Shanghai"},
	"australia":   {"Sydney", "Melbourne"},
	"egypt":       {"Cairo", "Luxor"},
	"morocco":     {"Marrakech", "Casablanca"},
	"brazil":      {"Rio de Janeiro", "Sao Paulo"},
	"mexico":      {"Mexico City", "Cancun"},
}

// classifyPlace tags a raw place mention with region/country flags.
func classifyPlace(name string) Place {
	key := normalizePlaceKey(name)
	if _, ok := regionAliases[key]; ok {
		return Place{Name: name, IsRegion: true}
	}
	if _, ok := countryCities[key]; ok {
		return Place{Name: name, IsCountry: true}
	}
	return Place{Name: name}
}

// candidateCities returns the disambiguation shortlist for a region or
// country mention, or nil for a concrete city.
func candidateCities(p Place) []string {
	key := normalizePlaceKey(p.Name)
	if p.IsRegion {
		return regionAliases[key]
	}
	if p.IsCountry {
		return countryCities[key]
	}
	return nil
}
