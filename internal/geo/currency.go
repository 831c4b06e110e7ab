package geo

import (
	"context"
	"strings"
)

// countryCurrency maps ISO 3166-1 alpha-2 country codes to their primary
// booking currency.
var countryCurrency = map[string]string{
	"US": "USD", "CA": "CAD", "MX": "MXN", "BR": "BRL",
	"GB": "GBP", "IE": "EUR", "FR": "EUR", "DE": "EUR", "ES": "EUR",
	"IT": "EUR", "PT": "EUR", "NL": "EUR", "GR": "EUR", "AT": "EUR",
	"CH": "CHF", "SE": "SEK", "NO": "NOK", "DK": "DKK", "CZ": "CZK",
	"TR": "TRY", "RU": "RUB",
	"IN": "INR", "JP": "JPY", "CN": "CNY", "HK": "HKD", "TW": "TWD",
	"KR": "KRW", "SG": "SGD", "TH": "THB", "VN": "VND", "ID": "IDR",
	"MY": "MYR", "PH": "PHP", "LK": "LKR", "NP": "NPR", "BD": "BDT",
	"AE": "AED", "SA": "SAR", "QA": "QAR", "IL": "ILS", "EG": "EGP",
	"ZA": "ZAR", "KE": "KES", "MA": "MAD", "NG": "NGN",
	"AU": "AUD", "NZ": "NZD",
}

// cityCountry covers the cities the extractors and tests speak about, so
// currency resolution has a pure, network-free path.
var cityCountry = map[string]string{
	"new york": "US", "los angeles": "US", "san francisco": "US", "chicago": "US",
	"london": "GB", "manchester": "GB", "edinburgh": "GB",
	"paris": "FR", "nice": "FR", "lyon": "FR",
	"berlin": "DE", "munich": "DE", "frankfurt": "DE",
	"rome": "IT", "milan": "IT", "venice": "IT", "florence": "IT",
	"madrid": "ES", "barcelona": "ES", "seville": "ES",
	"lisbon": "PT", "porto": "PT",
	"amsterdam": "NL", "athens": "GR", "santorini": "GR", "vienna": "AT",
	"zurich": "CH", "geneva": "CH", "prague": "CZ", "istanbul": "TR",
	"delhi": "IN", "new delhi": "IN", "mumbai": "IN", "bangalore": "IN",
	"bengaluru": "IN", "chennai": "IN", "kolkata": "IN", "hyderabad": "IN",
	"goa": "IN", "jaipur": "IN", "kochi": "IN", "pune": "IN", "ahmedabad": "IN",
	"tokyo": "JP", "osaka": "JP", "kyoto": "JP", "sapporo": "JP",
	"beijing": "CN", "shanghai": "CN", "hong kong": "HK", "taipei": "TW",
	"seoul": "KR", "busan": "KR", "singapore": "SG",
	"bangkok": "TH", "phuket": "TH", "chiang mai": "TH",
	"hanoi": "VN", "ho chi minh city": "VN", "da nang": "VN",
	"bali": "ID", "jakarta": "ID", "denpasar": "ID",
	"kuala lumpur": "MY", "penang": "MY", "manila": "PH", "cebu": "PH",
	"colombo": "LK", "kathmandu": "NP", "dhaka": "BD",
	"dubai": "AE", "abu dhabi": "AE", "doha": "QA", "riyadh": "SA",
	"tel aviv": "IL", "cairo": "EG",
	"cape town": "ZA", "johannesburg": "ZA", "nairobi": "KE",
	"marrakech": "MA", "lagos": "NG",
	"sydney": "AU", "melbourne": "AU", "auckland": "NZ",
	"toronto": "CA", "vancouver": "CA", "montreal": "CA",
	"mexico city": "MX", "cancun": "MX", "rio de janeiro": "BR", "sao paulo": "BR",
	"moscow": "RU", "stockholm": "SE", "oslo": "NO", "copenhagen": "DK",
}

// lookupCityCurrency resolves a city purely from the in-process tables.
func lookupCityCurrency(city string) (string, bool) {
	cc, ok := cityCountry[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		return "", false
	}
	cur, ok := countryCurrency[cc]
	return cur, ok
}

// StaticCurrencyResolver resolves a city to a currency from in-process tables.
// It never performs network I/O, which keeps turn resolution deterministic;
// the maps-backed Geocoder falls back to the API for cities outside the table.
type StaticCurrencyResolver struct {
	// Fallback is returned when the city is unknown.
	Fallback string
}

func (r *StaticCurrencyResolver) CurrencyFor(_ context.Context, city string) (string, error) {
	if cur, ok := lookupCityCurrency(city); ok {
		return cur, nil
	}
	return r.Fallback, nil
}

// CurrencyForCountry resolves an ISO country code directly.
func CurrencyForCountry(code string) (string, bool) {
	cur, ok := countryCurrency[strings.ToUpper(code)]
	return cur, ok
}
