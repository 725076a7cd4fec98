// Package slug turns arbitrary text into filename-safe identifiers.
//
// Diacritics are folded with Unicode decomposition (golang.org/x/text), a few
// letters without a decomposition are transliterated, and every run of other
// characters collapses into a single separator:
//
//	slug.Make("Café & Restaurant")        // "cafe-restaurant"
//	slug.Make("Straße in München")        // "strasse-in-munchen"
//	slug.Make("Trip 2024!", slug.MaxLength(6)) // "trip-2"
//
// Scripts with no Latin folding (Cyrillic, CJK) are dropped, so Make may
// return "". Callers that need a non-empty name must supply a fallback.
package slug
