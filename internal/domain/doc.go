// Package domain models RescueBot disaster scenarios and the rules that turn
// loosely formatted scenario files into well-formed records.
//
// # File Format
//
// One record per line, eight comma-separated fields. The first line of a file
// is a header and is always skipped by the loader.
//
//	scenario:<disaster>,[Simulation|],,,,,,
//	location:<lat> <N|S>;<lon> <E|W>;<trespassing|legal>,[true|],,,,,,
//	human,<gender>,<age>,<bodyType>,<profession>,<pregnant>,,
//	animal,<gender>,<age>,<bodyType>,,,<species>,<isPet>
//
// The "Simulation" and "true" markers only appear in rescue logs written by
// the simulation and interactive drivers; they let an audit replay which
// location was saved.
//
// # Defaults
//
// Nothing in a line is fatal. A wrong field count is reported and parsing
// continues with the fields that exist. Out-of-set values are replaced:
//
//	disaster    → flood
//	latitude    → 45 (must be within [0, 90])
//	longitude   → 90 (must be within [0, 180])
//	hemisphere  → N / E
//	status      → trespassing (anything but "legal")
//	gender      → unknown
//	age         → 18 (unparsable or negative)
//	body type   → unspecified
//	profession  → none, and forced to none outside ages 17–68
//	pregnant    → false for males
//
// Species is passed through lower-cased; an empty species reads as
// "unspecified". Each substitution is returned as a [Warning] so the caller
// decides how loudly to report it.
//
// # Scoring
//
// [Decide] scores every location in one pass (see [Score]) and saves the
// first location with the strictly highest score.
package domain
