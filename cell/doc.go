// Package cell implements the typed cell-value codec for n-cube decision tables.
//
// Every value stored in or transmitted from a cube cell passes through this
// package. A cell holds one of a closed set of value kinds, each identified
// by a Tag with a stable lowercase name that is part of the persisted format.
//
// # Canonical Cell Record
//
// Encode maps a runtime value to a Record: the value as text, its Tag, and
// two flags (URL-backed, cacheable). Decode is the inverse: given the text
// (or an already-decoded JSON scalar), a type name and an optional URL, it
// rebuilds the runtime value or a command cell.
//
//	rec, _ := cell.Encode(int16(42))     // {Value:"42" Type:short}
//	v, _ := cell.Decode("42", "", "short", false) // int16(42)
//
// # Value Kinds
//
// Scalars: string, long, integer, short, byte, boolean, double, float,
// bigdecimal, biginteger, binary (hex), date.
// Geospatial: point2d, point3d, latlon.
// Commands: exp, method, template (plus URL-backed string and binary).
//
// # Formatting
//
// FormatForDisplay renders a decoded value for people (grouped digits,
// "Default" for null). FormatForEditing renders a value that reads back
// through Decode without loss.
//
// # Legacy
//
// Decode still accepts JSON arrays as cell values. Arrays were written by
// old cube files only; nothing produces them now.
package cell
