// Package domain models the NOAA National Hurricane Center HURDAT2 best-track
// dataset and the landfall report derived from it.
//
// # Data Source
//
// HURDAT2 ("HURricane DATabase 2nd generation") is published as a single plain
// text file per basin at https://www.nhc.noaa.gov/data/#hurdat. The Atlantic
// file covers every known storm since 1851 and is a few megabytes; the whole
// file is fetched and parsed on each report request.
//
// # HURDAT2 Layout
//
// The file alternates header lines and fixed-size blocks of track-point lines.
// Fields are comma separated and padded with spaces; trailing commas are common.
//
// Header line:
//
//	AL092004,            CHARLEY,     28,
//	│ │ │               │            └ number of track-point lines that follow
//	│ │ │               └ storm name ("UNNAMED" before naming began)
//	│ │ └ year (characters 4 onward)
//	│ └ ATCF cyclone number for that year
//	└ basin ("AL" = Atlantic)
//
// Track-point line:
//
//	20040813, 1945, L, HU, 26.6N,  82.2W, 130,  941, ...
//	│         │     │  │   │       │      │     └ minimum pressure (mb), -999 = unknown
//	│         │     │  │   │       │      └ maximum sustained wind (kt), -99 = unknown
//	│         │     │  │   │       └ longitude with hemisphere suffix (E/W)
//	│         │     │  │   └ latitude with hemisphere suffix (N/S)
//	│         │     │  └ system status (TD, TS, HU, EX, ...)
//	│         │     └ record identifier; "L" marks landfall, usually blank
//	│         └ time HHMM UTC
//	└ date YYYYMMDD
//
// Remaining columns (wind radii, radius of maximum wind) are ignored.
//
// The N lines after a header belong to that storm positionally: they are
// consumed whatever their content. See [EventReader].
//
// # Report Semantics
//
// A storm qualifies for the report when its year is at least
// [FilterCriteria.MinYear] and at least one landfall point lies inside
// [FilterCriteria.Region]. For each qualifying storm the landfall point with
// the highest wind wins; ties go to the lowest pressure, then to the earliest
// point. See [SelectMaxWindLandfall].
package domain
