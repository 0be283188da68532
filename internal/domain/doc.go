// Package domain models the weather observations flowing through the ETL
// pipeline and the pure transformations applied to them.
//
// # Data Source
//
// Observations originate from a Google Sheets spreadsheet maintained by the
// field teams, one row per reading. The sheet is operated in Spanish and its
// header names are part of the file contract shared with downstream
// consumers, so they are carried through every artifact verbatim:
//
//	fecha                 observation timestamp, "YYYY-MM-DD HH:MM:SS"
//	ciudad                city name
//	temperatura_celsius   air temperature in °C
//	humedad               relative humidity, integer percent
//	presion_atmosferica   pressure in hPa
//	velocidad_viento      wind speed in m/s
//	direccion_viento      compass direction (N, NE, E, SE, S, SW, W, NW)
//	precipitacion         precipitation in mm
//	visibilidad           visibility in km
//
// The transformer appends four derived columns, likewise fixed by the
// contract: temperatura_fahrenheit, processed_at, indice_calor and
// categoria_temperatura.
//
// # Synthetic Fallback Data
//
// When the spreadsheet cannot be reached the extractor substitutes synthetic
// readings: 10 time ticks spaced 5 minutes apart going backward from now, for
// each of three fixed cities, 30 records in total. Each city has a typical
// temperature band (Bogotá 15-25 °C, Medellín 20-30 °C, Cali 25-35 °C);
// humidity, pressure, wind, precipitation and visibility are drawn uniformly
// from plausible ranges. See [GenerateSynthetic].
//
// # Derivations
//
// Fahrenheit is the exact conversion C*9/5 + 32. The heat index is the
// simplified C + humidity*0.1 used for operational dashboards, not the NWS
// regression. Temperature categories use fixed thresholds with
// closed-lower/open-upper bounds:
//
//	< 18 °C         "cold"
//	[18, 25) °C     "mild"
//	[25, 30) °C     "hot"
//	>= 30 °C        "very hot"
//
// # Quality Scoring
//
// The validator assesses the latest persisted snapshot and computes a 0-100
// score from flat per-category deductions: 20 points if any cell is null, 15
// if any row is an exact duplicate of an earlier one, 25 if any temperature
// falls outside [-50, 60] °C, 20 if any humidity falls outside [0, 100] %.
// A single violation in a category costs the same as a thousand. Scores of
// 80 and above are classified excellent, 60 and above good, anything lower
// needs attention. See [QualityChecks].
package domain
