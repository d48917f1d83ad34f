// Package records builds Tables from JSON Lines data. This parser uses https://github.com/tidwall/gjson to process data, and supports column paths formatted as gjson paths.
package records
