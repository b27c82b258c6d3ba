package handlers

import "time"

// currentYearMonth supplies the propagation engine's ionospheric-season
// input when a request omits YEAR/MONTH.
func currentYearMonth() (int, int) {
	now := time.Now().UTC()
	return now.Year(), int(now.Month())
}
