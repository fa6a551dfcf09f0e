package domain

// NotAvailable is shown in place of a landfall date when a storm has none.
const NotAvailable = "N/A"

// FormatLandfallDate renders "20040813" as "Month: 08 Day: 13 Year: 2004".
// Dates that are not 8 digits are returned unchanged.
func FormatLandfallDate(date string) string {
	if !isDigits(date, 8) {
		return date
	}
	return "Month: " + date[4:6] + " Day: " + date[6:8] + " Year: " + date[0:4]
}

// BuildReportRow maps a storm to its report row using its max-wind landfall.
func BuildReportRow(event StormEvent) ReportRow {
	row := ReportRow{
		StormID:      event.ID,
		Name:         event.Name,
		LandfallDate: NotAvailable,
	}
	p, ok := SelectMaxWindLandfall(event.TrackPoints)
	if !ok {
		return row
	}
	row.LandfallDate = FormatLandfallDate(p.Date)
	row.MaxWindSpeedKnots = p.WindSpeedKnots
	row.Latitude = p.Latitude
	row.Longitude = p.Longitude
	return row
}

// BuildReportRows maps each storm to a row, preserving order.
func BuildReportRows(events []StormEvent) []ReportRow {
	rows := make([]ReportRow, 0, len(events))
	for _, event := range events {
		rows = append(rows, BuildReportRow(event))
	}
	return rows
}

// NewReport assembles a report stamped with the package clock.
func NewReport(id string, c FilterCriteria, rows []ReportRow) Report {
	return Report{
		ID:          id,
		GeneratedAt: clock.Now().UTC(),
		Criteria:    c,
		Rows:        rows,
	}
}
