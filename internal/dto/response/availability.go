package response

// AvailabilityResponse lists the bookable start instants for one civil
// date, RFC 3339, sorted ascending. An empty list means fully booked.
type AvailabilityResponse struct {
	Date         string   `json:"date"`
	Availability []string `json:"availability"`
}
