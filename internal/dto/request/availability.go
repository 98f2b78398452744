package request

// AvailabilityRequest carries the query parameters of the public
// availability endpoint. Date is a civil date in the workspace zone.
type AvailabilityRequest struct {
	ProviderID string `json:"provider_id" validate:"required,uuid4"`
	ServiceID  string `json:"service_id" validate:"required,uuid4"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}
