package request

type CreateBookingRequest struct {
	Workspace     string  `json:"workspace" validate:"required,min=1"`
	ServiceID     string  `json:"service_id" validate:"required,uuid4"`
	ProviderID    string  `json:"provider_id" validate:"required,uuid4"`
	CustomerName  string  `json:"customer_name" validate:"required,min=1,max=80"`
	CustomerPhone string  `json:"customer_phone" validate:"required,min=6,max=20"`
	StartAt       string  `json:"start_at" validate:"required,min=10"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=280"`
}
