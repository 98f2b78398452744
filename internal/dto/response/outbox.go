package response

// OutboxBatchResponse summarizes one drain pass.
type OutboxBatchResponse struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Retried   int `json:"retried"`
	Dead      int `json:"dead"`
}
