package model

// CardDetails is what a caller submits for the synchronous card path. It is
// handed to the payment gateway and never persisted.
type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"` // MM/YY
	CVV    string `json:"cvv"`
	Name   string `json:"name"`
}
