package models

// ContractDraftRequest carries the facts the drafting service folds into
// the generation prompt.
type ContractDraftRequest struct {
	BookingID       string `json:"booking_id" binding:"required"`
	ExtraTerms      string `json:"extra_terms,omitempty"`
	CancellationFee string `json:"cancellation_fee,omitempty"`
}
