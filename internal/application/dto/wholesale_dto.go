package dto

// WholesaleApplyRequest is the body for POST /api/wholesale/apply
// (self-service, account owner).
type WholesaleApplyRequest struct {
	BusinessName string `json:"business_name" validate:"required,max=200"`
}

// WholesaleActionRequest is the body for the staff action endpoint
// POST /api/wholesale/accounts/:id/action.
type WholesaleActionRequest struct {
	Action string `json:"action"` // approve, reject, suspend, reactivate, cancel
	Notes  string `json:"notes,omitempty"`
}
