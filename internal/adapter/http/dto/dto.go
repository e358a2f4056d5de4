package dto

// AdminLoginRequest is the request body for operator login.
type AdminLoginRequest struct {
	APIKey string `json:"api_key" binding:"required,max=512"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// ReturnQuery is the query string the provider appends to the checkout return URL.
type ReturnQuery struct {
	OrderID        int64  `form:"order_id" binding:"required,gt=0"`
	PaymentID      string `form:"payment_id" binding:"omitempty,remote_id"`
	SubscriptionID string `form:"subscription_id" binding:"omitempty,remote_id"`
}

// ReturnCaptureResponse summarizes which mappings the return visit wrote.
type ReturnCaptureResponse struct {
	OrderID            int64  `json:"order_id"`
	PaymentMapped      bool   `json:"payment_mapped"`
	SubscriptionMapped bool   `json:"subscription_mapped"`
	Skipped            string `json:"skipped,omitempty"`
}

// IDParam binds the numeric :id path segment.
type IDParam struct {
	ID int64 `uri:"id" binding:"required,gt=0"`
}

// CheckoutResponse is returned when a checkout was started for an order.
type CheckoutResponse struct {
	OrderID        int64  `json:"order_id"`
	RedirectURL    string `json:"redirect_url"`
	PaymentID      string `json:"payment_id,omitempty"`
	SubscriptionID string `json:"subscription_id,omitempty"`
	SessionID      string `json:"session_id,omitempty"`
}

// SubscriptionStatusChangedRequest reports a local subscription status change.
type SubscriptionStatusChangedRequest struct {
	NewStatus string `json:"new_status" binding:"required,order_status"`
	OldStatus string `json:"old_status" binding:"required,order_status"`
}

// SubscriptionSyncResponse names the provider call that was made.
type SubscriptionSyncResponse struct {
	SubscriptionID int64  `json:"subscription_id"`
	Action         string `json:"action"`
}

// ClearMappingsResponse reports how many mappings were removed.
type ClearMappingsResponse struct {
	Kind    string `json:"kind"`
	Deleted int64  `json:"deleted"`
}
