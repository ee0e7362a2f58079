package request

// RecordTransactionRequest represents a single-service sale request.
// Amounts are in rupees.
type RecordTransactionRequest struct {
	PaymentMethod string  `json:"payment_method" binding:"required"`
	ServiceID     string  `json:"service_id" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required"`
	Discount      float64 `json:"discount"`
	Notes         string  `json:"notes"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
}

// MultiServiceItemRequest is one line of a multi-service sale request
type MultiServiceItemRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// RecordMultiTransactionRequest represents a multi-service sale request
type RecordMultiTransactionRequest struct {
	PaymentMethod string                    `json:"payment_method" binding:"required"`
	Items         []MultiServiceItemRequest `json:"items" binding:"required,min=1"`
	Discount      float64                   `json:"discount"`
	Notes         string                    `json:"notes"`
	CustomerName  string                    `json:"customer_name"`
	CustomerPhone string                    `json:"customer_phone"`
}

// TransactionFilterRequest represents transaction list query parameters
type TransactionFilterRequest struct {
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	PaymentMethod string `form:"payment_method"`
	ServiceType   string `form:"service_type"`
	StartDate     string `form:"start_date"` // YYYY-MM-DD
	EndDate       string `form:"end_date"`   // YYYY-MM-DD
	Search        string `form:"search"`
}
