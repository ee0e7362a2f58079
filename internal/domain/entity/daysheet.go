package entity

// DaySheetHeader holds the shop header printed at the top of a day sheet.
type DaySheetHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// DaySheetRow is one transaction line on a printed day sheet.
type DaySheetRow struct {
	Time          string  `json:"time"`
	Service       string  `json:"service"`
	Quantity      int     `json:"quantity"`
	PaymentMethod string  `json:"payment_method"`
	Cost          float64 `json:"cost"`
	Discount      float64 `json:"discount"`
	FinalCost     float64 `json:"final_cost"`
}

// DaySheet is a value object representing the printable end-of-day summary.
// It is NOT a database entity — it is composed from the day's transactions at
// print time, and rendering it is a pure transformation.
type DaySheet struct {
	Header       DaySheetHeader `json:"header"`
	Date         string         `json:"date"`
	Operator     string         `json:"operator,omitempty"`
	Rows         []DaySheetRow  `json:"rows"`
	CashTotal    float64        `json:"cash_total"`
	PhonePeTotal float64        `json:"phonepe_total"`
	TotalRevenue float64        `json:"total_revenue"`
	TotalPages   int            `json:"total_pages"`
	Count        int            `json:"count"`
}
