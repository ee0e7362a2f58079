package request

// ServiceRequest represents a create or update of a catalog entry.
// Price is in rupees.
type ServiceRequest struct {
	ServiceType      string  `json:"service_type" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Price            float64 `json:"price"`
	PaperSize        string  `json:"paper_size"`
	ColorType        string  `json:"color_type"`
	PaperOrientation string  `json:"paper_orientation"`
}
