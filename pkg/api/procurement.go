package api

// RequestItem is a single line item on a procurement request.
type RequestItem struct {
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	EstimatedCost float64 `json:"estimatedCost,omitempty"`
}

// CreateProcurementRequestRequest is the request body for
// POST /api/procurement/requests.
type CreateProcurementRequestRequest struct {
	VesselID string        `json:"vesselId,omitempty"`
	Title    string        `json:"title"`
	Priority string        `json:"priority,omitempty"`
	Items    []RequestItem `json:"items,omitempty"`
}

// UpdateProcurementRequestRequest is the request body for
// PUT /api/procurement/requests/{id}.
type UpdateProcurementRequestRequest struct {
	Title    *string       `json:"title,omitempty"`
	Priority *string       `json:"priority,omitempty"`
	Items    []RequestItem `json:"items,omitempty"`
}

// CreatePurchaseOrderRequest is the request body for POST /api/procurement/orders.
type CreatePurchaseOrderRequest struct {
	RequestID        string  `json:"requestId"`
	SupplierID       string  `json:"supplierId"`
	OrderDate        string  `json:"orderDate,omitempty"`
	ExpectedDelivery string  `json:"expectedDelivery,omitempty"`
	TotalCost        float64 `json:"totalCost,omitempty"`
}

// UpdatePurchaseOrderRequest is the request body for PUT /api/procurement/orders/{id}.
type UpdatePurchaseOrderRequest struct {
	SupplierID       *string  `json:"supplierId,omitempty"`
	ExpectedDelivery *string  `json:"expectedDelivery,omitempty"`
	TotalCost        *float64 `json:"totalCost,omitempty"`
	Status           *string  `json:"status,omitempty"`
}

// CreateSupplierRequest is the request body for POST /api/procurement/suppliers.
type CreateSupplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Country       string `json:"country,omitempty"`
}

// UpdateSupplierRequest is the request body for PUT /api/procurement/suppliers/{id}.
type UpdateSupplierRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Country       *string `json:"country,omitempty"`
}
