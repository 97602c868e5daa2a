package api

// CreateInventoryItemRequest is the request body for POST /api/inventory/items.
type CreateInventoryItemRequest struct {
	VesselID    string `json:"vesselId,omitempty"`
	Name        string `json:"name"`
	PartNumber  string `json:"partNumber,omitempty"`
	Category    string `json:"category,omitempty"`
	Location    string `json:"location,omitempty"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"minQuantity,omitempty"`
	Unit        string `json:"unit,omitempty"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
}

// UpdateInventoryItemRequest is the request body for PUT /api/inventory/items/{id}.
/// Quantity is deliberately absent: stock changes go through transactions.
type UpdateInventoryItemRequest struct {
	Name        *string `json:"name,omitempty"`
	PartNumber  *string `json:"partNumber,omitempty"`
	Category    *string `json:"category,omitempty"`
	Location    *string `json:"location,omitempty"`
	MinQuantity *int    `json:"minQuantity,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	ExpiryDate  *string `json:"expiryDate,omitempty"`
}

// CreateTransactionRequest is the request body for POST /api/inventory/transactions.
// TransactionType is one of IN, OUT, ADJUSTMENT.
type CreateTransactionRequest struct {
	ItemID          string `json:"itemId"`
	TransactionType string `json:"transactionType"`
	Quantity        int    `json:"quantity"`
	Reference       string `json:"reference,omitempty"`
}
