package handlers

import (
	"net/http"
	"strconv"

	"gdys/internal/store"
	"gdys/pkg/api"
)

// ListInventoryItems handles GET /api/inventory/items.
func (h *Handlers) ListInventoryItems(w http.ResponseWriter, r *http.Request) {
	vesselID, _ := scope(r)
	items, err := h.store.ListInventoryItems(r.Context(), store.InventoryFilter{VesselID: vesselID})
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, items)
}

// ListLowStockItems handles GET /api/inventory/items/low-stock.
func (h *Handlers) ListLowStockItems(w http.ResponseWriter, r *http.Request) {
	vesselID, _ := scope(r)
	items, err := h.store.ListInventoryItems(r.Context(), store.InventoryFilter{
		VesselID:     vesselID,
		LowStockOnly: true,
	})
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, items)
}

// ListExpiringItems handles GET /api/inventory/items/expiring. The window
// defaults to 30 days and can be widened with ?days=N.
func (h *Handlers) ListExpiringItems(w http.ResponseWriter, r *http.Request) {
	vesselID, _ := scope(r)
	days := 30
	if s := r.URL.Query().Get("days"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			days = n
		}
	}
	items, err := h.store.ListInventoryItems(r.Context(), store.InventoryFilter{
		VesselID:           vesselID,
		ExpiringWithinDays: days,
	})
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, items)
}

// CreateInventoryItem handles POST /api/inventory/items.
func (h *Handlers) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req api.CreateInventoryItemRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		h.httpError(w, "Name is required", http.StatusBadRequest)
		return
	}
	if req.Quantity < 0 || req.MinQuantity < 0 {
		h.httpError(w, "Quantities must not be negative", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	expiry, err := parseDatePtr(req.ExpiryDate)
	if err != nil {
		h.httpError(w, "Invalid expiryDate", http.StatusBadRequest)
		return
	}

	it := &store.InventoryItem{
		VesselID:    req.VesselID,
		Name:        req.Name,
		PartNumber:  req.PartNumber,
		Category:    req.Category,
		Location:    req.Location,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Unit:        req.Unit,
		ExpiryDate:  expiry,
	}
	if err := h.store.CreateInventoryItem(r.Context(), it); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, it)
}

// GetInventoryItem handles GET /api/inventory/items/{id}.
func (h *Handlers) GetInventoryItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.store.GetInventoryItem(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, it.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, it)
}

// UpdateInventoryItem handles PUT /api/inventory/items/{id}. Quantity is not
// updatable here; stock moves through transactions.
func (h *Handlers) UpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateInventoryItemRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	it, err := h.store.GetInventoryItem(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, it.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.PartNumber != nil {
		it.PartNumber = *req.PartNumber
	}
	if req.Category != nil {
		it.Category = *req.Category
	}
	if req.Location != nil {
		it.Location = *req.Location
	}
	if req.MinQuantity != nil {
		if *req.MinQuantity < 0 {
			h.httpError(w, "minQuantity must not be negative", http.StatusBadRequest)
			return
		}
		it.MinQuantity = *req.MinQuantity
	}
	if req.Unit != nil {
		it.Unit = *req.Unit
	}
	if req.ExpiryDate != nil {
		expiry, err := parseDatePtr(*req.ExpiryDate)
		if err != nil {
			h.httpError(w, "Invalid expiryDate", http.StatusBadRequest)
			return
		}
		it.ExpiryDate = expiry
	}

	if err := h.store.UpdateInventoryItem(ctx, it); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, it)
}

// DeleteInventoryItem handles DELETE /api/inventory/items/{id}.
func (h *Handlers) DeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	it, err := h.store.GetInventoryItem(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, it.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteInventoryItem(ctx, it.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTransactions handles GET /api/inventory/transactions.
func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	vesselID, _ := scope(r)
	txs, err := h.store.ListTransactions(r.Context(), store.TransactionFilter{
		ItemID:   r.URL.Query().Get("itemId"),
		VesselID: vesselID,
	})
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, txs)
}

// CreateTransaction handles POST /api/inventory/transactions. The stock
// mutation and the movement record commit together or not at all.
func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateTransactionRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ItemID == "" {
		h.httpError(w, "itemId is required", http.StatusBadRequest)
		return
	}
	switch req.TransactionType {
	case store.TransactionIn, store.TransactionOut, store.TransactionAdjustment:
	default:
		h.httpError(w, "transactionType must be IN, OUT or ADJUSTMENT", http.StatusBadRequest)
		return
	}
	if req.Quantity < 0 {
		h.httpError(w, "Quantity must not be negative", http.StatusBadRequest)
		return
	}

	it, err := h.store.GetInventoryItem(ctx, req.ItemID)
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, it.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}

	tx := &store.InventoryTransaction{
		ItemID:          req.ItemID,
		TransactionType: req.TransactionType,
		Quantity:        req.Quantity,
		Reference:       req.Reference,
		PerformedBy:     callerID(r),
	}
	if err := h.store.CreateTransaction(ctx, tx); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, tx)
}
