package handlers

import (
	"net/http"

	"gdys/internal/store"
	"gdys/pkg/api"
)

func toStoreItems(items []api.RequestItem) []store.RequestItem {
	if items == nil {
		return nil
	}
	out := make([]store.RequestItem, len(items))
	for i, it := range items {
		out[i] = store.RequestItem{
			Description:   it.Description,
			Quantity:      it.Quantity,
			EstimatedCost: it.EstimatedCost,
		}
	}
	return out
}

// ListProcurementRequests handles GET /api/procurement/requests.
func (h *Handlers) ListProcurementRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.store.ListProcurementRequests(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, reqs)
}

// CreateProcurementRequest handles POST /api/procurement/requests.
func (h *Handlers) CreateProcurementRequest(w http.ResponseWriter, r *http.Request) {
	var req api.CreateProcurementRequestRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		h.httpError(w, "Title is required", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}

	pr := &store.ProcurementRequest{
		VesselID:    req.VesselID,
		Title:       req.Title,
		RequestedBy: callerID(r),
		Priority:    req.Priority,
		Items:       toStoreItems(req.Items),
	}
	if err := h.store.CreateProcurementRequest(r.Context(), pr); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, pr)
}

// GetProcurementRequest handles GET /api/procurement/requests/{id}.
func (h *Handlers) GetProcurementRequest(w http.ResponseWriter, r *http.Request) {
	pr, err := h.store.GetProcurementRequest(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, pr.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, pr)
}

// UpdateProcurementRequest handles PUT /api/procurement/requests/{id}.
func (h *Handlers) UpdateProcurementRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateProcurementRequestRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pr, err := h.store.GetProcurementRequest(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, pr.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.Title != nil {
		pr.Title = *req.Title
	}
	if req.Priority != nil {
		pr.Priority = *req.Priority
	}
	if req.Items != nil {
		pr.Items = toStoreItems(req.Items)
	}

	if err := h.store.UpdateProcurementRequest(ctx, pr); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, pr)
}

// DeleteProcurementRequest handles DELETE /api/procurement/requests/{id}.
func (h *Handlers) DeleteProcurementRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pr, err := h.store.GetProcurementRequest(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, pr.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteProcurementRequest(ctx, pr.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reviewRequest applies an approve/reject transition. Only pending requests
// may transition.
func (h *Handlers) reviewRequest(w http.ResponseWriter, r *http.Request, to string) {
	ctx := r.Context()

	pr, err := h.store.GetProcurementRequest(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, pr.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if pr.Status != store.RequestPending {
		h.storeError(w, store.ErrInvalidStatus)
		return
	}

	pr.Status = to
	if err := h.store.UpdateProcurementRequest(ctx, pr); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, pr)
}

// ApproveProcurementRequest handles POST /api/procurement/requests/{id}/approve.
func (h *Handlers) ApproveProcurementRequest(w http.ResponseWriter, r *http.Request) {
	h.reviewRequest(w, r, store.RequestApproved)
}

// RejectProcurementRequest handles POST /api/procurement/requests/{id}/reject.
func (h *Handlers) RejectProcurementRequest(w http.ResponseWriter, r *http.Request) {
	h.reviewRequest(w, r, store.RequestRejected)
}

// ListPurchaseOrders handles GET /api/procurement/orders.
func (h *Handlers) ListPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListPurchaseOrders(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, orders)
}

// CreatePurchaseOrder handles POST /api/procurement/orders. Ordering moves the
// underlying request to ORDERED in the same transaction.
func (h *Handlers) CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreatePurchaseOrderRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.RequestID == "" || req.SupplierID == "" {
		h.httpError(w, "requestId and supplierId are required", http.StatusBadRequest)
		return
	}
	orderDate, err := parseDatePtr(req.OrderDate)
	if err != nil {
		h.httpError(w, "Invalid orderDate", http.StatusBadRequest)
		return
	}
	expected, err := parseDatePtr(req.ExpectedDelivery)
	if err != nil {
		h.httpError(w, "Invalid expectedDelivery", http.StatusBadRequest)
		return
	}

	pr, err := h.store.GetProcurementRequest(ctx, req.RequestID)
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, pr.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if pr.Status != store.RequestApproved {
		h.storeError(w, store.ErrInvalidStatus)
		return
	}

	o := &store.PurchaseOrder{
		RequestID:        req.RequestID,
		SupplierID:       req.SupplierID,
		ExpectedDelivery: expected,
		TotalCost:        req.TotalCost,
	}
	if orderDate != nil {
		o.OrderDate = *orderDate
	}
	if err := h.store.CreatePurchaseOrder(ctx, o); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, o)
}

// GetPurchaseOrder handles GET /api/procurement/orders/{id}.
func (h *Handlers) GetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.store.GetPurchaseOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, o)
}

// UpdatePurchaseOrder handles PUT /api/procurement/orders/{id}.
func (h *Handlers) UpdatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdatePurchaseOrderRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.store.GetPurchaseOrder(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if req.SupplierID != nil {
		o.SupplierID = *req.SupplierID
	}
	if req.ExpectedDelivery != nil {
		expected, err := parseDatePtr(*req.ExpectedDelivery)
		if err != nil {
			h.httpError(w, "Invalid expectedDelivery", http.StatusBadRequest)
			return
		}
		o.ExpectedDelivery = expected
	}
	if req.TotalCost != nil {
		o.TotalCost = *req.TotalCost
	}
	if req.Status != nil {
		switch *req.Status {
		case store.OrderOpen, store.OrderDelivered, store.OrderCancelled:
			o.Status = *req.Status
		default:
			h.httpError(w, "Invalid order status", http.StatusBadRequest)
			return
		}
	}

	if err := h.store.UpdatePurchaseOrder(ctx, o); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, o)
}

// DeletePurchaseOrder handles DELETE /api/procurement/orders/{id}.
func (h *Handlers) DeletePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePurchaseOrder(r.Context(), r.PathValue("id")); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSuppliers handles GET /api/procurement/suppliers.
func (h *Handlers) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.store.ListSuppliers(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, suppliers)
}

// CreateSupplier handles POST /api/procurement/suppliers.
func (h *Handlers) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req api.CreateSupplierRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		h.httpError(w, "Name is required", http.StatusBadRequest)
		return
	}

	s := &store.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Country:       req.Country,
	}
	if err := h.store.CreateSupplier(r.Context(), s); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, s)
}

// UpdateSupplier handles PUT /api/procurement/suppliers/{id}.
func (h *Handlers) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateSupplierRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.store.GetSupplier(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.ContactPerson != nil {
		s.ContactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		s.Email = *req.Email
	}
	if req.Phone != nil {
		s.Phone = *req.Phone
	}
	if req.Country != nil {
		s.Country = *req.Country
	}

	if err := h.store.UpdateSupplier(ctx, s); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, s)
}

// DeleteSupplier handles DELETE /api/procurement/suppliers/{id}.
func (h *Handlers) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSupplier(r.Context(), r.PathValue("id")); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
