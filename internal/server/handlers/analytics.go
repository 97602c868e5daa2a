package handlers

import (
	"net/http"

	"gdys/internal/store"
	"gdys/pkg/api"
)

// Dashboard handles GET /api/analytics/dashboard. The counts respect the
// caller's vessel scope.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vesselID, _ := scope(r)

	var out api.DashboardAnalytics

	vessels, err := h.store.ListVessels(ctx)
	if err != nil {
		h.storeError(w, err)
		return
	}
	if vesselID == "" {
		out.Vessels = len(vessels)
	} else {
		for _, v := range vessels {
			if v.ID == vesselID {
				out.Vessels++
			}
		}
	}

	crew, err := h.store.ListCrewMembers(ctx, store.ListFilter{VesselID: vesselID})
	if err != nil {
		h.storeError(w, err)
		return
	}
	out.CrewMembers = len(crew)

	certs, err := h.store.ListCertificates(ctx, store.CertFilter{VesselID: vesselID, WithinDays: 30})
	if err != nil {
		h.storeError(w, err)
		return
	}
	out.ExpiringCertificates = len(certs)

	overdue, err := h.store.ListMaintenanceTasks(ctx, store.TaskFilter{VesselID: vesselID, OverdueOnly: true})
	if err != nil {
		h.storeError(w, err)
		return
	}
	out.OverdueTasks = len(overdue)

	lowStock, err := h.store.ListInventoryItems(ctx, store.InventoryFilter{VesselID: vesselID, LowStockOnly: true})
	if err != nil {
		h.storeError(w, err)
		return
	}
	out.LowStockItems = len(lowStock)

	incidents, err := h.store.ListIncidents(ctx, store.ListFilter{VesselID: vesselID})
	if err != nil {
		h.storeError(w, err)
		return
	}
	for _, in := range incidents {
		if in.Status != store.IncidentClosed {
			out.OpenIncidents++
		}
	}

	voyages, err := h.store.ListVoyages(ctx, store.ListFilter{VesselID: vesselID, Status: store.VoyageUnderway})
	if err != nil {
		h.storeError(w, err)
		return
	}
	out.ActiveVoyages = len(voyages)

	h.respondData(w, http.StatusOK, out)
}

// MaintenanceSummary handles GET /api/analytics/maintenance.
func (h *Handlers) MaintenanceSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vesselID, _ := scope(r)

	tasks, err := h.store.ListMaintenanceTasks(ctx, store.TaskFilter{VesselID: vesselID})
	if err != nil {
		h.storeError(w, err)
		return
	}

	var out api.MaintenanceAnalytics
	for _, t := range tasks {
		switch t.Status {
		case store.TaskPending:
			out.Pending++
		case store.TaskInProgress:
			out.InProgress++
		case store.TaskCompleted:
			out.Completed++
		case store.TaskOverdue:
			out.Overdue++
		}
	}

	orders, err := h.store.ListWorkOrders(ctx, store.ListFilter{VesselID: vesselID})
	if err != nil {
		h.storeError(w, err)
		return
	}
	out.WorkOrders = len(orders)

	h.respondData(w, http.StatusOK, out)
}

// InventorySummary handles GET /api/analytics/inventory.
func (h *Handlers) InventorySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vesselID, _ := scope(r)

	items, err := h.store.ListInventoryItems(ctx, store.InventoryFilter{VesselID: vesselID})
	if err != nil {
		h.storeError(w, err)
		return
	}

	var out api.InventoryAnalytics
	out.Items = len(items)
	for _, it := range items {
		out.TotalQuantity += it.Quantity
		if it.Quantity <= it.MinQuantity {
			out.LowStock++
		}
	}

	expiring, err := h.store.ListInventoryItems(ctx, store.InventoryFilter{VesselID: vesselID, ExpiringWithinDays: 30})
	if err != nil {
		h.storeError(w, err)
		return
	}
	out.ExpiringSoon = len(expiring)

	txs, err := h.store.ListTransactions(ctx, store.TransactionFilter{VesselID: vesselID})
	if err != nil {
		h.storeError(w, err)
		return
	}
	out.Transactions = len(txs)

	h.respondData(w, http.StatusOK, out)
}

// ProcurementSummary handles GET /api/analytics/procurement.
func (h *Handlers) ProcurementSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vesselID, _ := scope(r)

	requests, err := h.store.ListProcurementRequests(ctx, store.ListFilter{VesselID: vesselID})
	if err != nil {
		h.storeError(w, err)
		return
	}

	var out api.ProcurementAnalytics
	for _, req := range requests {
		switch req.Status {
		case store.RequestPending:
			out.PendingRequests++
		case store.RequestApproved:
			out.ApprovedRequests++
		case store.RequestRejected:
			out.RejectedRequests++
		}
	}

	orders, err := h.store.ListPurchaseOrders(ctx, store.ListFilter{VesselID: vesselID})
	if err != nil {
		h.storeError(w, err)
		return
	}
	for _, o := range orders {
		out.TotalOrderCost += o.TotalCost
		if o.Status == store.OrderOpen {
			out.OpenOrders++
		}
	}

	suppliers, err := h.store.ListSuppliers(ctx)
	if err != nil {
		h.storeError(w, err)
		return
	}
	out.Suppliers = len(suppliers)

	h.respondData(w, http.StatusOK, out)
}
