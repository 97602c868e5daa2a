package handlers

import (
	"net/http"
	"time"

	"gdys/internal/store"
	"gdys/pkg/api"
)

// ListMaintenanceTasks handles GET /api/maintenance/tasks.
func (h *Handlers) ListMaintenanceTasks(w http.ResponseWriter, r *http.Request) {
	vesselID, _ := scope(r)
	tasks, err := h.store.ListMaintenanceTasks(r.Context(), store.TaskFilter{
		VesselID: vesselID,
		Status:   r.URL.Query().Get("status"),
	})
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, tasks)
}

// ListOverdueTasks handles GET /api/maintenance/tasks/overdue.
func (h *Handlers) ListOverdueTasks(w http.ResponseWriter, r *http.Request) {
	vesselID, _ := scope(r)
	tasks, err := h.store.ListMaintenanceTasks(r.Context(), store.TaskFilter{
		VesselID:    vesselID,
		OverdueOnly: true,
	})
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, tasks)
}

// CreateMaintenanceTask handles POST /api/maintenance/tasks.
func (h *Handlers) CreateMaintenanceTask(w http.ResponseWriter, r *http.Request) {
	var req api.CreateMaintenanceTaskRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Equipment == "" || req.Title == "" {
		h.httpError(w, "Equipment and title are required", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		h.httpError(w, "Invalid dueDate", http.StatusBadRequest)
		return
	}

	t := &store.MaintenanceTask{
		VesselID:     req.VesselID,
		Equipment:    req.Equipment,
		Title:        req.Title,
		Description:  req.Description,
		AssignedTo:   req.AssignedTo,
		DueDate:      due,
		IntervalDays: req.IntervalDays,
	}
	if err := h.store.CreateMaintenanceTask(r.Context(), t); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, t)
}

// GetMaintenanceTask handles GET /api/maintenance/tasks/{id}.
func (h *Handlers) GetMaintenanceTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.GetMaintenanceTask(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, t.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, t)
}

// UpdateMaintenanceTask handles PUT /api/maintenance/tasks/{id}.
func (h *Handlers) UpdateMaintenanceTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateMaintenanceTaskRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.store.GetMaintenanceTask(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, t.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.Equipment != nil {
		t.Equipment = *req.Equipment
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.AssignedTo != nil {
		t.AssignedTo = *req.AssignedTo
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			h.httpError(w, "Invalid dueDate", http.StatusBadRequest)
			return
		}
		t.DueDate = due
	}
	if req.IntervalDays != nil {
		t.IntervalDays = *req.IntervalDays
	}
	if req.Status != nil {
		switch *req.Status {
		case store.TaskPending, store.TaskInProgress, store.TaskCompleted, store.TaskOverdue:
			t.Status = *req.Status
		default:
			h.httpError(w, "Invalid task status", http.StatusBadRequest)
			return
		}
	}

	if err := h.store.UpdateMaintenanceTask(ctx, t); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, t)
}

// DeleteMaintenanceTask handles DELETE /api/maintenance/tasks/{id}.
func (h *Handlers) DeleteMaintenanceTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	t, err := h.store.GetMaintenanceTask(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, t.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteMaintenanceTask(ctx, t.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteMaintenanceTask handles POST /api/maintenance/tasks/{id}/complete.
// Completion records a work order and, for recurring tasks, schedules the
// next occurrence intervalDays after the completed task's due date.
func (h *Handlers) CompleteMaintenanceTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CompleteTaskRequest
	// Body is optional.
	_ = decode(r, &req)

	t, err := h.store.GetMaintenanceTask(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, t.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if t.Status == store.TaskCompleted {
		h.storeError(w, store.ErrInvalidStatus)
		return
	}

	t.Status = store.TaskCompleted
	if err := h.store.UpdateMaintenanceTask(ctx, t); err != nil {
		h.storeError(w, err)
		return
	}

	order := &store.WorkOrder{
		TaskID:      t.ID,
		VesselID:    t.VesselID,
		CompletedBy: callerID(r),
		CompletedAt: time.Now().UTC(),
		LaborHours:  req.LaborHours,
		Notes:       req.Notes,
	}
	if err := h.store.CreateWorkOrder(ctx, order); err != nil {
		h.storeError(w, err)
		return
	}

	if t.IntervalDays > 0 {
		next := &store.MaintenanceTask{
			VesselID:     t.VesselID,
			Equipment:    t.Equipment,
			Title:        t.Title,
			Description:  t.Description,
			AssignedTo:   t.AssignedTo,
			DueDate:      t.DueDate.AddDate(0, 0, t.IntervalDays),
			IntervalDays: t.IntervalDays,
		}
		if err := h.store.CreateMaintenanceTask(ctx, next); err != nil {
			h.storeError(w, err)
			return
		}
	}

	h.respondData(w, http.StatusOK, order)
}

// CreateWorkOrder handles POST /api/maintenance/work-orders. It records work
// against a task without touching the task's status.
func (h *Handlers) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req api.CreateWorkOrderRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TaskID == "" {
		h.httpError(w, "taskId is required", http.StatusBadRequest)
		return
	}

	t, err := h.store.GetMaintenanceTask(r.Context(), req.TaskID)
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, t.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	completedAt, err := parseDatePtr(req.CompletedAt)
	if err != nil {
		h.httpError(w, "Invalid completedAt", http.StatusBadRequest)
		return
	}

	o := &store.WorkOrder{
		TaskID:      t.ID,
		VesselID:    t.VesselID,
		CompletedBy: callerID(r),
		CompletedAt: time.Now().UTC(),
		LaborHours:  req.LaborHours,
		Notes:       req.Notes,
	}
	if completedAt != nil {
		o.CompletedAt = *completedAt
	}
	if err := h.store.CreateWorkOrder(r.Context(), o); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, o)
}

// ListWorkOrders handles GET /api/maintenance/work-orders.
func (h *Handlers) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListWorkOrders(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, orders)
}

// GetWorkOrder handles GET /api/maintenance/work-orders/{id}.
func (h *Handlers) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.store.GetWorkOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, o.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, o)
}
