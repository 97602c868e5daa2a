package api

// CreateMaintenanceTaskRequest is the request body for POST /api/maintenance/tasks.
type CreateMaintenanceTaskRequest struct {
	VesselID     string `json:"vesselId,omitempty"`
	Equipment    string `json:"equipment"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	AssignedTo   string `json:"assignedTo,omitempty"`
	DueDate      string `json:"dueDate"`
	IntervalDays int    `json:"intervalDays,omitempty"`
}

// UpdateMaintenanceTaskRequest is the request body for PUT /api/maintenance/tasks/{id}.
type UpdateMaintenanceTaskRequest struct {
	Equipment    *string `json:"equipment,omitempty"`
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	AssignedTo   *string `json:"assignedTo,omitempty"`
	DueDate      *string `json:"dueDate,omitempty"`
	IntervalDays *int    `json:"intervalDays,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// CompleteTaskRequest is the request body for POST /api/maintenance/tasks/{id}/complete.
type CompleteTaskRequest struct {
	LaborHours float64 `json:"laborHours,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// CreateWorkOrderRequest is the request body for POST /api/maintenance/work-orders.
// Records work done against a task without marking the task completed; the
// complete endpoint is the usual path.
type CreateWorkOrderRequest struct {
	TaskID      string  `json:"taskId"`
	CompletedAt string  `json:"completedAt,omitempty"`
	LaborHours  float64 `json:"laborHours,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}
