package api

// DashboardAnalytics is the response body for GET /api/analytics/dashboard.
type DashboardAnalytics struct {
	Vessels              int `json:"vessels"`
	CrewMembers          int `json:"crewMembers"`
	ExpiringCertificates int `json:"expiringCertificates"`
	OverdueTasks         int `json:"overdueTasks"`
	LowStockItems        int `json:"lowStockItems"`
	OpenIncidents        int `json:"openIncidents"`
	ActiveVoyages        int `json:"activeVoyages"`
}

// MaintenanceAnalytics is the response body for GET /api/analytics/maintenance.
type MaintenanceAnalytics struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
	WorkOrders int `json:"workOrders"`
}

// InventoryAnalytics is the response body for GET /api/analytics/inventory.
type InventoryAnalytics struct {
	Items         int `json:"items"`
	LowStock      int `json:"lowStock"`
	ExpiringSoon  int `json:"expiringSoon"`
	Transactions  int `json:"transactions"`
	TotalQuantity int `json:"totalQuantity"`
}

// ProcurementAnalytics is the response body for GET /api/analytics/procurement.
type ProcurementAnalytics struct {
	PendingRequests  int     `json:"pendingRequests"`
	ApprovedRequests int     `json:"approvedRequests"`
	RejectedRequests int     `json:"rejectedRequests"`
	OpenOrders       int     `json:"openOrders"`
	Suppliers        int     `json:"suppliers"`
	TotalOrderCost   float64 `json:"totalOrderCost"`
}
