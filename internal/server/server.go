// Package server wires the HTTP API together.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gdys/internal/config"
	"gdys/internal/server/handlers"
	"gdys/internal/server/middleware"
	"gdys/internal/store"
)

// Server is the HTTP server for the fleet management API.
type Server struct {
	httpServer *http.Server
}

// New builds the server with the full route table. The metrics handler is
// optional; when nil the /metrics route is omitted.
func New(addr string, h *handlers.Handlers, cfg *config.Config, log *slog.Logger, metricsHandler http.Handler, logging func(http.Handler) http.Handler) *Server {
	authMW := middleware.Auth(cfg.JWTSecret)
	rateMW := middleware.RateLimit(cfg.RateLimit, cfg.RateBurst)
	fleetOnly := middleware.RequireRoles(string(store.RoleSystemAdmin), string(store.RoleDPAOffice))
	captainOnly := middleware.RequireRoles(string(store.RoleCaptain), string(store.RoleSystemAdmin))

	// Every authenticated route passes through auth then the per-user
	// rate limiter.
	authed := func(next http.HandlerFunc) http.Handler {
		return authMW(rateMW(next))
	}
	elevated := func(next http.HandlerFunc) http.Handler {
		return authMW(rateMW(fleetOnly(next)))
	}

	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	mux.Handle("GET /api/auth/me", authed(h.Me))

	// Fleet registry. Writes are reserved for office roles.
	mux.Handle("GET /api/vessels", authed(h.ListVessels))
	mux.Handle("POST /api/vessels", elevated(h.CreateVessel))
	mux.Handle("GET /api/vessels/{id}", authed(h.GetVessel))
	mux.Handle("PUT /api/vessels/{id}", elevated(h.UpdateVessel))
	mux.Handle("DELETE /api/vessels/{id}", elevated(h.DeleteVessel))

	// Document categories.
	mux.Handle("GET /api/categories", authed(h.ListCategories))
	mux.Handle("POST /api/categories", authed(h.CreateCategory))
	mux.Handle("PUT /api/categories/{id}", authed(h.UpdateCategory))
	mux.Handle("DELETE /api/categories/{id}", authed(h.DeleteCategory))

	// Documents.
	mux.Handle("GET /api/documents", authed(h.ListDocuments))
	mux.Handle("POST /api/documents", authed(h.CreateDocument))
	mux.Handle("POST /api/documents/upload", authed(h.UploadDocument))
	mux.Handle("GET /api/documents/{id}", authed(h.GetDocument))
	mux.Handle("PUT /api/documents/{id}", authed(h.UpdateDocument))
	mux.Handle("DELETE /api/documents/{id}", authed(h.DeleteDocument))
	mux.Handle("POST /api/documents/{id}/approve", elevated(h.ApproveDocument))
	mux.Handle("POST /api/documents/{id}/reject", elevated(h.RejectDocument))

	// Vessel certificates.
	mux.Handle("GET /api/certificates", authed(h.ListCertificates))
	mux.Handle("POST /api/certificates", authed(h.CreateCertificate))
	mux.Handle("GET /api/certificates/expiring", authed(h.ListExpiringCertificates))
	mux.Handle("GET /api/certificates/expired", authed(h.ListExpiredCertificates))
	mux.Handle("GET /api/certificates/{id}", authed(h.GetCertificate))
	mux.Handle("PUT /api/certificates/{id}", authed(h.UpdateCertificate))
	mux.Handle("DELETE /api/certificates/{id}", authed(h.DeleteCertificate))

	// Crew.
	mux.Handle("GET /api/crew/members", authed(h.ListCrewMembers))
	mux.Handle("POST /api/crew/members", authed(h.CreateCrewMember))
	mux.Handle("GET /api/crew/members/{id}", authed(h.GetCrewMember))
	mux.Handle("PUT /api/crew/members/{id}", authed(h.UpdateCrewMember))
	mux.Handle("DELETE /api/crew/members/{id}", authed(h.DeleteCrewMember))

	mux.Handle("GET /api/crew/certificates", authed(h.ListCrewCertificates))
	mux.Handle("POST /api/crew/certificates", authed(h.CreateCrewCertificate))
	mux.Handle("GET /api/crew/certificates/expiring", authed(h.ListExpiringCrewCertificates))
	mux.Handle("GET /api/crew/certificates/expired", authed(h.ListExpiredCrewCertificates))
	mux.Handle("GET /api/crew/certificates/{id}", authed(h.GetCrewCertificate))
	mux.Handle("PUT /api/crew/certificates/{id}", authed(h.UpdateCrewCertificate))
	mux.Handle("DELETE /api/crew/certificates/{id}", authed(h.DeleteCrewCertificate))

	mux.Handle("GET /api/crew/trainings", authed(h.ListTrainings))
	mux.Handle("POST /api/crew/trainings", authed(h.CreateTraining))
	mux.Handle("PUT /api/crew/trainings/{id}", authed(h.UpdateTraining))
	mux.Handle("DELETE /api/crew/trainings/{id}", authed(h.DeleteTraining))

	mux.Handle("GET /api/crew/rotations", authed(h.ListRotations))
	mux.Handle("POST /api/crew/rotations", authed(h.CreateRotation))
	mux.Handle("PUT /api/crew/rotations/{id}", authed(h.UpdateRotation))
	mux.Handle("DELETE /api/crew/rotations/{id}", authed(h.DeleteRotation))

	// Inventory.
	mux.Handle("GET /api/inventory/items", authed(h.ListInventoryItems))
	mux.Handle("POST /api/inventory/items", authed(h.CreateInventoryItem))
	mux.Handle("GET /api/inventory/items/low-stock", authed(h.ListLowStockItems))
	mux.Handle("GET /api/inventory/items/expiring", authed(h.ListExpiringItems))
	mux.Handle("GET /api/inventory/items/{id}", authed(h.GetInventoryItem))
	mux.Handle("PUT /api/inventory/items/{id}", authed(h.UpdateInventoryItem))
	mux.Handle("DELETE /api/inventory/items/{id}", authed(h.DeleteInventoryItem))
	mux.Handle("GET /api/inventory/transactions", authed(h.ListTransactions))
	mux.Handle("POST /api/inventory/transactions", authed(h.CreateTransaction))

	// Procurement.
	mux.Handle("GET /api/procurement/requests", authed(h.ListProcurementRequests))
	mux.Handle("POST /api/procurement/requests", authed(h.CreateProcurementRequest))
	mux.Handle("GET /api/procurement/requests/{id}", authed(h.GetProcurementRequest))
	mux.Handle("PUT /api/procurement/requests/{id}", authed(h.UpdateProcurementRequest))
	mux.Handle("DELETE /api/procurement/requests/{id}", authed(h.DeleteProcurementRequest))
	mux.Handle("POST /api/procurement/requests/{id}/approve", elevated(h.ApproveProcurementRequest))
	mux.Handle("POST /api/procurement/requests/{id}/reject", elevated(h.RejectProcurementRequest))

	mux.Handle("GET /api/procurement/orders", authed(h.ListPurchaseOrders))
	mux.Handle("POST /api/procurement/orders", elevated(h.CreatePurchaseOrder))
	mux.Handle("GET /api/procurement/orders/{id}", authed(h.GetPurchaseOrder))
	mux.Handle("PUT /api/procurement/orders/{id}", elevated(h.UpdatePurchaseOrder))
	mux.Handle("DELETE /api/procurement/orders/{id}", elevated(h.DeletePurchaseOrder))

	mux.Handle("GET /api/procurement/suppliers", authed(h.ListSuppliers))
	mux.Handle("POST /api/procurement/suppliers", elevated(h.CreateSupplier))
	mux.Handle("PUT /api/procurement/suppliers/{id}", elevated(h.UpdateSupplier))
	mux.Handle("DELETE /api/procurement/suppliers/{id}", elevated(h.DeleteSupplier))

	// Maintenance.
	mux.Handle("GET /api/maintenance/tasks", authed(h.ListMaintenanceTasks))
	mux.Handle("POST /api/maintenance/tasks", authed(h.CreateMaintenanceTask))
	mux.Handle("GET /api/maintenance/tasks/overdue", authed(h.ListOverdueTasks))
	mux.Handle("GET /api/maintenance/tasks/{id}", authed(h.GetMaintenanceTask))
	mux.Handle("PUT /api/maintenance/tasks/{id}", authed(h.UpdateMaintenanceTask))
	mux.Handle("DELETE /api/maintenance/tasks/{id}", authed(h.DeleteMaintenanceTask))
	mux.Handle("POST /api/maintenance/tasks/{id}/complete", authed(h.CompleteMaintenanceTask))
	mux.Handle("GET /api/maintenance/work-orders", authed(h.ListWorkOrders))
	mux.Handle("POST /api/maintenance/work-orders", authed(h.CreateWorkOrder))
	mux.Handle("GET /api/maintenance/work-orders/{id}", authed(h.GetWorkOrder))

	// Voyages and logs.
	mux.Handle("GET /api/voyages", authed(h.ListVoyages))
	mux.Handle("POST /api/voyages", authed(h.CreateVoyage))
	mux.Handle("GET /api/voyages/{id}", authed(h.GetVoyage))
	mux.Handle("PUT /api/voyages/{id}", authed(h.UpdateVoyage))
	mux.Handle("DELETE /api/voyages/{id}", authed(h.DeleteVoyage))

	mux.Handle("GET /api/logbook", authed(h.ListLogbookEntries))
	mux.Handle("POST /api/logbook", authed(h.CreateLogbookEntry))
	mux.Handle("GET /api/logbook/{id}", authed(h.GetLogbookEntry))
	mux.Handle("PUT /api/logbook/{id}", authed(h.UpdateLogbookEntry))
	mux.Handle("DELETE /api/logbook/{id}", authed(h.DeleteLogbookEntry))
	mux.Handle("POST /api/logbook/{id}/sign", authMW(rateMW(captainOnly(http.HandlerFunc(h.SignLogbookEntry)))))

	mux.Handle("GET /api/engine-log", authed(h.ListEngineLogEntries))
	mux.Handle("POST /api/engine-log", authed(h.CreateEngineLogEntry))
	mux.Handle("GET /api/engine-log/{id}", authed(h.GetEngineLogEntry))
	mux.Handle("PUT /api/engine-log/{id}", authed(h.UpdateEngineLogEntry))
	mux.Handle("DELETE /api/engine-log/{id}", authed(h.DeleteEngineLogEntry))

	mux.Handle("GET /api/fuel-management", authed(h.ListFuelRecords))
	mux.Handle("POST /api/fuel-management", authed(h.CreateFuelRecord))
	mux.Handle("GET /api/fuel-management/{id}", authed(h.GetFuelRecord))
	mux.Handle("PUT /api/fuel-management/{id}", authed(h.UpdateFuelRecord))
	mux.Handle("DELETE /api/fuel-management/{id}", authed(h.DeleteFuelRecord))

	// Safety.
	mux.Handle("GET /api/psc", authed(h.ListPSCInspections))
	mux.Handle("POST /api/psc", authed(h.CreatePSCInspection))
	mux.Handle("GET /api/psc/{id}", authed(h.GetPSCInspection))
	mux.Handle("PUT /api/psc/{id}", authed(h.UpdatePSCInspection))
	mux.Handle("DELETE /api/psc/{id}", authed(h.DeletePSCInspection))

	mux.Handle("GET /api/safety", authed(h.ListSafetyDrills))
	mux.Handle("POST /api/safety", authed(h.CreateSafetyDrill))
	mux.Handle("GET /api/safety/{id}", authed(h.GetSafetyDrill))
	mux.Handle("PUT /api/safety/{id}", authed(h.UpdateSafetyDrill))
	mux.Handle("DELETE /api/safety/{id}", authed(h.DeleteSafetyDrill))

	mux.Handle("GET /api/incidents", authed(h.ListIncidents))
	mux.Handle("POST /api/incidents", authed(h.CreateIncident))
	mux.Handle("GET /api/incidents/{id}", authed(h.GetIncident))
	mux.Handle("PUT /api/incidents/{id}", authed(h.UpdateIncident))
	mux.Handle("DELETE /api/incidents/{id}", authed(h.DeleteIncident))
	mux.Handle("POST /api/incidents/{id}/photos", authed(h.UploadIncidentPhoto))

	// Analytics.
	mux.Handle("GET /api/analytics/dashboard", authed(h.Dashboard))
	mux.Handle("GET /api/analytics/maintenance", authed(h.MaintenanceSummary))
	mux.Handle("GET /api/analytics/inventory", authed(h.InventorySummary))
	mux.Handle("GET /api/analytics/procurement", authed(h.ProcurementSummary))

	var root http.Handler = mux
	if logging != nil {
		root = logging(mux)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      root,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
	}
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutDownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return s.Shutdown(shutDownCtx)
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
