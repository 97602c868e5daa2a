package handlers

import (
	"net/http"
	"time"

	"gdys/internal/store"
	"gdys/pkg/api"
)

// ListVoyages handles GET /api/voyages.
func (h *Handlers) ListVoyages(w http.ResponseWriter, r *http.Request) {
	voyages, err := h.store.ListVoyages(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, voyages)
}

// CreateVoyage handles POST /api/voyages.
func (h *Handlers) CreateVoyage(w http.ResponseWriter, r *http.Request) {
	var req api.CreateVoyageRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.VoyageNumber == "" || req.DeparturePort == "" || req.ArrivalPort == "" {
		h.httpError(w, "voyageNumber, departurePort and arrivalPort are required", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.VesselID == "" {
		h.httpError(w, "vesselId is required", http.StatusBadRequest)
		return
	}
	departure, err := parseDatePtr(req.DepartureTime)
	if err != nil {
		h.httpError(w, "Invalid departureTime", http.StatusBadRequest)
		return
	}
	arrival, err := parseDatePtr(req.ArrivalTime)
	if err != nil {
		h.httpError(w, "Invalid arrivalTime", http.StatusBadRequest)
		return
	}

	v := &store.Voyage{
		VesselID:         req.VesselID,
		VoyageNumber:     req.VoyageNumber,
		DeparturePort:    req.DeparturePort,
		ArrivalPort:      req.ArrivalPort,
		DepartureTime:    departure,
		ArrivalTime:      arrival,
		CargoDescription: req.CargoDescription,
	}
	if err := h.store.CreateVoyage(r.Context(), v); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, v)
}

// GetVoyage handles GET /api/voyages/{id}.
func (h *Handlers) GetVoyage(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.GetVoyage(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, v.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, v)
}

// UpdateVoyage handles PUT /api/voyages/{id}.
func (h *Handlers) UpdateVoyage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateVoyageRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	v, err := h.store.GetVoyage(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, v.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.VoyageNumber != nil {
		v.VoyageNumber = *req.VoyageNumber
	}
	if req.DeparturePort != nil {
		v.DeparturePort = *req.DeparturePort
	}
	if req.ArrivalPort != nil {
		v.ArrivalPort = *req.ArrivalPort
	}
	if req.DepartureTime != nil {
		departure, err := parseDatePtr(*req.DepartureTime)
		if err != nil {
			h.httpError(w, "Invalid departureTime", http.StatusBadRequest)
			return
		}
		v.DepartureTime = departure
	}
	if req.ArrivalTime != nil {
		arrival, err := parseDatePtr(*req.ArrivalTime)
		if err != nil {
			h.httpError(w, "Invalid arrivalTime", http.StatusBadRequest)
			return
		}
		v.ArrivalTime = arrival
	}
	if req.CargoDescription != nil {
		v.CargoDescription = *req.CargoDescription
	}
	if req.Status != nil {
		switch *req.Status {
		case store.VoyagePlanned, store.VoyageUnderway, store.VoyageCompleted:
			v.Status = *req.Status
		default:
			h.httpError(w, "Invalid voyage status", http.StatusBadRequest)
			return
		}
	}

	if err := h.store.UpdateVoyage(ctx, v); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, v)
}

// DeleteVoyage handles DELETE /api/voyages/{id}.
func (h *Handlers) DeleteVoyage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	v, err := h.store.GetVoyage(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, v.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteVoyage(ctx, v.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLogbookEntries handles GET /api/logbook.
func (h *Handlers) ListLogbookEntries(w http.ResponseWriter, r *http.Request) {
	vesselID, _ := scope(r)
	entries, err := h.store.ListLogbookEntries(r.Context(), store.LogFilter{
		VesselID: vesselID,
		VoyageID: r.URL.Query().Get("voyageId"),
	})
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, entries)
}

// CreateLogbookEntry handles POST /api/logbook.
func (h *Handlers) CreateLogbookEntry(w http.ResponseWriter, r *http.Request) {
	var req api.CreateLogbookEntryRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.VesselID == "" {
		h.httpError(w, "vesselId is required", http.StatusBadRequest)
		return
	}
	entryTime, err := parseDatePtr(req.EntryTime)
	if err != nil {
		h.httpError(w, "Invalid entryTime", http.StatusBadRequest)
		return
	}

	e := &store.LogbookEntry{
		VesselID:   req.VesselID,
		VoyageID:   req.VoyageID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Course:     req.Course,
		Speed:      req.Speed,
		Weather:    req.Weather,
		Remarks:    req.Remarks,
		RecordedBy: callerID(r),
	}
	if entryTime != nil {
		e.EntryTime = *entryTime
	}
	if err := h.store.CreateLogbookEntry(r.Context(), e); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, e)
}

// GetLogbookEntry handles GET /api/logbook/{id}.
func (h *Handlers) GetLogbookEntry(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.GetLogbookEntry(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, e.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, e)
}

// UpdateLogbookEntry handles PUT /api/logbook/{id}. Signed entries reject
// any update.
func (h *Handlers) UpdateLogbookEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateLogbookEntryRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	e, err := h.store.GetLogbookEntry(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, e.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if e.Signed() {
		h.storeError(w, store.ErrAlreadySigned)
		return
	}
	if req.Latitude != nil {
		e.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		e.Longitude = *req.Longitude
	}
	if req.Course != nil {
		e.Course = *req.Course
	}
	if req.Speed != nil {
		e.Speed = *req.Speed
	}
	if req.Weather != nil {
		e.Weather = *req.Weather
	}
	if req.Remarks != nil {
		e.Remarks = *req.Remarks
	}

	if err := h.store.UpdateLogbookEntry(ctx, e); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, e)
}

// DeleteLogbookEntry handles DELETE /api/logbook/{id}.
func (h *Handlers) DeleteLogbookEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	e, err := h.store.GetLogbookEntry(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, e.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteLogbookEntry(ctx, e.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SignLogbookEntry handles POST /api/logbook/{id}/sign. Signing freezes the
// entry; a second sign fails.
func (h *Handlers) SignLogbookEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	e, err := h.store.GetLogbookEntry(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, e.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if e.Signed() {
		h.storeError(w, store.ErrAlreadySigned)
		return
	}

	signedAt := time.Now().UTC()
	e.SignedBy = callerID(r)
	e.SignedAt = &signedAt
	if err := h.store.UpdateLogbookEntry(ctx, e); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, e)
}

// ListEngineLogEntries handles GET /api/engine-log.
func (h *Handlers) ListEngineLogEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListEngineLogEntries(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, entries)
}

// CreateEngineLogEntry handles POST /api/engine-log.
func (h *Handlers) CreateEngineLogEntry(w http.ResponseWriter, r *http.Request) {
	var req api.CreateEngineLogRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.VesselID == "" {
		h.httpError(w, "vesselId is required", http.StatusBadRequest)
		return
	}
	entryTime, err := parseDatePtr(req.EntryTime)
	if err != nil {
		h.httpError(w, "Invalid entryTime", http.StatusBadRequest)
		return
	}

	e := &store.EngineLogEntry{
		VesselID:        req.VesselID,
		MainEngineHours: req.MainEngineHours,
		RPM:             req.RPM,
		LoadPercent:     req.LoadPercent,
		LubeOilPressure: req.LubeOilPressure,
		CoolantTemp:     req.CoolantTemp,
		Remarks:         req.Remarks,
		RecordedBy:      callerID(r),
	}
	if entryTime != nil {
		e.EntryTime = *entryTime
	}
	if err := h.store.CreateEngineLogEntry(r.Context(), e); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, e)
}

// GetEngineLogEntry handles GET /api/engine-log/{id}.
func (h *Handlers) GetEngineLogEntry(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.GetEngineLogEntry(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, e.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, e)
}

// UpdateEngineLogEntry handles PUT /api/engine-log/{id}.
func (h *Handlers) UpdateEngineLogEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateEngineLogRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	e, err := h.store.GetEngineLogEntry(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, e.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.MainEngineHours != nil {
		e.MainEngineHours = *req.MainEngineHours
	}
	if req.RPM != nil {
		e.RPM = *req.RPM
	}
	if req.LoadPercent != nil {
		e.LoadPercent = *req.LoadPercent
	}
	if req.LubeOilPressure != nil {
		e.LubeOilPressure = *req.LubeOilPressure
	}
	if req.CoolantTemp != nil {
		e.CoolantTemp = *req.CoolantTemp
	}
	if req.Remarks != nil {
		e.Remarks = *req.Remarks
	}

	if err := h.store.UpdateEngineLogEntry(ctx, e); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, e)
}

// DeleteEngineLogEntry handles DELETE /api/engine-log/{id}.
func (h *Handlers) DeleteEngineLogEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	e, err := h.store.GetEngineLogEntry(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, e.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteEngineLogEntry(ctx, e.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFuelRecords handles GET /api/fuel-management.
func (h *Handlers) ListFuelRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListFuelRecords(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, records)
}

// CreateFuelRecord handles POST /api/fuel-management.
func (h *Handlers) CreateFuelRecord(w http.ResponseWriter, r *http.Request) {
	var req api.CreateFuelRecordRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FuelType == "" {
		h.httpError(w, "fuelType is required", http.StatusBadRequest)
		return
	}
	if !forceVessel(r, &req.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.VesselID == "" {
		h.httpError(w, "vesselId is required", http.StatusBadRequest)
		return
	}
	recordDate, err := parseDatePtr(req.RecordDate)
	if err != nil {
		h.httpError(w, "Invalid recordDate", http.StatusBadRequest)
		return
	}

	rec := &store.FuelRecord{
		VesselID:         req.VesselID,
		FuelType:         req.FuelType,
		QuantityReceived: req.QuantityReceived,
		QuantityConsumed: req.QuantityConsumed,
		RemainingOnBoard: req.RemainingOnBoard,
		PricePerTon:      req.PricePerTon,
	}
	if recordDate != nil {
		rec.RecordDate = *recordDate
	}
	if err := h.store.CreateFuelRecord(r.Context(), rec); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, rec)
}

// GetFuelRecord handles GET /api/fuel-management/{id}.
func (h *Handlers) GetFuelRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.GetFuelRecord(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, rec.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, rec)
}

// UpdateFuelRecord handles PUT /api/fuel-management/{id}.
func (h *Handlers) UpdateFuelRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateFuelRecordRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := h.store.GetFuelRecord(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, rec.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.FuelType != nil {
		rec.FuelType = *req.FuelType
	}
	if req.QuantityReceived != nil {
		rec.QuantityReceived = *req.QuantityReceived
	}
	if req.QuantityConsumed != nil {
		rec.QuantityConsumed = *req.QuantityConsumed
	}
	if req.RemainingOnBoard != nil {
		rec.RemainingOnBoard = *req.RemainingOnBoard
	}
	if req.PricePerTon != nil {
		rec.PricePerTon = *req.PricePerTon
	}

	if err := h.store.UpdateFuelRecord(ctx, rec); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, rec)
}

// DeleteFuelRecord handles DELETE /api/fuel-management/{id}.
func (h *Handlers) DeleteFuelRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, err := h.store.GetFuelRecord(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, rec.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteFuelRecord(ctx, rec.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
