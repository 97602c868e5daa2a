package api

// CreateVoyageRequest is the request body for POST /api/voyages.
type CreateVoyageRequest struct {
	VesselID         string `json:"vesselId,omitempty"`
	VoyageNumber     string `json:"voyageNumber"`
	DeparturePort    string `json:"departurePort"`
	ArrivalPort      string `json:"arrivalPort"`
	DepartureTime    string `json:"departureTime,omitempty"`
	ArrivalTime      string `json:"arrivalTime,omitempty"`
	CargoDescription string `json:"cargoDescription,omitempty"`
}

// UpdateVoyageRequest is the request body for PUT /api/voyages/{id}.
type UpdateVoyageRequest struct {
	VoyageNumber     *string `json:"voyageNumber,omitempty"`
	DeparturePort    *string `json:"departurePort,omitempty"`
	ArrivalPort      *string `json:"arrivalPort,omitempty"`
	DepartureTime    *string `json:"departureTime,omitempty"`
	ArrivalTime      *string `json:"arrivalTime,omitempty"`
	CargoDescription *string `json:"cargoDescription,omitempty"`
	Status           *string `json:"status,omitempty"`
}

// CreateLogbookEntryRequest is the request body for POST /api/logbook.
type CreateLogbookEntryRequest struct {
	VesselID  string  `json:"vesselId,omitempty"`
	VoyageID  string  `json:"voyageId,omitempty"`
	EntryTime string  `json:"entryTime,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	Course    float64 `json:"course,omitempty"`
	Speed     float64 `json:"speed,omitempty"`
	Weather   string  `json:"weather,omitempty"`
	Remarks   string  `json:"remarks,omitempty"`
}

// UpdateLogbookEntryRequest is the request body for PUT /api/logbook/{id}.
// Signed entries reject any update.
type UpdateLogbookEntryRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Course    *float64 `json:"course,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`
	Weather   *string  `json:"weather,omitempty"`
	Remarks   *string  `json:"remarks,omitempty"`
}

// CreateEngineLogRequest is the request body for POST /api/engine-log.
type CreateEngineLogRequest struct {
	VesselID        string  `json:"vesselId,omitempty"`
	EntryTime       string  `json:"entryTime,omitempty"`
	MainEngineHours float64 `json:"mainEngineHours,omitempty"`
	RPM             float64 `json:"rpm,omitempty"`
	LoadPercent     float64 `json:"loadPercent,omitempty"`
	LubeOilPressure float64 `json:"lubeOilPressure,omitempty"`
	CoolantTemp     float64 `json:"coolantTemp,omitempty"`
	Remarks         string  `json:"remarks,omitempty"`
}

// UpdateEngineLogRequest is the request body for PUT /api/engine-log/{id}.
type UpdateEngineLogRequest struct {
	MainEngineHours *float64 `json:"mainEngineHours,omitempty"`
	RPM             *float64 `json:"rpm,omitempty"`
	LoadPercent     *float64 `json:"loadPercent,omitempty"`
	LubeOilPressure *float64 `json:"lubeOilPressure,omitempty"`
	CoolantTemp     *float64 `json:"coolantTemp,omitempty"`
	Remarks         *string  `json:"remarks,omitempty"`
}

// CreateFuelRecordRequest is the request body for POST /api/fuel-management.
type CreateFuelRecordRequest struct {
	VesselID         string  `json:"vesselId,omitempty"`
	RecordDate       string  `json:"recordDate,omitempty"`
	FuelType         string  `json:"fuelType"`
	QuantityReceived float64 `json:"quantityReceived,omitempty"`
	QuantityConsumed float64 `json:"quantityConsumed,omitempty"`
	RemainingOnBoard float64 `json:"remainingOnBoard,omitempty"`
	PricePerTon      float64 `json:"pricePerTon,omitempty"`
}

// UpdateFuelRecordRequest is the request body for PUT /api/fuel-management/{id}.
type UpdateFuelRecordRequest struct {
	FuelType         *string  `json:"fuelType,omitempty"`
	QuantityReceived *float64 `json:"quantityReceived,omitempty"`
	QuantityConsumed *float64 `json:"quantityConsumed,omitempty"`
	RemainingOnBoard *float64 `json:"remainingOnBoard,omitempty"`
	PricePerTon      *float64 `json:"pricePerTon,omitempty"`
}
