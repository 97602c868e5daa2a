package api

// CreateDocumentRequest is the request body for POST /api/documents.
// File content goes through POST /api/documents/upload (multipart).
type CreateDocumentRequest struct {
	VesselID   string `json:"vesselId,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	Title      string `json:"title"`
	FileName   string `json:"fileName,omitempty"`
	FileKey    string `json:"fileKey,omitempty"`
	FileSize   int64  `json:"fileSize,omitempty"`
}

// UpdateDocumentRequest is the request body for PUT /api/documents/{id}.
// Status may only move a draft to PENDING_APPROVAL; approval and rejection
// have dedicated endpoints.
type UpdateDocumentRequest struct {
	CategoryID *string `json:"categoryId,omitempty"`
	Title      *string `json:"title,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// RejectDocumentRequest optionally carries the reviewer's reason.
type RejectDocumentRequest struct {
	Reason string `json:"reason,omitempty"`
}

// UploadResponse is returned by multipart upload endpoints.
type UploadResponse struct {
	FileKey  string `json:"fileKey"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}
