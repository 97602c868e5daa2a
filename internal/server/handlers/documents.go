package handlers

import (
	"errors"
	"net/http"

	"gdys/internal/store"
	"gdys/pkg/api"
)

// ListCategories handles GET /api/categories.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, categories)
}

// CreateCategory handles POST /api/categories.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCategoryRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		h.httpError(w, "Name is required", http.StatusBadRequest)
		return
	}

	c := &store.Category{Name: req.Name, Description: req.Description}
	if err := h.store.CreateCategory(r.Context(), c); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, c)
}

// UpdateCategory handles PUT /api/categories/{id}.
func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateCategoryRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.store.GetCategory(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}

	if err := h.store.UpdateCategory(ctx, c); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, c)
}

// DeleteCategory handles DELETE /api/categories/{id}.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDocuments handles GET /api/documents.
func (h *Handlers) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.store.ListDocuments(r.Context(), scopedFilter(r))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, docs)
}

// CreateDocument handles POST /api/documents.
func (h *Handlers) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req api.CreateDocumentRequest
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

	d := &store.Document{
		VesselID:   req.VesselID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		FileName:   req.FileName,
		FileKey:    req.FileKey,
		FileSize:   req.FileSize,
		UploadedBy: callerID(r),
	}
	if err := h.store.CreateDocument(r.Context(), d); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusCreated, d)
}

// GetDocument handles GET /api/documents/{id}.
func (h *Handlers) GetDocument(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, d.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	h.respondData(w, http.StatusOK, d)
}

// UpdateDocument handles PUT /api/documents/{id}.
func (h *Handlers) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateDocumentRequest
	if err := decode(r, &req); err != nil {
		h.httpError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	d, err := h.store.GetDocument(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, d.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if req.CategoryID != nil {
		d.CategoryID = *req.CategoryID
	}
	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Status != nil {
		next := store.DocumentStatus(*req.Status)
		if next != store.DocumentPendingApproval || d.Status != store.DocumentDraft {
			h.storeError(w, store.ErrInvalidStatus)
			return
		}
		d.Status = next
	}

	if err := h.store.UpdateDocument(ctx, d); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, d)
}

// DeleteDocument handles DELETE /api/documents/{id}.
func (h *Handlers) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	d, err := h.store.GetDocument(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, d.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if err := h.store.DeleteDocument(ctx, d.ID); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reviewDocument applies an approve/reject transition. Only documents
// awaiting review may transition.
func (h *Handlers) reviewDocument(w http.ResponseWriter, r *http.Request, to store.DocumentStatus, reason string) {
	ctx := r.Context()

	d, err := h.store.GetDocument(ctx, r.PathValue("id"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !canAccess(r, d.VesselID) {
		h.httpError(w, "Forbidden", http.StatusForbidden)
		return
	}
	if d.Status != store.DocumentPendingApproval {
		h.storeError(w, store.ErrInvalidStatus)
		return
	}

	d.Status = to
	d.ApprovedBy = callerID(r)
	d.RejectReason = reason
	if err := h.store.UpdateDocument(ctx, d); err != nil {
		h.storeError(w, err)
		return
	}
	h.respondData(w, http.StatusOK, d)
}

// ApproveDocument handles POST /api/documents/{id}/approve.
func (h *Handlers) ApproveDocument(w http.ResponseWriter, r *http.Request) {
	h.reviewDocument(w, r, store.DocumentApproved, "")
}

// RejectDocument handles POST /api/documents/{id}/reject.
func (h *Handlers) RejectDocument(w http.ResponseWriter, r *http.Request) {
	var req api.RejectDocumentRequest
	// Body is optional.
	_ = decode(r, &req)
	h.reviewDocument(w, r, store.DocumentRejected, req.Reason)
}

// UploadDocument handles POST /api/documents/upload (multipart field "file").
func (h *Handlers) UploadDocument(w http.ResponseWriter, r *http.Request) {
	key, name, size, ok := h.saveUpload(w, r)
	if !ok {
		return
	}
	h.respondData(w, http.StatusCreated, api.UploadResponse{
		FileKey:  key,
		FileName: name,
		Size:     size,
	})
}

// saveUpload streams the multipart "file" part into the blob store, enforcing
// the configured ceiling. It writes the error response itself on failure.
func (h *Handlers) saveUpload(w http.ResponseWriter, r *http.Request) (key, name string, size int64, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.httpError(w, "File exceeds the upload size limit", http.StatusRequestEntityTooLarge)
			return "", "", 0, false
		}
		h.httpError(w, "Missing multipart field \"file\"", http.StatusBadRequest)
		return "", "", 0, false
	}
	defer file.Close()

	key, size, err = h.blobs.Save(r.Context(), header.Filename, file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.httpError(w, "File exceeds the upload size limit", http.StatusRequestEntityTooLarge)
			return "", "", 0, false
		}
		h.log.Error("failed to store upload", "error", err)
		h.httpError(w, "Failed to store file", http.StatusInternalServerError)
		return "", "", 0, false
	}
	return key, header.Filename, size, true
}
