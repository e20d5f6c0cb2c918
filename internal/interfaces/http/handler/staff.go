package handler

import (
	"github.com/gin-gonic/gin"

	staffapp "github.com/shopledger/backend/internal/application/staff"
)

// StaffHandler serves the staff directory endpoints
type StaffHandler struct {
	BaseHandler
	staff *staffapp.StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staff *staffapp.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// List returns every staff member of the shop by name.
// GET /staff
func (h *StaffHandler) List(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	members, err := h.staff.List(c.Request.Context(), shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, members)
}

// ListActive returns the staff members who can record sales.
// GET /staff/active
func (h *StaffHandler) ListActive(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	members, err := h.staff.ListActive(c.Request.Context(), shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, members)
}

// Get returns one staff member.
// GET /staff/:id
func (h *StaffHandler) Get(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	member, err := h.staff.Get(c.Request.Context(), shopID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// Create adds a staff member with a passcode.
// POST /staff
func (h *StaffHandler) Create(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	var req staffapp.UpsertStaffRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.ID = nil

	member, err := h.staff.UpsertStaff(c.Request.Context(), shopID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, member)
}

// Update renames a staff member and, when a passcode is given, replaces it.
// PUT /staff/:id
func (h *StaffHandler) Update(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req staffapp.UpsertStaffRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.ID = &id

	member, err := h.staff.UpsertStaff(c.Request.Context(), shopID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}

// Deactivate removes a staff member from the active directory.
// POST /staff/:id/deactivate
func (h *StaffHandler) Deactivate(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.staff.Deactivate(c.Request.Context(), shopID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id, "is_active": false})
}

// Activate restores a deactivated staff member under the passcode in the body.
// POST /staff/:id/activate
func (h *StaffHandler) Activate(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req staffapp.ActivateStaffRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.staff.Activate(c.Request.Context(), shopID, id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id, "is_active": true})
}

// Lookup identifies the active staff member behind a passcode.
// POST /staff/lookup
func (h *StaffHandler) Lookup(c *gin.Context) {
	shopID, ok := h.shopID(c)
	if !ok {
		return
	}
	var req staffapp.LookupRequest
	if !h.bindJSON(c, &req) {
		return
	}
	member, err := h.staff.FindByPasscode(c.Request.Context(), shopID, req.Passcode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, member)
}
