package event

import (
	"context"
	"net/http"
	"time"

	"github.com/eventful-api/eventful-backend/middleware"
	"github.com/eventful-api/eventful-backend/utils"
	"github.com/gin-gonic/gin"
)

// Every request gets a bounded deadline against the database; slow
// storage surfaces as a retryable error instead of a hung handler.
const requestTimeout = 5 * time.Second

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func reqContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func writeError(c *gin.Context, err error) {
	apiErr := utils.AsAPIError(err)
	c.JSON(apiErr.StatusCode, apiErr)
}

// ===========================
// 🎯 Create Event - POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.Unauthorized("unauthenticated"))
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.BadRequest("invalid input: "+err.Error()))
		return
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	e, err := h.Service.CreateEvent(ctx, caller, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, e)
}

// ===========================
// 📄 List Events - GET /events
func (h *Handler) GetAllEvents(c *gin.Context) {
	ctx, cancel := reqContext(c)
	defer cancel()

	events, err := h.Service.GetAllEvents(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// ===========================
// 🔍 Get Event - GET /events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	ctx, cancel := reqContext(c)
	defer cancel()

	e, err := h.Service.GetEvent(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// 🛠 Update Event - PATCH /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.Unauthorized("unauthenticated"))
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.BadRequest("invalid input: "+err.Error()))
		return
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	e, err := h.Service.UpdateEvent(ctx, caller, c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// ❌ Cancel Event - DELETE /events/:id
func (h *Handler) CancelEvent(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.Unauthorized("unauthenticated"))
		return
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Service.CancelEvent(ctx, caller, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event cancelled successfully"})
}

// ===========================
// 🎟 Enroll - POST /events/:id/enroll
func (h *Handler) EnrollUser(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.Unauthorized("unauthenticated"))
		return
	}

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.BadRequest("invalid input: "+err.Error()))
		return
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Service.EnrollUser(ctx, caller, c.Param("id"), req.WhenToRemind); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User enrolled successfully in event"})
}

// ===========================
// 🎟 Cancel Enrollment - DELETE /events/enrollment/:id
func (h *Handler) CancelEnrollment(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.Unauthorized("unauthenticated"))
		return
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Service.CancelEnrollment(ctx, caller, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Enrollment cancelled successfully"})
}

// ===========================
// ✅ Check-in - PATCH /events/checkin/:eventId/:userId/:enrollmentId
//
// Unauthenticated on purpose: this is the URL inside the QR code,
// scanned by the on-site kiosk.
func (h *Handler) CheckInUser(c *gin.Context) {
	ctx, cancel := reqContext(c)
	defer cancel()

	err := h.Service.CheckInUser(ctx, c.Param("eventId"), c.Param("userId"), c.Param("enrollmentId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User checked in successfully to event"})
}

// ===========================
// 🧾 Enrollment QR - GET /events/enrollment/:id/qrcode
func (h *Handler) EnrollmentQRCode(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.Unauthorized("unauthenticated"))
		return
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	png, err := h.Service.EnrollmentQRCode(ctx, caller, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
