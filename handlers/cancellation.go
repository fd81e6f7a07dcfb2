package handlers

import (
	"net/http"

	"roamly/models"
	"roamly/services/admin"
	"roamly/services/cancel"
	"roamly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CancellationHandler serves the public cancellation-request endpoints.
type CancellationHandler struct {
	Service cancel.CancellationIntakeService
	Logger  *zap.Logger
}

func NewCancellationHandler(svc cancel.CancellationIntakeService, logger *zap.Logger) *CancellationHandler {
	return &CancellationHandler{Service: svc, Logger: logger}
}

// cancellationRequestBody is the wire shape of the intake endpoint. Either a
// token, or the full set of manual fields, must be present.
type cancellationRequestBody struct {
	Token         string `json:"token"`
	OrderNumber   string `json:"orderNumber"`
	CustomerEmail string `json:"customerEmail"`
	CustomerName  string `json:"customerName"`
	Reason        string `json:"reason"`
}

// claim converts the flat wire body into the claim union. Returns nil when
// neither mode's required fields are present.
func (b *cancellationRequestBody) claim() models.CancellationClaim {
	if b.Token != "" {
		return models.TokenClaim{Token: b.Token, Reason: b.Reason}
	}
	if b.OrderNumber != "" && b.CustomerEmail != "" && b.CustomerName != "" {
		return models.ManualClaim{
			OrderNumber:   b.OrderNumber,
			CustomerEmail: b.CustomerEmail,
			CustomerName:  b.CustomerName,
			Reason:        b.Reason,
		}
	}
	return nil
}

// CreateCancellationRequest handles POST /api/cancellation-requests.
func (h *CancellationHandler) CreateCancellationRequest(c *gin.Context) {
	var body cancellationRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, cancel.CodeMissingFields, "request body is not valid JSON")
		return
	}

	claim := body.claim()
	if claim == nil {
		utils.JSONError(c, http.StatusBadRequest, cancel.CodeMissingFields,
			"provide a cancellation token, or order number, email and name")
		return
	}

	result, cerr := h.Service.CreateCancellationRequest(c.Request.Context(), claim)
	if cerr != nil {
		utils.JSONError(c, cancel.HTTPStatus(cerr.Code), cerr.Code, cerr.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       result.Message,
		"requestId":     result.RequestID,
		"alreadyExists": result.AlreadyExists,
	})
}

// GetCancellationRequest handles GET /api/cancellation-requests/:id.
func (h *CancellationHandler) GetCancellationRequest(c *gin.Context) {
	req, cerr := h.Service.GetCancellationRequest(c.Request.Context(), c.Param("id"))
	if cerr != nil {
		utils.JSONError(c, cancel.HTTPStatus(cerr.Code), cerr.Code, cerr.Message)
		return
	}
	c.JSON(http.StatusOK, req)
}

// AdminCancellationHandler serves the admin-processing endpoints.
type AdminCancellationHandler struct {
	Service admin.AdminCancellationService
	Logger  *zap.Logger
}

func NewAdminCancellationHandler(svc admin.AdminCancellationService, logger *zap.Logger) *AdminCancellationHandler {
	return &AdminCancellationHandler{Service: svc, Logger: logger}
}

// ListCancellationRequests handles GET /api/admin/cancellation-requests.
func (h *AdminCancellationHandler) ListCancellationRequests(c *gin.Context) {
	status := c.DefaultQuery("status", models.CancellationStatusPending)

	requests, err := h.Service.ListCancellationRequests(status, 100)
	if err != nil {
		h.Logger.Error("failed to list cancellation requests", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, cancel.CodeInternalError, "could not list cancellation requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// processRequestBody is the wire shape of the admin decision endpoint.
type processRequestBody struct {
	Decision   string `json:"decision" binding:"required"`
	AdminNotes string `json:"adminNotes"`
}

// ProcessCancellationRequest handles POST /api/admin/cancellation-requests/:id/process.
func (h *AdminCancellationHandler) ProcessCancellationRequest(c *gin.Context) {
	var body processRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, cancel.CodeMissingFields, "a decision is required")
		return
	}

	req, err := h.Service.ProcessCancellationRequest(c.Param("id"), body.Decision, body.AdminNotes)
	if err != nil {
		switch err {
		case admin.ErrInvalidDecision:
			utils.JSONError(c, http.StatusBadRequest, cancel.CodeValidationFailed, err.Error())
		case admin.ErrAlreadyProcessed:
			utils.JSONError(c, http.StatusConflict, cancel.CodeAlreadyApproved, err.Error())
		default:
			h.Logger.Error("failed to process cancellation request", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, cancel.CodeInternalError, "could not process the request")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": req})
}
