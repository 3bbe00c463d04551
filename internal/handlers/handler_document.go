package handlers

import (
	"log/slog"
	"net/http"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/dto"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests for one financial document type. The
// same handler implementation backs all four document route groups; docType
// selects which.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	reconcileSvc    portssvc.ReconciliationSvc
	docType         domain.DocumentType
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, rs portssvc.ReconciliationSvc, docType domain.DocumentType) *documentHandler {
	return &documentHandler{
		documentService: ds,
		reconcileSvc:    rs,
		docType:         docType,
	}
}

// registerDocumentRoutes registers the four document route groups. Payable
// types additionally get an explicit reconcile endpoint.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, reconcileSvc portssvc.ReconciliationSvc) {
	groups := []struct {
		path    string
		docType domain.DocumentType
	}{
		{"/purchase-orders", domain.PurchaseOrder},
		{"/sales-orders", domain.SalesOrder},
		{"/bills", domain.VendorBill},
		{"/invoices", domain.CustomerInvoice},
	}

	for _, g := range groups {
		h := newDocumentHandler(documentService, reconcileSvc, g.docType)
		docs := rg.Group(g.path)
		{
			docs.POST("", h.createDocument)
			docs.GET("/:id", h.getDocument)
			docs.GET("", h.listDocuments)
			docs.PUT("/:id", h.updateDocument)
			docs.DELETE("/:id", h.cancelDocument)
			if g.docType.IsPayable() {
				docs.POST("/:id/reconcile", h.reconcileDocument)
			}
		}
	}
}

// createDocument godoc
// @Summary Create a financial document
// @Description Creates a purchase order, sales order, vendor bill or customer invoice depending on the route. The document number is generated server-side and the analytical account is auto-assigned from rules when not supplied.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Contact, product or account not found"
// @Security BearerAuth
// @Router /bills [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), h.docType, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create document")
		return
	}

	logger.Info("Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("document_number", doc.DocumentNumber),
		slog.String("doc_type", string(doc.DocType)))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// getDocument godoc
// @Summary Get a financial document by ID
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
// @Router /bills/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), h.docType, documentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List financial documents of one type
// @Tags documents
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.DocumentResponse
// @Security BearerAuth
// @Router /bills [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listDocuments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), h.docType, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentResponse(docs))
}

// updateDocument godoc
// @Summary Update a financial document
// @Description Updates a document's editable fields. Payment-derived statuses (PAID, PARTIALLY_PAID, OVERDUE) cannot be set directly.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   document body dto.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input or status transition"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document is cancelled"
// @Security BearerAuth
// @Router /bills/{id} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), h.docType, documentID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update document")
		return
	}

	logger.Info("Document updated", slog.String("document_id", documentID))
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// cancelDocument godoc
// @Summary Cancel a financial document
// @Description Cancels a document. Payable documents with recorded payments cannot be cancelled.
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document has payments"
// @Security BearerAuth
// @Router /bills/{id} [delete]
func (h *documentHandler) cancelDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.documentService.CancelDocument(c.Request.Context(), h.docType, documentID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to cancel document")
		return
	}

	logger.Info("Document cancelled", slog.String("document_id", documentID))
	c.Status(http.StatusNoContent)
}

// reconcileDocument godoc
// @Summary Reconcile a payable document
// @Description Recomputes the document's paid and remaining amounts and status from its completed payments.
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Document is not payable"
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
// @Router /bills/{id}/reconcile [post]
func (h *documentHandler) reconcileDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// The document must exist under this route's type before reconciling.
	if _, err := h.documentService.GetDocumentByID(c.Request.Context(), h.docType, documentID); err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve document")
		return
	}

	result, err := h.reconcileSvc.Reconcile(c.Request.Context(), documentID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconcile document")
		return
	}

	logger.Info("Document reconciled",
		slog.String("document_id", documentID),
		slog.String("status", string(result.Status)))
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(result))
}
