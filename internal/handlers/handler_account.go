package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/dto"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to analytical accounts.
type accountHandler struct {
	accountService portssvc.AnalyticalAccountSvcFacade
}

func newAccountHandler(as portssvc.AnalyticalAccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to analytical accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AnalyticalAccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/analytical-accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("", h.listAccounts)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new analytical account
// @Description Creates a cost/revenue classification dimension
// @Tags analytical-accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAnalyticalAccountRequest true "Account details"
// @Success 201 {object} dto.AnalyticalAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account name already exists"
// @Security BearerAuth
// @Router /analytical-accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAnalyticalAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create analytical account")
		return
	}

	logger.Info("Analytical account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAnalyticalAccountResponse(account))
}

// getAccount godoc
// @Summary Get an analytical account by ID
// @Tags analytical-accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AnalyticalAccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /analytical-accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve analytical account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAnalyticalAccountResponse(account))
}

// listAccounts godoc
// @Summary List active analytical accounts
// @Tags analytical-accounts
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.AnalyticalAccountResponse
// @Security BearerAuth
// @Router /analytical-accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list analytical accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAnalyticalAccountResponse(accounts))
}

// updateAccount godoc
// @Summary Update an analytical account's metadata
// @Tags analytical-accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAnalyticalAccountRequest true "Fields to update"
// @Success 200 {object} dto.AnalyticalAccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /analytical-accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.UpdateAnalyticalAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update analytical account")
		return
	}

	logger.Info("Analytical account updated", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.ToAnalyticalAccountResponse(account))
}

// deleteAccount godoc
// @Summary Deactivate an analytical account
// @Tags analytical-accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /analytical-accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), accountID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate analytical account")
		return
	}

	logger.Info("Analytical account deactivated", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}
