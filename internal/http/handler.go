package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vaudoise/clients-contracts/internal/model"
	"github.com/vaudoise/clients-contracts/internal/service"
)

type Handler struct {
	clients   *service.ClientService
	contracts *service.ContractService
	log       zerolog.Logger
}

func NewHandler(clients *service.ClientService, contracts *service.ContractService, log zerolog.Logger) *Handler {
	return &Handler{clients: clients, contracts: contracts, log: log}
}

func (h *Handler) Register(router *gin.Engine) {
	api := router.Group("/api")

	clients := api.Group("/clients")
	clients.POST("", h.createClient)
	clients.GET("/:id", h.getClient)
	clients.PUT("/:id", h.updateClient)
	clients.DELETE("/delete/:id", h.deleteClient)
	clients.GET("/:id/contracts/active", h.getActiveContracts)
	clients.GET("/:id/contracts/filteredactive", h.getContractsUpdatedAfter)
	clients.GET("/:id/contracts/active/total", h.getActiveContractsTotal)
	clients.GET("/:id/contracts/statement", h.exportStatement)
	clients.GET("/:id/contracts/statement/pdf", h.exportStatementPDF)

	contracts := api.Group("/contracts")
	contracts.POST("/client/:id", h.createContract)
	contracts.PUT("/:id/cost", h.updateContractCost)
}

type clientRequest struct {
	ClientType        string `json:"clientType" binding:"required"`
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	BirthDate         string `json:"birthDate"`
	CompanyIdentifier string `json:"companyIdentifier"`
}

type contractRequest struct {
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	CostAmount float64 `json:"costAmount"`
}

type updateCostRequest struct {
	CostAmount *float64 `json:"costAmount" binding:"required"`
}

func (h *Handler) createClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clientType, err := parseClientType(req.ClientType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid clientType"})
		return
	}

	input := service.CreateClientInput{
		Type:              clientType,
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		CompanyIdentifier: req.CompanyIdentifier,
	}
	if req.BirthDate != "" {
		birth, err := parseDate(req.BirthDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birthDate"})
			return
		}
		input.BirthDate = &birth
	}

	client, err := h.clients.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/clients/"+client.ID.String())
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) getClient(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *Handler) updateClient(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// The discriminator is still validated even though only the shared
	// fields are mutable.
	if _, err := parseClientType(req.ClientType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid clientType"})
		return
	}

	client, err := h.clients.Update(c.Request.Context(), id, service.UpdateClientInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *Handler) deleteClient(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	updated, err := h.clients.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Client deleted successfully",
		"contractsUpdated": len(updated),
	})
}

func (h *Handler) getActiveContracts(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	contracts, err := h.contracts.ActiveContracts(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if contracts == nil {
		contracts = []model.Contract{}
	}

	c.JSON(http.StatusOK, contracts)
}

func (h *Handler) getContractsUpdatedAfter(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	since, err := parseDate(c.Query("updatedDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid updatedDate"})
		return
	}

	contracts, err := h.contracts.ActiveContractsUpdatedAfter(c.Request.Context(), id, since)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if contracts == nil {
		contracts = []model.Contract{}
	}

	c.JSON(http.StatusOK, contracts)
}

func (h *Handler) getActiveContractsTotal(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	total, err := h.contracts.ActiveContractsTotal(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientId":                 id,
		"totalActiveContractsCost": total,
	})
}

func (h *Handler) exportStatement(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result, err := h.contracts.ExportStatement(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) exportStatementPDF(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result, err := h.contracts.ExportStatementPDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) createContract(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.CreateContractInput{CostAmount: req.CostAmount}
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		input.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		input.EndDate = &end
	}

	contract, err := h.contracts.Create(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) updateContractCost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, err := h.contracts.UpdateCost(c.Request.Context(), id, *req.CostAmount)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Param("id")))
}

func parseClientType(raw string) (model.ClientType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(model.ClientTypePerson):
		return model.ClientTypePerson, nil
	case string(model.ClientTypeCompany):
		return model.ClientTypeCompany, nil
	default:
		return "", service.ErrInvalidInput
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
