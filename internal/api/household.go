package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealfeed/backend/internal/service"
	"github.com/pageza/mealfeed/backend/internal/types"
)

// HouseholdHandler serves household membership and the shared inventory.
type HouseholdHandler struct {
	householdService service.IHouseholdService
	inventoryService service.IInventoryService
}

func NewHouseholdHandler(householdService service.IHouseholdService, inventoryService service.IInventoryService) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService, inventoryService: inventoryService}
}

func (h *HouseholdHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/households", h.ListHouseholds)
	router.POST("/households", h.ChangeHousehold)
	router.GET("/inventory", h.ListInventory)
	router.POST("/inventory", h.AddInventory)
}

func (h *HouseholdHandler) ListHouseholds(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	households, err := h.householdService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, households)
}

// ChangeHousehold creates a household or joins an existing one, per the
// request's action.
func (h *HouseholdHandler) ChangeHousehold(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.HouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	switch req.Action {
	case "create":
		if strings.TrimSpace(req.Name) == "" {
			badRequest(c, "name is required")
			return
		}
		household, err := h.householdService.Create(c.Request.Context(), userID, req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, household)
	case "join":
		if req.HouseholdID == uuid.Nil {
			badRequest(c, "householdId is required")
			return
		}
		household, err := h.householdService.Join(c.Request.Context(), userID, req.HouseholdID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, household)
	}
}

func (h *HouseholdHandler) ListInventory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	householdID, err := h.householdService.RequirePrimary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	items, err := h.inventoryService.List(c.Request.Context(), householdID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *HouseholdHandler) AddInventory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	householdID, err := h.householdService.RequirePrimary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.inventoryService.Add(c.Request.Context(), householdID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}
