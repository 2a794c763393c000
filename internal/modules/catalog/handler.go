package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coworking/internal/pkg/response"
	"coworking/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/centers", h.ListCenters)
	v1.GET("/centers/:id", h.GetCenter)
	v1.GET("/centers/:id/floors", h.ListFloors)
	v1.GET("/floors/:id/workstations", h.ListWorkstations)
}

// RegisterManagerRoutes wires the write endpoints. The group is expected to
// be behind JWT auth and the manager/admin role check.
func (h *Handler) RegisterManagerRoutes(rg *gin.RouterGroup) {
	rg.GET("/manager/centers", h.MyCenters)
	rg.POST("/centers", h.CreateCenter)
	rg.PUT("/centers/:id", h.UpdateCenter)
	rg.DELETE("/centers/:id", h.DeleteCenter)

	rg.POST("/floors", h.CreateFloor)
	rg.PUT("/floors/:id", h.UpdateFloor)
	rg.DELETE("/floors/:id", h.DeleteFloor)

	rg.POST("/workstations", h.CreateWorkstation)
	rg.PUT("/workstations/:id", h.UpdateWorkstation)
	rg.DELETE("/workstations/:id", h.DeleteWorkstation)

	rg.GET("/centers/:id/inventory", h.ListInventory)
	rg.POST("/inventory", h.CreateInventoryItem)
	rg.PUT("/inventory/:id", h.UpdateInventoryItem)
	rg.DELETE("/inventory/:id", h.DeleteInventoryItem)
}

func (h *Handler) ListCenters(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	minPrice, _ := strconv.ParseFloat(c.DefaultQuery("min_price", "0"), 64)

	centers, total, err := h.service.ListCenters(c.Request.Context(), repository.CenterFilters{
		City:            c.Query("city"),
		WorkstationType: c.Query("type"),
		MinPrice:        minPrice,
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"centers": centers,
		"total":   total,
	})
}

func (h *Handler) GetCenter(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid center ID")
		return
	}

	center, err := h.service.GetCenter(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, center)
}

func (h *Handler) MyCenters(c *gin.Context) {
	centers, err := h.service.MyCenters(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, centers)
}

func (h *Handler) CreateCenter(c *gin.Context) {
	var req CreateCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	center, err := h.service.CreateCenter(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, center)
}

func (h *Handler) UpdateCenter(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid center ID")
		return
	}

	var req UpdateCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	center, err := h.service.UpdateCenter(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, center)
}

func (h *Handler) DeleteCenter(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid center ID")
		return
	}

	if err := h.service.DeleteCenter(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Center deleted"})
}

func (h *Handler) ListFloors(c *gin.Context) {
	centerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid center ID")
		return
	}

	floors, err := h.service.ListFloors(c.Request.Context(), centerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, floors)
}

func (h *Handler) CreateFloor(c *gin.Context) {
	var req CreateFloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	floor, err := h.service.CreateFloor(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, floor)
}

func (h *Handler) UpdateFloor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid floor ID")
		return
	}

	var req UpdateFloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	floor, err := h.service.UpdateFloor(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, floor)
}

func (h *Handler) DeleteFloor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid floor ID")
		return
	}

	if err := h.service.DeleteFloor(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Floor deleted"})
}

func (h *Handler) ListWorkstations(c *gin.Context) {
	floorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid floor ID")
		return
	}

	ws, err := h.service.ListWorkstations(c.Request.Context(), floorID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ws)
}

func (h *Handler) CreateWorkstation(c *gin.Context) {
	var req CreateWorkstationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ws, err := h.service.CreateWorkstation(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, ws)
}

func (h *Handler) UpdateWorkstation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid workstation ID")
		return
	}

	var req UpdateWorkstationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ws, err := h.service.UpdateWorkstation(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ws)
}

func (h *Handler) DeleteWorkstation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid workstation ID")
		return
	}

	if err := h.service.DeactivateWorkstation(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Workstation deactivated"})
}

func (h *Handler) ListInventory(c *gin.Context) {
	centerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid center ID")
		return
	}

	items, err := h.service.ListInventory(c.Request.Context(), c.GetInt64("user_id"), centerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) CreateInventoryItem(c *gin.Context) {
	var req CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.CreateInventoryItem(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, item)
}

func (h *Handler) UpdateInventoryItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid inventory item ID")
		return
	}

	var req UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.UpdateInventoryItem(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

func (h *Handler) DeleteInventoryItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid inventory item ID")
		return
	}

	if err := h.service.DeleteInventoryItem(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Inventory item deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrManagerNotApproved):
		response.Error(c, http.StatusForbidden, "MANAGER_NOT_APPROVED", "Manager account is not approved yet")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrFloorNotEmpty):
		response.Error(c, http.StatusConflict, "FLOOR_NOT_EMPTY", "Floor still has active workstations")
	case errors.Is(err, ErrPositionTaken):
		response.Error(c, http.StatusConflict, "POSITION_TAKEN", "Grid position is already occupied")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
