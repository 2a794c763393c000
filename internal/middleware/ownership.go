package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coworking/internal/pkg/response"
	"coworking/internal/repository"
)

// OwnershipChecker provides middleware to verify resource ownership
type OwnershipChecker struct {
	centerRepo      *repository.CenterRepository
	workstationRepo *repository.WorkstationRepository
}

func NewOwnershipChecker(
	centerRepo *repository.CenterRepository,
	workstationRepo *repository.WorkstationRepository,
) *OwnershipChecker {
	return &OwnershipChecker{
		centerRepo:      centerRepo,
		workstationRepo: workstationRepo,
	}
}

// CheckCenterOwnership verifies the user manages the center.
// Expects center ID in URL param "id".
func (oc *OwnershipChecker) CheckCenterOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		centerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid center ID")
			c.Abort()
			return
		}

		center, err := oc.centerRepo.GetByID(c.Request.Context(), centerID)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Center not found")
			c.Abort()
			return
		}

		if center.ManagerID != userID {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't manage this center")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CheckWorkstationOwnership verifies the user manages the center that owns
// the workstation. Expects workstation ID in URL param "id".
func (oc *OwnershipChecker) CheckWorkstationOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		wsID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid workstation ID")
			c.Abort()
			return
		}

		ws, err := oc.workstationRepo.GetByID(c.Request.Context(), wsID)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Workstation not found")
			c.Abort()
			return
		}

		center, err := oc.centerRepo.GetByID(c.Request.Context(), ws.CenterID)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Center not found")
			c.Abort()
			return
		}

		if center.ManagerID != userID {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't manage this resource")
			c.Abort()
			return
		}

		c.Next()
	}
}
