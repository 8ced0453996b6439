package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leetboard/internal/modules/tracker/dto"
	tracker "leetboard/internal/modules/tracker/service"
	"leetboard/pkg/response"
	"leetboard/pkg/validator"
)

type TrackerHandler struct {
	service tracker.TrackerService
}

func NewTrackerHandler(service tracker.TrackerService) *TrackerHandler {
	return &TrackerHandler{service: service}
}

func (h *TrackerHandler) AddUsers(c *gin.Context) {
	var req dto.AddUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.AddUsers(c.Request.Context(), req.Usernames)
	if err != nil {
		// Nothing new to add is still worth telling the user which names
		// were already tracked.
		if result != nil {
			c.JSON(http.StatusConflict, gin.H{
				"error":           err.Error(),
				"already_tracked": result.AlreadyTracked,
			})
			return
		}
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func (h *TrackerHandler) GetUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (h *TrackerHandler) ReplaceUsers(c *gin.Context) {
	var req dto.ReplaceUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	users, err := h.service.ReplaceUsers(c.Request.Context(), req.Usernames)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users, "message": "user list updated"})
}

func (h *TrackerHandler) RemoveUser(c *gin.Context) {
	var req dto.RemoveUserRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.RemoveUser(c.Request.Context(), req.Username); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user removed"})
}
