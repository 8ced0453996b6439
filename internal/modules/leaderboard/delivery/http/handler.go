package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"leetboard/internal/modules/leaderboard/dto"
	leaderboard "leetboard/internal/modules/leaderboard/service"
	"leetboard/pkg/apperror"
	"leetboard/pkg/response"
)

type LeaderboardHandler struct {
	service  leaderboard.LeaderboardService
	upgrader websocket.Upgrader
}

func NewLeaderboardHandler(service leaderboard.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS is handled at the router level
			},
		},
	}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	snapshot, err := h.service.Snapshot(c.Request.Context(), nil)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshot.Board})
}

func (h *LeaderboardHandler) ExportCSV(c *gin.Context) {
	data, err := h.service.ExportCSV(c.Request.Context())
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leetcode_leaderboard.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *LeaderboardHandler) CompareSkills(c *gin.Context) {
	skill := c.Query("skill")

	comparison, err := h.service.CompareSkills(c.Request.Context(), skill)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comparison})
}

func (h *LeaderboardHandler) GetHeatmap(c *gin.Context) {
	heatmap, err := h.service.Heatmap(c.Request.Context())
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": heatmap})
}

func (h *LeaderboardHandler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cache cleared"})
}

// wsMessage is one frame on the live feed: progress events while fetching,
// then a final board (or info) frame.
type wsMessage struct {
	Type     string             `json:"type"`
	Progress *dto.ProgressEvent `json:"progress,omitempty"`
	Board    *dto.Board         `json:"board,omitempty"`
	Message  string             `json:"message,omitempty"`
}

// HandleLive streams per-user fetch progress over a websocket while the
// board is being built, mirroring the dashboard's progress bar.
func (h *LeaderboardHandler) HandleLive(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	snapshot, err := h.service.Snapshot(c.Request.Context(), func(event dto.ProgressEvent) {
		progress := event
		if writeErr := conn.WriteJSON(wsMessage{Type: "progress", Progress: &progress}); writeErr != nil {
			log.Printf("[WS] write failed: %v", writeErr)
		}
	})
	if err != nil {
		_ = conn.WriteJSON(wsMessage{Type: "info", Message: err.Error()})
		return
	}

	if err := conn.WriteJSON(wsMessage{Type: "board", Board: &snapshot.Board}); err != nil {
		log.Printf("[WS] write failed: %v", err)
	}
}

// respondPipelineError keeps the two halting pipeline conditions
// informational: the frontend renders the message, not an error page.
func respondPipelineError(c *gin.Context, err error) {
	if errors.Is(err, apperror.ErrNoTrackedUsers) || errors.Is(err, apperror.ErrNoData) {
		c.JSON(http.StatusOK, gin.H{"data": nil, "message": err.Error()})
		return
	}
	response.ResponseError(c, err)
}
