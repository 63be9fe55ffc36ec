package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/application"
	"github.com/oksasatya/dream-journal-api/pkg/response"
)

type GameResultHandler struct {
	Svc    *application.GameResultService
	Logger *logrus.Logger
}

func NewGameResultHandler(svc *application.GameResultService, logger *logrus.Logger) *GameResultHandler {
	return &GameResultHandler{Svc: svc, Logger: logger}
}

func (h *GameResultHandler) Create(c *gin.Context) {
	var req application.CreateGameResultInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	gr, err := h.Svc.RecordResult(c.Request.Context(), requesterID(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gr, "Game result saved successfully", nil)
}

func (h *GameResultHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), requesterID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "User game results retrieved successfully", nil)
}

func (h *GameResultHandler) ListByGame(c *gin.Context) {
	items, err := h.Svc.ListByGame(c.Request.Context(), requesterID(c), c.Param("gameId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "Game results for this game retrieved successfully", nil)
}

func (h *GameResultHandler) Get(c *gin.Context) {
	gr, err := h.Svc.Get(c.Request.Context(), c.Param("resultId"), requesterID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gr, "Game result retrieved successfully", nil)
}

func (h *GameResultHandler) Update(c *gin.Context) {
	var req application.UpdateGameResultInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	gr, err := h.Svc.UpdateResult(c.Request.Context(), c.Param("resultId"), requesterID(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gr, "Game result updated successfully", nil)
}

func (h *GameResultHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("resultId"), requesterID(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Game result deleted successfully", nil)
}
