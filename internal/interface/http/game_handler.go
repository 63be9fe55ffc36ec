package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/application"
	"github.com/oksasatya/dream-journal-api/pkg/response"
)

type GameHandler struct {
	Svc    *application.GameService
	Logger *logrus.Logger
}

func NewGameHandler(svc *application.GameService, logger *logrus.Logger) *GameHandler {
	return &GameHandler{Svc: svc, Logger: logger}
}

func (h *GameHandler) Create(c *gin.Context) {
	var req application.CreateGameInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	g, err := h.Svc.CreateGame(c.Request.Context(), requesterID(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, g, "Game created successfully", nil)
}

func (h *GameHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), requesterID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "User games retrieved successfully", nil)
}

func (h *GameHandler) Get(c *gin.Context) {
	g, err := h.Svc.Get(c.Request.Context(), c.Param("gameId"), requesterID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, g, "Game retrieved successfully", nil)
}

func (h *GameHandler) Update(c *gin.Context) {
	var req application.UpdateGameInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	g, err := h.Svc.UpdateGame(c.Request.Context(), c.Param("gameId"), requesterID(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, g, "Game updated successfully", nil)
}

func (h *GameHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("gameId"), requesterID(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Game deleted successfully", nil)
}
