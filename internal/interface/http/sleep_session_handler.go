package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/application"
	"github.com/oksasatya/dream-journal-api/pkg/response"
)

type SleepSessionHandler struct {
	Svc    *application.SleepSessionService
	Logger *logrus.Logger
}

func NewSleepSessionHandler(svc *application.SleepSessionService, logger *logrus.Logger) *SleepSessionHandler {
	return &SleepSessionHandler{Svc: svc, Logger: logger}
}

func (h *SleepSessionHandler) Create(c *gin.Context) {
	var req application.CreateSleepSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ss, err := h.Svc.CreateSession(c.Request.Context(), requesterID(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, ss, "Sleep session created successfully", nil)
}

func (h *SleepSessionHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), requesterID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "User sleep sessions retrieved successfully", nil)
}

func (h *SleepSessionHandler) Latest(c *gin.Context) {
	ss, err := h.Svc.LatestSession(c.Request.Context(), requesterID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ss, "Latest sleep session retrieved successfully", nil)
}

func (h *SleepSessionHandler) Get(c *gin.Context) {
	ss, err := h.Svc.Get(c.Request.Context(), c.Param("sessionId"), requesterID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ss, "Sleep session retrieved successfully", nil)
}

func (h *SleepSessionHandler) Update(c *gin.Context) {
	var req application.UpdateSleepSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ss, err := h.Svc.UpdateSession(c.Request.Context(), c.Param("sessionId"), requesterID(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ss, "Sleep session updated successfully", nil)
}

func (h *SleepSessionHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("sessionId"), requesterID(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Sleep session deleted successfully", nil)
}
