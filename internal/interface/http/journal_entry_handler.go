package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/application"
	"github.com/oksasatya/dream-journal-api/pkg/response"
)

type JournalEntryHandler struct {
	Svc    *application.JournalEntryService
	Logger *logrus.Logger
}

func NewJournalEntryHandler(svc *application.JournalEntryService, logger *logrus.Logger) *JournalEntryHandler {
	return &JournalEntryHandler{Svc: svc, Logger: logger}
}

func (h *JournalEntryHandler) Create(c *gin.Context) {
	var req application.CreateJournalEntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	je, err := h.Svc.CreateEntry(c.Request.Context(), requesterID(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, je, "Journal entry created successfully", nil)
}

func (h *JournalEntryHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), requesterID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "User journal entries retrieved successfully", nil)
}

func (h *JournalEntryHandler) Get(c *gin.Context) {
	je, err := h.Svc.Get(c.Request.Context(), c.Param("journalId"), requesterID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, je, "Journal entry retrieved successfully", nil)
}

func (h *JournalEntryHandler) Update(c *gin.Context) {
	var req application.UpdateJournalEntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	je, err := h.Svc.UpdateEntry(c.Request.Context(), c.Param("journalId"), requesterID(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, je, "Journal entry updated successfully", nil)
}

func (h *JournalEntryHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("journalId"), requesterID(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Journal entry deleted successfully", nil)
}
