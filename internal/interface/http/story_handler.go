package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/application"
	"github.com/oksasatya/dream-journal-api/pkg/response"
)

type StoryHandler struct {
	Svc    *application.StoryService
	Logger *logrus.Logger
}

func NewStoryHandler(svc *application.StoryService, logger *logrus.Logger) *StoryHandler {
	return &StoryHandler{Svc: svc, Logger: logger}
}

func (h *StoryHandler) Create(c *gin.Context) {
	var req application.CreateStoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	st, err := h.Svc.CreateStory(c.Request.Context(), requesterID(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, st, "Story created successfully", nil)
}

func (h *StoryHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), requesterID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "User stories retrieved successfully", nil)
}

func (h *StoryHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	items, err := h.Svc.SearchStories(c.Request.Context(), requesterID(c), c.Query("q"), size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "Stories search completed", nil)
}

func (h *StoryHandler) Get(c *gin.Context) {
	st, err := h.Svc.Get(c.Request.Context(), c.Param("storyId"), requesterID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, st, "Story retrieved successfully", nil)
}

func (h *StoryHandler) Update(c *gin.Context) {
	var req application.UpdateStoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	st, err := h.Svc.UpdateStory(c.Request.Context(), c.Param("storyId"), requesterID(c), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, st, "Story updated successfully", nil)
}

func (h *StoryHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteStory(c.Request.Context(), c.Param("storyId"), requesterID(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Story deleted successfully", nil)
}
