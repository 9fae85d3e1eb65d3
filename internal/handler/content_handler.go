package handler

import (
	"net/http"

	"credon/internal/middleware"
	"credon/internal/models"
	"credon/internal/repository"

	"github.com/gin-gonic/gin"
)

var knownPageTypes = map[string]bool{"about": true, "terms": true, "privacy": true}

// ContentHandler serves the user-facing content endpoints: notices, support
// tickets and static pages.
type ContentHandler struct {
	noticeRepo  *repository.NoticeRepository
	supportRepo *repository.SupportRepository
	pageRepo    *repository.PageRepository
}

func NewContentHandler(
	noticeRepo *repository.NoticeRepository,
	supportRepo *repository.SupportRepository,
	pageRepo *repository.PageRepository,
) *ContentHandler {
	return &ContentHandler{noticeRepo: noticeRepo, supportRepo: supportRepo, pageRepo: pageRepo}
}

func (h *ContentHandler) ActiveNotices(c *gin.Context) {
	list, err := h.noticeRepo.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notices"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ContentHandler) CreateTicket(c *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t := &models.SupportTicket{
		UserID:  middleware.GetUserID(c),
		Subject: req.Subject,
		Message: req.Message,
		Status:  "open",
	}
	if err := h.supportRepo.Create(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *ContentHandler) MyTickets(c *gin.Context) {
	list, err := h.supportRepo.ListByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tickets"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ContentHandler) GetPage(c *gin.Context) {
	pageType := c.Param("type")
	if !knownPageTypes[pageType] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown page"})
		return
	}
	p, err := h.pageRepo.GetByType(pageType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load page"})
		return
	}
	c.JSON(http.StatusOK, p)
}
