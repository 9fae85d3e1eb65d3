package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"credon/internal/domain"
	"credon/internal/middleware"
	"credon/internal/models"
	"credon/internal/repository"
	"credon/pkg/cloudinary"

	"github.com/gin-gonic/gin"
)

// AdminContentHandler manages notices, support tickets, static pages with
// their document attachments, and platform settings.
type AdminContentHandler struct {
	noticeRepo  *repository.NoticeRepository
	supportRepo *repository.SupportRepository
	pageRepo    *repository.PageRepository
	settingRepo *repository.SettingRepository
	cloud       cloudinary.Client
}

func NewAdminContentHandler(
	noticeRepo *repository.NoticeRepository,
	supportRepo *repository.SupportRepository,
	pageRepo *repository.PageRepository,
	settingRepo *repository.SettingRepository,
	cloud cloudinary.Client,
) *AdminContentHandler {
	return &AdminContentHandler{
		noticeRepo:  noticeRepo,
		supportRepo: supportRepo,
		pageRepo:    pageRepo,
		settingRepo: settingRepo,
		cloud:       cloud,
	}
}

// Notices

func (h *AdminContentHandler) ListNotices(c *gin.Context) {
	list, err := h.noticeRepo.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notices"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminContentHandler) CreateNotice(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
		IsPopup bool   `json:"is_popup"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}
	n := &models.Notice{Title: req.Title, Content: req.Content, IsActive: true, IsPopup: req.IsPopup}
	if err := h.noticeRepo.Create(n); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create notice"})
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *AdminContentHandler) UpdateNotice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	n, err := h.noticeRepo.GetByID(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
		IsPopup *bool   `json:"is_popup"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.IsPopup != nil {
		n.IsPopup = *req.IsPopup
	}
	if err := h.noticeRepo.Update(n); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notice"})
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *AdminContentHandler) ToggleNotice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	n, err := h.noticeRepo.GetByID(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	n.IsActive = !n.IsActive
	if err := h.noticeRepo.Update(n); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notice"})
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *AdminContentHandler) DeleteNotice(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.noticeRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notice deleted"})
}

// Support tickets

func (h *AdminContentHandler) ListTickets(c *gin.Context) {
	list, err := h.supportRepo.ListAll(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tickets"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminContentHandler) UpdateTicket(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	t, err := h.supportRepo.GetByID(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	var req struct {
		AdminReply string `json:"admin_reply"`
		Status     string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.AdminReply != "" {
		t.AdminReply = req.AdminReply
	}
	if req.Status != "" {
		if req.Status != domain.TicketOpen && req.Status != domain.TicketResolved {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be open or resolved"})
			return
		}
		t.Status = req.Status
	}
	if err := h.supportRepo.Update(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ticket"})
		return
	}
	c.JSON(http.StatusOK, t)
}

// Pages and documents

func (h *AdminContentHandler) UpdatePage(c *gin.Context) {
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
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Title != "" {
		p.Title = req.Title
	}
	p.Content = req.Content
	if err := h.pageRepo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update page"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AdminContentHandler) UploadPageDocument(c *gin.Context) {
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
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer f.Close()

	name := c.PostForm("name")
	if name == "" {
		name = fileHeader.Filename
	}
	publicID := fmt.Sprintf("%s-%d%s", pageType, time.Now().UnixNano(),
		strings.ToLower(filepath.Ext(fileHeader.Filename)))
	url, err := h.cloud.UploadDocument(c.Request.Context(), f, "credon/pages", publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	doc := &models.PageDocument{PageID: p.ID, Name: name, URL: url}
	if err := h.pageRepo.AddDocument(doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save document"})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *AdminContentHandler) DeletePageDocument(c *gin.Context) {
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
	docID, ok := paramID(c, "docId")
	if !ok {
		return
	}
	if err := h.pageRepo.DeleteDocument(p.ID, docID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}

// Settings

func (h *AdminContentHandler) GetSettings(c *gin.Context) {
	list, err := h.settingRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminContentHandler) UpdateDepositAddress(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}
	if err := h.settingRepo.Set(domain.SettingDepositAddress, req.Address, middleware.GetEmail(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update deposit address"})
		return
	}
	row, err := h.settingRepo.GetRow(domain.SettingDepositAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load setting"})
		return
	}
	c.JSON(http.StatusOK, row)
}
