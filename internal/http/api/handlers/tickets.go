package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostwire/hostpanel/internal/db"
	"github.com/hostwire/hostpanel/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SupportHandler serves support tickets and the admin-side conversation.
type SupportHandler struct {
	db *gorm.DB
}

// NewSupportHandler constructs a SupportHandler.
func NewSupportHandler(conn *gorm.DB) *SupportHandler {
	return &SupportHandler{db: conn}
}

// ListTickets returns tickets newest first, with their users and full
// conversations, optionally filtered by status or a subject search.
func (h *SupportHandler) ListTickets(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).
		Preload("User").
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("timestamp ASC")
		}).
		Order("date DESC")

	if status := strings.ToUpper(strings.TrimSpace(c.Query("status"))); status != "" && status != "ALL" {
		query = query.Where("status = ?", status)
	}
	if category := strings.ToUpper(strings.TrimSpace(c.Query("category"))); category != "" && category != "ALL" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := db.NormalizeLikePattern(h.db, "%"+search+"%")
		query = query.Select("tickets.*").
			Joins("LEFT JOIN users ON users.id = tickets.user_id").
			Where(db.CaseInsensitiveLikeExpr(h.db, "tickets.subject")+
				" OR "+db.CaseInsensitiveLikeExpr(h.db, "tickets.ticket_code")+
				" OR "+db.CaseInsensitiveLikeExpr(h.db, "users.full_name")+
				" OR "+db.CaseInsensitiveLikeExpr(h.db, "users.email"),
				pattern, pattern, pattern, pattern)
	}

	var tickets []models.Ticket
	if errFind := query.Find(&tickets).Error; errFind != nil {
		log.WithError(errFind).Error("list tickets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": tickets})
}

// replyRequest is the admin reply payload.
type replyRequest struct {
	Content string `json:"content"`
}

// Reply appends an admin message to the ticket conversation. The ticket is
// addressed by its human-facing code, not the row id.
func (h *SupportHandler) Reply(c *gin.Context) {
	var req replyRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reply content is required"})
		return
	}

	ticket, ok := h.findTicket(c)
	if !ok {
		return
	}

	message := models.Message{
		ID:       uuid.NewString(),
		Content:  strings.TrimSpace(req.Content),
		Sender:   models.MessageSenderAdmin,
		TicketID: ticket.ID,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&message).Error; errCreate != nil {
		log.WithError(errCreate).Error("create ticket reply")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reply"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Reply sent successfully",
		"data":    message,
	})
}

// statusRequest is the ticket status change payload.
type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus transitions a ticket between OPEN and RESOLVED.
func (h *SupportHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != models.TicketStatusOpen && status != models.TicketStatusResolved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be OPEN or RESOLVED"})
		return
	}

	ticket, ok := h.findTicket(c)
	if !ok {
		return
	}

	if errSave := h.db.WithContext(c.Request.Context()).
		Model(&ticket).
		Update("status", status).Error; errSave != nil {
		log.WithError(errSave).Error("update ticket status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket status"})
		return
	}
	ticket.Status = status

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Ticket status updated successfully",
		"data":    ticket,
	})
}

// findTicket resolves the :ticketId route param against the ticket code,
// writing the error response on failure.
func (h *SupportHandler) findTicket(c *gin.Context) (models.Ticket, bool) {
	var ticket models.Ticket
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("ticket_code = ?", c.Param("ticketId")).
		First(&ticket).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		} else {
			log.WithError(errFind).Error("find ticket")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ticket"})
		}
		return models.Ticket{}, false
	}
	return ticket, true
}
