package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash-01907/odoo-timepass/internal/models"
)

type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// Dashboard aggregates the headline platform numbers plus the most
// recent users, swaps and the skill approval backlog.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	var (
		totalUsers    int64
		activeUsers   int64
		bannedUsers   int64
		totalSwaps    int64
		pendingSkills int64
		totalRatings  int64
	)

	activeSince := time.Now().AddDate(0, 0, -30)

	if err := h.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return serverError(c, "dashboard users", err)
	}
	if err := h.DB.Model(&models.User{}).
		Where("last_active >= ?", activeSince).
		Count(&activeUsers).Error; err != nil {
		return serverError(c, "dashboard active users", err)
	}
	if err := h.DB.Model(&models.User{}).
		Where("is_banned = ?", true).
		Count(&bannedUsers).Error; err != nil {
		return serverError(c, "dashboard banned users", err)
	}
	if err := h.DB.Model(&models.Swap{}).Count(&totalSwaps).Error; err != nil {
		return serverError(c, "dashboard swaps", err)
	}
	if err := h.DB.Model(&models.SkillOffered{}).
		Where("is_approved = ? AND rejection_reason = ''", false).
		Count(&pendingSkills).Error; err != nil {
		return serverError(c, "dashboard pending skills", err)
	}
	if err := h.DB.Model(&models.Rating{}).Count(&totalRatings).Error; err != nil {
		return serverError(c, "dashboard ratings", err)
	}

	type statusRow struct {
		Status models.SwapStatus
		Count  int64
	}
	var statusRows []statusRow
	if err := h.DB.Model(&models.Swap{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return serverError(c, "dashboard swap statuses", err)
	}
	swapsByStatus := fiber.Map{}
	for _, r := range statusRows {
		swapsByStatus[string(r.Status)] = r.Count
	}

	var recentUsers []models.User
	if err := h.DB.
		Order("created_at DESC").
		Limit(5).
		Find(&recentUsers).Error; err != nil {
		return serverError(c, "dashboard recent users", err)
	}

	var recentSwaps []models.Swap
	if err := h.DB.
		Preload("Requester").
		Preload("Provider").
		Order("created_at DESC").
		Limit(5).
		Find(&recentSwaps).Error; err != nil {
		return serverError(c, "dashboard recent swaps", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"total_users":     totalUsers,
			"active_users":    activeUsers,
			"banned_users":    bannedUsers,
			"total_swaps":     totalSwaps,
			"swaps_by_status": swapsByStatus,
			"pending_skills":  pendingSkills,
			"total_ratings":   totalRatings,
		},
		"recent_users": recentUsers,
		"recent_swaps": recentSwaps,
	})
}

func (h *AdminHandler) GetAllUsers(c *fiber.Ctx) error {
	search := strings.TrimSpace(c.Query("search"))
	status := c.Query("status")
	page, limit, offset := pageParams(c, 20)

	q := h.DB.Model(&models.User{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	switch status {
	case "banned":
		q = q.Where("is_banned = ?", true)
	case "active":
		q = q.Where("is_banned = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serverError(c, "count users", err)
	}

	var users []models.User
	if err := q.
		Preload("SkillsOffered").
		Preload("SkillsWanted").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return serverError(c, "list users", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"users":      users,
		"pagination": pagination(page, limit, total),
	})
}

func (h *AdminHandler) BanUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid user ID",
		})
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}
	if strings.TrimSpace(body.Reason) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Ban reason is required",
		})
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}
	if user.Role == models.RoleAdmin {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot ban an admin account",
		})
	}

	user.IsBanned = true
	user.BanReason = body.Reason
	if err := h.DB.Save(&user).Error; err != nil {
		return serverError(c, "ban user", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User banned successfully",
		"user":    user,
	})
}

func (h *AdminHandler) UnbanUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid user ID",
		})
	}

	res := h.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_banned":  false,
			"ban_reason": "",
		})
	if res.Error != nil {
		return serverError(c, "unban user", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User unbanned successfully",
	})
}

// GetPendingSkills lists offered skills awaiting moderation. Skills that
// were already rejected carry a rejection reason and are excluded.
func (h *AdminHandler) GetPendingSkills(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c, 20)

	q := h.DB.Model(&models.SkillOffered{}).
		Where("is_approved = ? AND rejection_reason = ''", false)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serverError(c, "count pending skills", err)
	}

	type row struct {
		models.SkillOffered
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}
	var rows []row
	if err := h.DB.
		Table("skills_offered").
		Select("skills_offered.*, users.name as user_name, users.email as user_email").
		Joins("JOIN users ON users.id = skills_offered.user_id").
		Where("skills_offered.is_approved = ? AND skills_offered.rejection_reason = ''", false).
		Order("skills_offered.created_at ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error; err != nil {
		return serverError(c, "list pending skills", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"skills":     rows,
		"pagination": pagination(page, limit, total),
	})
}

func (h *AdminHandler) ApproveSkill(c *fiber.Ctx) error {
	skillID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid skill ID",
		})
	}

	res := h.DB.Model(&models.SkillOffered{}).
		Where("id = ?", skillID).
		Updates(map[string]interface{}{
			"is_approved":      true,
			"rejection_reason": "",
		})
	if res.Error != nil {
		return serverError(c, "approve skill", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Skill not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Skill approved successfully",
	})
}

func (h *AdminHandler) RejectSkill(c *fiber.Ctx) error {
	skillID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid skill ID",
		})
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}
	if strings.TrimSpace(body.Reason) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Rejection reason is required",
		})
	}

	res := h.DB.Model(&models.SkillOffered{}).
		Where("id = ?", skillID).
		Updates(map[string]interface{}{
			"is_approved":      false,
			"rejection_reason": body.Reason,
		})
	if res.Error != nil {
		return serverError(c, "reject skill", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Skill not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Skill rejected",
	})
}

func (h *AdminHandler) GetAllSwaps(c *fiber.Ctx) error {
	status := c.Query("status")
	page, limit, offset := pageParams(c, 20)

	q := h.DB.Model(&models.Swap{})
	if status != "" {
		if !models.ValidSwapStatus(models.SwapStatus(status)) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid status filter",
			})
		}
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serverError(c, "count swaps", err)
	}

	var swaps []models.Swap
	if err := q.
		Preload("Requester").
		Preload("Provider").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&swaps).Error; err != nil {
		return serverError(c, "list swaps", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"swaps":      swaps,
		"pagination": pagination(page, limit, total),
	})
}

type MessageRequest struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Type         string     `json:"type"`
	Priority     string     `json:"priority"`
	ScheduledFor *time.Time `json:"scheduled_for"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

func (h *AdminHandler) CreateMessage(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
	}

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	errs := FieldErrors{}
	if n := len(strings.TrimSpace(req.Title)); n < 3 || n > 200 {
		errs.Add("title", "Title must be between 3 and 200 characters")
	}
	if n := len(strings.TrimSpace(req.Content)); n < 1 || n > 2000 {
		errs.Add("content", "Content must be between 1 and 2000 characters")
	}
	if !models.ValidMessageType(models.MessageType(req.Type)) {
		errs.Add("type", "Invalid message type")
	}
	if req.Priority == "" {
		req.Priority = string(models.PriorityMedium)
	}
	if !models.ValidMessagePriority(models.MessagePriority(req.Priority)) {
		errs.Add("priority", "Invalid priority")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	msg := models.AdminMessage{
		Title:    strings.TrimSpace(req.Title),
		Content:  strings.TrimSpace(req.Content),
		Type:     models.MessageType(req.Type),
		Priority: models.MessagePriority(req.Priority),
		IsActive: true,
		SentByID: uid,
	}
	if req.ScheduledFor != nil {
		msg.ScheduledFor = *req.ScheduledFor
	} else {
		msg.ScheduledFor = time.Now()
	}
	msg.ExpiresAt = req.ExpiresAt

	if err := h.DB.Create(&msg).Error; err != nil {
		return serverError(c, "create message", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Platform message created",
		"data":    msg,
	})
}

// GetMessages lists platform messages. Admins see everything; regular
// users only see active messages whose window is open.
func (h *AdminHandler) GetMessages(c *fiber.Ctx) error {
	_, role, err := getAuth(c)
	if err != nil {
		return err
	}

	page, limit, offset := pageParams(c, 20)

	q := h.DB.Model(&models.AdminMessage{})
	if !isAdmin(role) {
		now := time.Now()
		q = q.Where("is_active = ?", true).
			Where("scheduled_for <= ?", now).
			Where("expires_at IS NULL OR expires_at > ?", now)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serverError(c, "count messages", err)
	}

	var msgs []models.AdminMessage
	if err := q.
		Preload("SentBy").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error; err != nil {
		return serverError(c, "list messages", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"messages":   msgs,
		"pagination": pagination(page, limit, total),
	})
}

func (h *AdminHandler) DeactivateMessage(c *fiber.Ctx) error {
	msgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid message ID",
		})
	}

	res := h.DB.Model(&models.AdminMessage{}).
		Where("id = ?", msgID).
		Update("is_active", false)
	if res.Error != nil {
		return serverError(c, "deactivate message", res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Message not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Message deactivated",
	})
}

// UserReport returns monthly registration counts for the last year.
func (h *AdminHandler) UserReport(c *fiber.Ctx) error {
	since := time.Now().AddDate(-1, 0, 0)

	type row struct {
		Month string `json:"month"`
		Count int64  `json:"count"`
	}
	var rows []row
	if err := h.DB.Model(&models.User{}).
		Select("to_char(created_at, 'YYYY-MM') as month, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error; err != nil {
		return serverError(c, "user report", err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"registrations": rows,
	})
}

// SwapReport returns per-status counts over the last year plus the
// average hours between proposal and provider response.
func (h *AdminHandler) SwapReport(c *fiber.Ctx) error {
	since := time.Now().AddDate(-1, 0, 0)

	type trendRow struct {
		Month  string            `json:"month"`
		Status models.SwapStatus `json:"status"`
		Count  int64             `json:"count"`
	}
	var trends []trendRow
	if err := h.DB.Model(&models.Swap{}).
		Select("to_char(created_at, 'YYYY-MM') as month, status, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("month, status").
		Order("month ASC").
		Scan(&trends).Error; err != nil {
		return serverError(c, "swap report trends", err)
	}

	var avgResponseHours float64
	if err := h.DB.Model(&models.Swap{}).
		Select("COALESCE(AVG(EXTRACT(EPOCH FROM (response_date - created_at)) / 3600), 0)").
		Where("response_date IS NOT NULL").
		Scan(&avgResponseHours).Error; err != nil {
		return serverError(c, "swap report response time", err)
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"trends":             trends,
		"avg_response_hours": avgResponseHours,
	})
}

// FeedbackReport returns the score histogram and category averages
// across all ratings.
func (h *AdminHandler) FeedbackReport(c *fiber.Ctx) error {
	type histRow struct {
		Score int   `json:"score"`
		Count int64 `json:"count"`
	}
	var hist []histRow
	if err := h.DB.Model(&models.Rating{}).
		Select("score, COUNT(*) as count").
		Group("score").
		Order("score ASC").
		Scan(&hist).Error; err != nil {
		return serverError(c, "feedback histogram", err)
	}

	var avgs struct {
		AvgScore           float64
		AvgCommunication   float64
		AvgPunctuality     float64
		AvgSkillQuality    float64
		AvgProfessionalism float64
	}
	if err := h.DB.Model(&models.Rating{}).
		Select(`
			COALESCE(AVG(score), 0) as avg_score,
			COALESCE(AVG(communication), 0) as avg_communication,
			COALESCE(AVG(punctuality), 0) as avg_punctuality,
			COALESCE(AVG(skill_quality), 0) as avg_skill_quality,
			COALESCE(AVG(professionalism), 0) as avg_professionalism
		`).
		Scan(&avgs).Error; err != nil {
		return serverError(c, "feedback averages", err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"histogram": hist,
		"averages": fiber.Map{
			"score":           avgs.AvgScore,
			"communication":   avgs.AvgCommunication,
			"punctuality":     avgs.AvgPunctuality,
			"skill_quality":   avgs.AvgSkillQuality,
			"professionalism": avgs.AvgProfessionalism,
		},
	})
}
