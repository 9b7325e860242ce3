package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash-01907/odoo-timepass/internal/models"
	"github.com/Yash-01907/odoo-timepass/internal/realtime"
	"github.com/Yash-01907/odoo-timepass/internal/services/swaps"
)

type SwapHandler struct {
	DB       *gorm.DB
	Service  *swaps.SwapService
	Notifier *realtime.Notifier
}

func NewSwapHandler(db *gorm.DB, service *swaps.SwapService, notifier *realtime.Notifier) *SwapHandler {
	return &SwapHandler{DB: db, Service: service, Notifier: notifier}
}

type CreateSwapRequest struct {
	ProviderID       string  `json:"provider_id"`
	SkillOfferedID   string  `json:"skill_offered_id"`
	SkillRequestedID string  `json:"skill_requested_id"`
	Message          string  `json:"message"`
	ProposedDate     string  `json:"proposed_date"` // RFC3339 or 2006-01-02
	Duration         float64 `json:"duration"`      // hours
	Format           string  `json:"format"`
	Location         string  `json:"location"`
}

type SwapResponse struct {
	ID          string `json:"id"`
	RequesterID string `json:"requester_id"`
	ProviderID  string `json:"provider_id"`

	SkillOffered   models.SkillSnapshot `json:"skill_offered"`
	SkillRequested models.SkillSnapshot `json:"skill_requested"`

	Status       string     `json:"status"`
	Message      string     `json:"message,omitempty"`
	ProposedDate time.Time  `json:"proposed_date"`
	Duration     float64    `json:"duration"`
	Format       string     `json:"format"`
	Location     string     `json:"location,omitempty"`

	ResponseDate    *time.Time `json:"response_date,omitempty"`
	CompletedDate   *time.Time `json:"completed_date,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	IsRatedByRequester bool `json:"is_rated_by_requester"`
	IsRatedByProvider  bool `json:"is_rated_by_provider"`

	CreatedAt time.Time `json:"created_at"`

	Requester *UserMini `json:"requester,omitempty"`
	Provider  *UserMini `json:"provider,omitempty"`
}

func toSwapResponse(s *models.Swap) SwapResponse {
	return SwapResponse{
		ID:                 s.ID.String(),
		RequesterID:        s.RequesterID.String(),
		ProviderID:         s.ProviderID.String(),
		SkillOffered:       s.SkillOffered,
		SkillRequested:     s.SkillRequested,
		Status:             string(s.Status),
		Message:            s.Message,
		ProposedDate:       s.ProposedDate,
		Duration:           s.Duration,
		Format:             string(s.Format),
		Location:           s.Location,
		ResponseDate:       s.ResponseDate,
		CompletedDate:      s.CompletedDate,
		RejectionReason:    s.RejectionReason,
		IsRatedByRequester: s.IsRatedByRequester,
		IsRatedByProvider:  s.IsRatedByProvider,
		CreatedAt:          s.CreatedAt,
		Requester:          toUserMini(s.Requester),
		Provider:           toUserMini(s.Provider),
	}
}

func (h *SwapHandler) reload(id uuid.UUID) (*models.Swap, error) {
	var swap models.Swap
	err := h.DB.
		Preload("Requester").
		Preload("Provider").
		First(&swap, "id = ?", id).Error
	return &swap, err
}

func swapFail(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Swap not found",
		})
	case errors.Is(err, swaps.ErrNotAuthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, swaps.ErrValidation),
		errors.Is(err, swaps.ErrInvalidParty),
		errors.Is(err, swaps.ErrProviderUnavailable),
		errors.Is(err, swaps.ErrSkillMismatch),
		errors.Is(err, swaps.ErrDuplicatePending),
		errors.Is(err, swaps.ErrInvalidTransition):
		status = fiber.StatusBadRequest
	default:
		return serverError(c, "swap operation", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func parseProposedDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Create proposes a swap and pushes a new-request event to the provider.
func (h *SwapHandler) Create(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
	}

	var req CreateSwapRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid provider ID",
		})
	}
	offeredID, err := uuid.Parse(req.SkillOfferedID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid skill ID",
		})
	}
	requestedID, err := uuid.Parse(req.SkillRequestedID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid skill ID",
		})
	}
	proposedDate, err := parseProposedDate(req.ProposedDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid date format",
		})
	}

	swap, err := h.Service.Propose(uid, swaps.ProposalInput{
		ProviderID:       providerID,
		OfferedSkillID:   offeredID,
		RequestedSkillID: requestedID,
		Message:          req.Message,
		ProposedDate:     proposedDate,
		Duration:         req.Duration,
		Format:           models.SwapFormat(req.Format),
		Location:         req.Location,
	})
	if err != nil {
		return swapFail(c, err)
	}

	full, err := h.reload(swap.ID)
	if err != nil {
		return serverError(c, "reload swap", err)
	}

	resp := toSwapResponse(full)
	h.Notifier.NewRequest(c.Context(), full.ProviderID, resp)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Swap request created successfully",
		"swap":    resp,
	})
}

// MySwaps lists the caller's swaps, filterable by role side and status.
func (h *SwapHandler) MySwaps(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
	}

	role := c.Query("role", "all")
	status := c.Query("status")
	page, limit, offset := pageParams(c, 10)

	q := h.DB.Model(&models.Swap{})
	switch role {
	case "requester":
		q = q.Where("requester_id = ?", uid)
	case "provider":
		q = q.Where("provider_id = ?", uid)
	default:
		q = q.Where("requester_id = ? OR provider_id = ?", uid, uid)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serverError(c, "count swaps", err)
	}

	var list []models.Swap
	if err := q.
		Preload("Requester").
		Preload("Provider").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return serverError(c, "list swaps", err)
	}

	out := make([]SwapResponse, 0, len(list))
	for i := range list {
		out = append(out, toSwapResponse(&list[i]))
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"swaps":      out,
		"pagination": pagination(page, limit, total),
	})
}

// History lists the caller's completed swaps, most recently completed first.
func (h *SwapHandler) History(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
	}

	page, limit, offset := pageParams(c, 10)

	q := h.DB.Model(&models.Swap{}).
		Where("(requester_id = ? OR provider_id = ?) AND status = ?",
			uid, uid, models.SwapStatusCompleted)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return serverError(c, "count history", err)
	}

	var list []models.Swap
	if err := q.
		Preload("Requester").
		Preload("Provider").
		Order("completed_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return serverError(c, "list history", err)
	}

	out := make([]SwapResponse, 0, len(list))
	for i := range list {
		out = append(out, toSwapResponse(&list[i]))
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"swaps":      out,
		"pagination": pagination(page, limit, total),
	})
}

func (h *SwapHandler) GetByID(c *fiber.Ctx) error {
	uid, role, err := getAuth(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid swap ID",
		})
	}

	swap, err := h.reload(swapID)
	if err != nil {
		return swapFail(c, err)
	}

	if !swap.IsParticipant(uid) && !isAdmin(role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Not authorized to view this swap",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"swap":    toSwapResponse(swap),
	})
}

type RespondRequest struct {
	Response        string `json:"response"` // accepted | rejected
	RejectionReason string `json:"rejection_reason"`
}

// Respond applies the provider's decision and notifies the requester.
func (h *SwapHandler) Respond(c *fiber.Ctx) error {
	uid, _, err := getAuth(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid swap ID",
		})
	}

	var req RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	swap, err := h.Service.Respond(swapID, uid, models.SwapStatus(req.Response), req.RejectionReason)
	if err != nil {
		return swapFail(c, err)
	}

	full, err := h.reload(swap.ID)
	if err != nil {
		return serverError(c, "reload swap", err)
	}

	resp := toSwapResponse(full)
	h.Notifier.RequestUpdated(c.Context(), full.RequesterID, resp)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Swap " + req.Response + " successfully",
		"swap":    resp,
	})
}

// Cancel moves the swap to cancelled and notifies the other party.
func (h *SwapHandler) Cancel(c *fiber.Ctx) error {
	uid, role, err := getAuth(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid swap ID",
		})
	}

	swap, err := h.Service.Cancel(swapID, uid, isAdmin(role))
	if err != nil {
		return swapFail(c, err)
	}

	full, err := h.reload(swap.ID)
	if err != nil {
		return serverError(c, "reload swap", err)
	}

	resp := toSwapResponse(full)
	if other := full.CounterpartyOf(uid); other != uuid.Nil {
		h.Notifier.RequestUpdated(c.Context(), other, resp)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Swap cancelled successfully",
		"swap":    resp,
	})
}

// Complete marks an accepted swap done and notifies the other party.
func (h *SwapHandler) Complete(c *fiber.Ctx) error {
	uid, role, err := getAuth(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid swap ID",
		})
	}

	swap, err := h.Service.Complete(swapID, uid, isAdmin(role))
	if err != nil {
		return swapFail(c, err)
	}

	full, err := h.reload(swap.ID)
	if err != nil {
		return serverError(c, "reload swap", err)
	}

	resp := toSwapResponse(full)
	if other := full.CounterpartyOf(uid); other != uuid.Nil {
		h.Notifier.RequestUpdated(c.Context(), other, resp)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Swap marked as completed successfully",
		"swap":    resp,
	})
}
