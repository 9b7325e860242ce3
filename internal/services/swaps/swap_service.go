package swaps

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash-01907/odoo-timepass/internal/models"
)

// SwapService owns every status mutation of a swap. Handlers never write
// swap rows directly.
type SwapService struct {
	DB *gorm.DB
}

func NewSwapService(db *gorm.DB) *SwapService {
	return &SwapService{DB: db}
}

// Propose validates the request against both parties' skill lists and creates
// the swap in pending. No other record is touched.
func (s *SwapService) Propose(requesterID uuid.UUID, in ProposalInput) (*models.Swap, error) {
	if err := ValidateProposal(in); err != nil {
		return nil, err
	}
	if requesterID == in.ProviderID {
		return nil, ErrInvalidParty
	}

	var provider models.User
	if err := s.DB.First(&provider, "id = ?", in.ProviderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProviderUnavailable
		}
		return nil, err
	}
	if provider.IsBanned || !provider.IsPublic {
		return nil, ErrProviderUnavailable
	}

	// Both referenced skills must exist, belong to the right party, and be approved.
	requestedSkill, err := s.approvedSkill(in.ProviderID, in.RequestedSkillID)
	if err != nil {
		return nil, err
	}
	offeredSkill, err := s.approvedSkill(requesterID, in.OfferedSkillID)
	if err != nil {
		return nil, err
	}

	var pending int64
	if err := s.DB.Model(&models.Swap{}).
		Where("requester_id = ? AND provider_id = ? AND status = ?",
			requesterID, in.ProviderID, models.SwapStatusPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrDuplicatePending
	}

	swap := models.Swap{
		RequesterID: requesterID,
		ProviderID:  in.ProviderID,
		SkillOffered: models.SkillSnapshot{
			SkillID:     offeredSkill.ID,
			Name:        offeredSkill.Name,
			Description: offeredSkill.Description,
		},
		SkillRequested: models.SkillSnapshot{
			SkillID:     requestedSkill.ID,
			Name:        requestedSkill.Name,
			Description: requestedSkill.Description,
		},
		Status:       models.SwapStatusPending,
		Message:      in.Message,
		ProposedDate: in.ProposedDate,
		Duration:     in.Duration,
		Format:       in.Format,
		Location:     in.Location,
	}

	if err := s.DB.Create(&swap).Error; err != nil {
		return nil, err
	}
	return &swap, nil
}

func (s *SwapService) approvedSkill(ownerID, skillID uuid.UUID) (*models.SkillOffered, error) {
	var skill models.SkillOffered
	err := s.DB.First(&skill, "id = ? AND user_id = ?", skillID, ownerID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrSkillMismatch
	}
	if err != nil {
		return nil, err
	}
	if !skill.IsApproved {
		return nil, ErrSkillMismatch
	}
	return &skill, nil
}

// Respond applies the provider's accept/reject decision.
func (s *SwapService) Respond(swapID, callerID uuid.UUID, decision models.SwapStatus, rejectionReason string) (*models.Swap, error) {
	var swap models.Swap
	if err := s.DB.First(&swap, "id = ?", swapID).Error; err != nil {
		return nil, err
	}

	if err := GuardRespond(&swap, callerID, decision); err != nil {
		return nil, err
	}

	now := time.Now()
	swap.Status = decision
	swap.ResponseDate = &now
	if decision == models.SwapStatusRejected && rejectionReason != "" {
		swap.RejectionReason = rejectionReason
	}

	if err := s.DB.Save(&swap).Error; err != nil {
		return nil, err
	}
	return &swap, nil
}

// Cancel moves a pending or accepted swap to cancelled.
func (s *SwapService) Cancel(swapID, callerID uuid.UUID, isAdmin bool) (*models.Swap, error) {
	var swap models.Swap
	if err := s.DB.First(&swap, "id = ?", swapID).Error; err != nil {
		return nil, err
	}

	if err := GuardCancel(&swap, callerID, isAdmin); err != nil {
		return nil, err
	}

	swap.Status = models.SwapStatusCancelled
	if err := s.DB.Save(&swap).Error; err != nil {
		return nil, err
	}
	return &swap, nil
}

// Complete moves an accepted swap to completed and bumps both participants'
// completed-swap counters. Status write and counter bumps run in one
// transaction so a crash cannot leave them out of sync.
func (s *SwapService) Complete(swapID, callerID uuid.UUID, isAdmin bool) (*models.Swap, error) {
	var swap models.Swap
	if err := s.DB.First(&swap, "id = ?", swapID).Error; err != nil {
		return nil, err
	}

	if err := GuardComplete(&swap, callerID, isAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	swap.Status = models.SwapStatusCompleted
	swap.CompletedDate = &now

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&swap).Error; err != nil {
			return err
		}
		for _, uid := range []uuid.UUID{swap.RequesterID, swap.ProviderID} {
			if err := tx.Model(&models.User{}).
				Where("id = ?", uid).
				Update("completed_swaps", gorm.Expr("completed_swaps + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &swap, nil
}
