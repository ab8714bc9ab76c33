package services

import (
	"fmt"
	"time"

	"github.com/harhspalod/ecommerce-main/internal/database/repository"
	"github.com/harhspalod/ecommerce-main/internal/models"
)

// Placeholder stats math carried over from the source dashboard: revenue is a
// flat amount per triggered call and progress measures against a fixed target
// of 10 calls. This is mock derivation, not real revenue attribution.
const (
	revenuePerCall      = 50.0
	campaignTriggerGoal = 10
)

type CampaignService struct {
	campaignRepo *repository.CampaignRepository
	productRepo  *repository.ProductRepository
	triggerRepo  *repository.CallTriggerRepository
}

func NewCampaignService(
	campaignRepo *repository.CampaignRepository,
	productRepo *repository.ProductRepository,
	triggerRepo *repository.CallTriggerRepository,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		productRepo:  productRepo,
		triggerRepo:  triggerRepo,
	}
}

// CreateCampaign creates a new campaign
func (s *CampaignService) CreateCampaign(req *models.CreateCampaignRequest) (*models.CampaignResponse, error) {
	if req.ProductID != nil {
		if _, err := s.productRepo.GetByID(*req.ProductID); err != nil {
			return nil, notFoundOr(err, "Product")
		}
	}

	status := req.Status
	if status == "" {
		status = "Active"
	}

	campaign := &models.Campaign{
		Name:        req.Name,
		Type:        req.Type,
		Status:      status,
		Condition:   req.Condition,
		Discount:    req.Discount,
		ProductID:   req.ProductID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return s.toResponse(campaign)
}

// GetCampaigns retrieves all campaigns with derived stats
func (s *CampaignService) GetCampaigns() ([]*models.CampaignResponse, error) {
	campaigns, err := s.campaignRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	responses := make([]*models.CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		responses[i], err = s.toResponse(campaign)
		if err != nil {
			return nil, err
		}
	}
	return responses, nil
}

// GetCampaignByID retrieves a campaign by ID with derived stats
func (s *CampaignService) GetCampaignByID(id string) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Campaign")
	}
	return s.toResponse(campaign)
}

// GetCampaignStats derives the dashboard counters for one campaign
func (s *CampaignService) GetCampaignStats(id string) (*models.CampaignStats, error) {
	if _, err := s.campaignRepo.GetByID(id); err != nil {
		return nil, notFoundOr(err, "Campaign")
	}
	stats, err := s.deriveStats(id)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// UpdateCampaign updates a campaign
func (s *CampaignService) UpdateCampaign(id string, req *models.UpdateCampaignRequest) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Campaign")
	}
	if req.ProductID != nil {
		if _, err := s.productRepo.GetByID(*req.ProductID); err != nil {
			return nil, notFoundOr(err, "Product")
		}
	}

	campaign.Name = req.Name
	campaign.Type = req.Type
	campaign.Status = req.Status
	campaign.Condition = req.Condition
	campaign.Discount = req.Discount
	campaign.ProductID = req.ProductID
	campaign.StartDate = req.StartDate
	campaign.EndDate = req.EndDate
	campaign.Description = req.Description
	// Drop the preloaded relation so Save cannot re-link a cleared ProductID
	campaign.Product = nil

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return s.GetCampaignByID(id)
}

// DeleteCampaign deletes a campaign; its call triggers remain as audit rows
func (s *CampaignService) DeleteCampaign(id string) error {
	if _, err := s.campaignRepo.GetByID(id); err != nil {
		return notFoundOr(err, "Campaign")
	}
	if err := s.campaignRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

// deriveStats recomputes the placeholder counters from call trigger counts
// on every read; nothing is cached or stored
func (s *CampaignService) deriveStats(campaignID string) (models.CampaignStats, error) {
	count, err := s.triggerRepo.CountByCampaign(campaignID)
	if err != nil {
		return models.CampaignStats{}, fmt.Errorf("failed to count call triggers: %w", err)
	}
	progress := int(count) * 100 / campaignTriggerGoal
	if progress > 100 {
		progress = 100
	}
	return models.CampaignStats{
		Triggered: int(count),
		Revenue:   float64(count) * revenuePerCall,
		Progress:  progress,
	}, nil
}

func (s *CampaignService) toResponse(campaign *models.Campaign) (*models.CampaignResponse, error) {
	stats, err := s.deriveStats(campaign.ID)
	if err != nil {
		return nil, err
	}

	productName := ""
	if campaign.Product != nil {
		productName = campaign.Product.Name
	}

	return &models.CampaignResponse{
		ID:          campaign.ID,
		Name:        campaign.Name,
		Type:        campaign.Type,
		Status:      campaign.Status,
		Condition:   campaign.Condition,
		Discount:    campaign.Discount,
		ProductID:   campaign.ProductID,
		ProductName: productName,
		StartDate:   campaign.StartDate,
		EndDate:     campaign.EndDate,
		Description: campaign.Description,
		Stats:       stats,
		CreatedAt:   campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   campaign.UpdatedAt.Format(time.RFC3339),
	}, nil
}
