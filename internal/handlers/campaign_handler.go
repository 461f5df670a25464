package handlers

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/digitalagency-id/agency_be/internal/models"
	"github.com/digitalagency-id/agency_be/internal/repository"
	"github.com/digitalagency-id/agency_be/internal/utils"
)

// CampaignHandler covers campaign planning plus the read-only lookups
// (quotations, packages, services) used to pre-fill plan and contract bodies.
type CampaignHandler struct {
	DB        *gorm.DB
	Campaigns repository.CampaignRepository
}

func NewCampaignHandler(db *gorm.DB, campaigns repository.CampaignRepository) *CampaignHandler {
	return &CampaignHandler{DB: db, Campaigns: campaigns}
}

type campaignReq struct {
	ClientID  string `json:"client_id"`
	Name      string `json:"name"`
	Objective string `json:"objective"`
	Body      string `json:"body"`
	Budget    int64  `json:"budget"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

func (h *CampaignHandler) applyReq(cp *models.Campaign, req campaignReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	cp.Name = strings.TrimSpace(req.Name)
	cp.Objective = req.Objective
	cp.Body = req.Body
	cp.Budget = req.Budget

	cp.ClientID = nil
	if req.ClientID != "" {
		id, err := uuid.Parse(req.ClientID)
		if err != nil {
			return errors.New("invalid client_id")
		}
		cp.ClientID = &id
	}

	cp.StartDate = nil
	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return errors.New("invalid start_date")
		}
		cp.StartDate = &t
	}
	cp.EndDate = nil
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return errors.New("invalid end_date")
		}
		cp.EndDate = &t
	}
	if cp.StartDate != nil && cp.EndDate != nil && cp.EndDate.Before(*cp.StartDate) {
		return errors.New("end date must be after start date")
	}

	switch models.CampaignStatus(req.Status) {
	case models.CampaignPlanning, models.CampaignRunning, models.CampaignFinished:
		cp.Status = models.CampaignStatus(req.Status)
	case "":
		// keep current status
	default:
		return errors.New("invalid status")
	}
	return nil
}

func (h *CampaignHandler) List(c *fiber.Ctx) error {
	var clientID *uuid.UUID
	if cid := c.Query("client_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid client_id")
		}
		clientID = &id
	}

	list, err := h.Campaigns.List(c.Context(), clientID)
	if err != nil {
		return fail500(c, "failed to list campaigns")
	}
	return c.JSON(fiber.Map{"success": true, "data": list})
}

func (h *CampaignHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid campaign id")
	}

	cp, err := h.Campaigns.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Campaign not found",
			})
		}
		return fail500(c, "failed to load campaign")
	}
	return c.JSON(fiber.Map{"success": true, "data": cp})
}

func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	var req campaignReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	cp := models.Campaign{Status: models.CampaignPlanning}
	if err := h.applyReq(&cp, req); err != nil {
		return fail200(c, err.Error())
	}

	if err := h.Campaigns.Create(c.Context(), &cp); err != nil {
		return fail500(c, "failed to create campaign")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cp})
}

func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid campaign id")
	}

	cp, err := h.Campaigns.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Campaign not found",
			})
		}
		return fail500(c, "failed to load campaign")
	}

	var req campaignReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	cp.Client = nil
	if err := h.applyReq(cp, req); err != nil {
		return fail200(c, err.Error())
	}

	if err := h.Campaigns.Update(c.Context(), cp); err != nil {
		return fail500(c, "failed to update campaign")
	}
	return c.JSON(fiber.Map{"success": true, "data": cp})
}

func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid campaign id")
	}
	if err := h.Campaigns.Delete(c.Context(), id); err != nil {
		return fail500(c, "failed to delete campaign")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Campaign deleted"})
}

// ========= Lookups =========

func (h *CampaignHandler) ListQuotations(c *fiber.Ctx) error {
	tx := h.DB.Model(&models.Quotation{})
	if cid := c.Query("client_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid client_id")
		}
		tx = tx.Where("client_id = ?", id)
	}

	var quotations []models.Quotation
	if err := tx.Order("created_at DESC").Find(&quotations).Error; err != nil {
		return fail500(c, "failed to list quotations")
	}
	return c.JSON(fiber.Map{"success": true, "data": quotations})
}

func (h *CampaignHandler) ListPackages(c *fiber.Ctx) error {
	var packages []models.Package
	if err := h.DB.Order("price ASC").Find(&packages).Error; err != nil {
		return fail500(c, "failed to list packages")
	}

	// packages go out with opaque ids, same scheme as the rest of the
	// public catalog surface
	out := make([]fiber.Map, 0, len(packages))
	for _, p := range packages {
		encID, _ := utils.EncryptID(p.ID, os.Getenv("ID_ENCRYPT_KEY"))
		out = append(out, fiber.Map{
			"id":          encID,
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"items":       p.Items,
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

func (h *CampaignHandler) ListServices(c *fiber.Ctx) error {
	var services []models.AgencyService
	if err := h.DB.Preload("Items").Order("name ASC").Find(&services).Error; err != nil {
		return fail500(c, "failed to list services")
	}
	return c.JSON(fiber.Map{"success": true, "data": services})
}
