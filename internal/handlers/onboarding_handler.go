package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digitalagency-id/agency_be/internal/onboarding"
	"github.com/digitalagency-id/agency_be/internal/repository"
	"github.com/digitalagency-id/agency_be/internal/validators"
)

// OnboardingHandler is the HTTP surface of the wizard draft engine. One
// in-progress draft per staff account, resumable across reloads.
type OnboardingHandler struct {
	Store   onboarding.DraftStore
	Clients repository.ClientRepository
	Log     *zap.Logger
}

func NewOnboardingHandler(store onboarding.DraftStore, clients repository.ClientRepository, log *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{Store: store, Clients: clients, Log: log}
}

func (h *OnboardingHandler) wizard(c *fiber.Ctx) (*onboarding.Wizard, error) {
	userID, err := getAuth(c)
	if err != nil {
		return nil, err
	}

	w, err := onboarding.Resume(c.Context(), userID.String(), h.Store, h.Clients, h.Log)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load draft")
	}

	// editing an existing client reuses the same wizard, submit then updates
	if cid := c.Query("client_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid client_id")
		}
		w.ForClient(id)
	}

	return w, nil
}

func stateResponse(w *onboarding.Wizard) fiber.Map {
	d := w.Draft()
	return fiber.Map{
		"step":     w.Step(),
		"steps":    onboarding.StepCount,
		"terminal": w.Terminal(),
		"draft":    d,
		"warnings": formatWarnings(d),
	}
}

// formatWarnings runs the advisory format checks. Warnings are surfaced next
// to their fields but never stop navigation or submission.
func formatWarnings(d onboarding.Draft) fiber.Map {
	warnings := fiber.Map{}
	if !validators.Email(d.Personal.Email) {
		warnings["personal.email"] = "Invalid email format"
	}
	if !validators.Phone(d.Personal.Phone) {
		warnings["personal.phone"] = "Invalid phone number"
	}
	if !validators.Phone(d.Contact.BusinessPhone) {
		warnings["contact.business_phone"] = "Invalid phone number"
	}
	if !validators.Phone(d.Contact.BusinessWhatsApp) {
		warnings["contact.business_whatsapp"] = "Invalid phone number"
	}
	if !validators.Email(d.Contact.BusinessEmail) {
		warnings["contact.business_email"] = "Invalid email format"
	}
	if !validators.URL(d.Contact.Website) {
		warnings["contact.website"] = "Invalid URL"
	}
	return warnings
}

func (h *OnboardingHandler) Get(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": stateResponse(w)})
}

func (h *OnboardingHandler) Advance(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var data onboarding.StepData
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&data); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
	}

	if err := w.Advance(c.Context(), &data); err != nil {
		return fail500(c, "failed to save draft")
	}
	return c.JSON(fiber.Map{"success": true, "data": stateResponse(w)})
}

func (h *OnboardingHandler) Retreat(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var data onboarding.StepData
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&data); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
	}

	if err := w.Retreat(c.Context(), &data); err != nil {
		return fail500(c, "failed to save draft")
	}
	return c.JSON(fiber.Map{"success": true, "data": stateResponse(w)})
}

func (h *OnboardingHandler) Jump(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	index, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid step index")
	}

	if err := w.JumpTo(c.Context(), index); err != nil {
		return fail200(c, "step index out of range")
	}
	return c.JSON(fiber.Map{"success": true, "data": stateResponse(w)})
}

func (h *OnboardingHandler) AddBranch(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var b onboarding.BranchForm
	if err := c.BodyParser(&b); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	b.Phone = validators.NormalizePhone(b.Phone)

	if err := w.AddBranch(c.Context(), b); err != nil {
		if errors.Is(err, onboarding.ErrNameRequired) {
			return fail200(c, "Branch name is required")
		}
		return fail500(c, "failed to save draft")
	}
	return c.JSON(fiber.Map{"success": true, "data": stateResponse(w)})
}

func (h *OnboardingHandler) AddCompetitor(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var cp onboarding.CompetitorForm
	if err := c.BodyParser(&cp); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := w.AddCompetitor(c.Context(), cp); err != nil {
		if errors.Is(err, onboarding.ErrNameRequired) {
			return fail200(c, "Competitor name is required")
		}
		return fail500(c, "failed to save draft")
	}
	return c.JSON(fiber.Map{"success": true, "data": stateResponse(w)})
}

func (h *OnboardingHandler) AddSegment(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	var s onboarding.SegmentForm
	if err := c.BodyParser(&s); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := w.AddSegment(c.Context(), s); err != nil {
		if errors.Is(err, onboarding.ErrNameRequired) {
			return fail200(c, "Segment name is required")
		}
		return fail500(c, "failed to save draft")
	}
	return c.JSON(fiber.Map{"success": true, "data": stateResponse(w)})
}

func (h *OnboardingHandler) Submit(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}

	res, err := w.Submit(c.Context())
	if err != nil {
		// primary entity write failed: single alert, nothing partially reported
		return fail200(c, "Failed to save client: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Onboarding submitted",
		"data":    res,
	})
}

func (h *OnboardingHandler) Reset(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	if err := w.Reset(c.Context()); err != nil {
		return fail500(c, "failed to reset draft")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Draft cleared"})
}
