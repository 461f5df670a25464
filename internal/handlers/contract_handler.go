package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/digitalagency-id/agency_be/internal/contracts"
	"github.com/digitalagency-id/agency_be/internal/models"
	"github.com/digitalagency-id/agency_be/internal/repository"
)

type ContractHandler struct {
	Service *contracts.Service
}

func NewContractHandler(service *contracts.Service) *ContractHandler {
	return &ContractHandler{Service: service}
}

// ContractRequest is the request body for creating/updating a contract
type ContractRequest struct {
	ClientID         string   `json:"client_id"`
	CustomClientName string   `json:"custom_client_name"`
	QuotationID      *uint    `json:"quotation_id"`
	Terms            []string `json:"terms"`
	Body             string   `json:"body"`
	StartDate        string   `json:"start_date"` // ISO format: 2026-01-03
	EndDate          string   `json:"end_date"`
	Note             string   `json:"note"`
}

// ContractResponse carries a contract plus the actions its status allows;
// the FE renders exactly these buttons.
type ContractResponse struct {
	ID               string   `json:"id"`
	ContractNumber   string   `json:"contract_number"`
	ClientID         *string  `json:"client_id,omitempty"`
	ClientName       string   `json:"client_name"`
	CustomClientName string   `json:"custom_client_name,omitempty"`
	QuotationID      *uint    `json:"quotation_id,omitempty"`
	Terms            []string `json:"terms"`
	Body             string   `json:"body"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	SignedDate       string   `json:"signed_date,omitempty"`
	Status           string   `json:"status"`
	Note             string   `json:"note"`

	Actions []contracts.Action `json:"actions"`

	CreatedAt time.Time `json:"created_at"`
}

func toContractResponse(ct *models.Contract) ContractResponse {
	resp := ContractResponse{
		ID:               ct.ID.String(),
		ContractNumber:   ct.ContractNumber,
		CustomClientName: ct.CustomClientName,
		QuotationID:      ct.QuotationID,
		Body:             ct.Body,
		StartDate:        ct.StartDate.Format("2006-01-02"),
		EndDate:          ct.EndDate.Format("2006-01-02"),
		Status:           string(ct.Status),
		Note:             ct.Note,
		Actions:          contracts.AllowedActions(ct.Status),
		CreatedAt:        ct.CreatedAt,
	}
	if resp.Actions == nil {
		resp.Actions = []contracts.Action{}
	}
	if ct.ClientID != nil {
		s := ct.ClientID.String()
		resp.ClientID = &s
	}
	resp.ClientName = ct.CustomClientName
	if ct.Client != nil {
		resp.ClientName = ct.Client.BusinessName
	}
	if ct.SignedDate != nil {
		resp.SignedDate = ct.SignedDate.Format("2006-01-02")
	}
	if len(ct.Terms) > 0 {
		_ = json.Unmarshal(ct.Terms, &resp.Terms)
	}
	if resp.Terms == nil {
		resp.Terms = []string{}
	}
	return resp
}

func (h *ContractHandler) parseBody(c *fiber.Ctx, ct *models.Contract) error {
	var req ContractRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if req.ClientID != "" {
		id, err := uuid.Parse(req.ClientID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid client_id")
		}
		ct.ClientID = &id
	} else {
		ct.ClientID = nil
	}
	ct.CustomClientName = req.CustomClientName
	ct.QuotationID = req.QuotationID
	ct.Body = req.Body
	ct.Note = req.Note

	terms, _ := json.Marshal(req.Terms)
	ct.Terms = terms

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid start_date")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid end_date")
	}
	ct.StartDate = start
	ct.EndDate = end

	return nil
}

func (h *ContractHandler) List(c *fiber.Ctx) error {
	q := repository.ContractQuery{
		Status:  models.ContractStatus(c.Query("status")),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 20),
	}
	if cid := c.Query("client_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid client_id")
		}
		q.ClientID = &id
	}

	list, total, err := h.Service.List(c.Context(), q)
	if err != nil {
		return fail500(c, "failed to list contracts")
	}

	out := make([]ContractResponse, 0, len(list))
	for i := range list {
		out = append(out, toContractResponse(&list[i]))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
		"meta": fiber.Map{
			"total":    total,
			"page":     q.Page,
			"per_page": q.PerPage,
		},
	})
}

func (h *ContractHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contract id")
	}

	ct, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Contract not found",
			})
		}
		return fail500(c, "failed to load contract")
	}

	return c.JSON(fiber.Map{"success": true, "data": toContractResponse(ct)})
}

func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var ct models.Contract
	if err := h.parseBody(c, &ct); err != nil {
		return err
	}

	if err := h.Service.Create(c.Context(), &ct); err != nil {
		if errors.Is(err, contracts.ErrInvalidPeriod) {
			return fail200(c, "End date must be after start date")
		}
		return fail500(c, "failed to create contract")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    toContractResponse(&ct),
	})
}

func (h *ContractHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contract id")
	}

	ct, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Contract not found",
			})
		}
		return fail500(c, "failed to load contract")
	}

	if err := h.parseBody(c, ct); err != nil {
		return err
	}

	if err := h.Service.Update(c.Context(), ct); err != nil {
		if errors.Is(err, contracts.ErrInvalidPeriod) {
			return fail200(c, "End date must be after start date")
		}
		return fail500(c, "failed to update contract")
	}

	return c.JSON(fiber.Map{"success": true, "data": toContractResponse(ct)})
}

func (h *ContractHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contract id")
	}

	if err := h.Service.Delete(c.Context(), id); err != nil {
		return fail500(c, "failed to delete contract")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Contract deleted"})
}

func (h *ContractHandler) transitionResponse(c *fiber.Ctx, ct *models.Contract, err error) error {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Contract not found",
			})
		}
		if errors.Is(err, contracts.ErrInvalidTransition) {
			return fail200(c, err.Error())
		}
		if errors.Is(err, contracts.ErrInvalidPeriod) {
			return fail200(c, "End date must be after start date")
		}
		return fail500(c, "failed to update contract")
	}
	return c.JSON(fiber.Map{"success": true, "data": toContractResponse(ct)})
}

func (h *ContractHandler) Sign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contract id")
	}
	ct, err := h.Service.Sign(c.Context(), id)
	return h.transitionResponse(c, ct, err)
}

func (h *ContractHandler) Complete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contract id")
	}
	ct, err := h.Service.Complete(c.Context(), id)
	return h.transitionResponse(c, ct, err)
}

type cancelReq struct {
	Reason string `json:"reason"`
}

func (h *ContractHandler) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contract id")
	}

	var req cancelReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
	}

	ct, err := h.Service.Cancel(c.Context(), id, req.Reason)
	return h.transitionResponse(c, ct, err)
}

type renewReq struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *ContractHandler) Renew(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid contract id")
	}

	var req renewReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid start_date")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid end_date")
	}

	ct, err := h.Service.Renew(c.Context(), id, start, end)
	return h.transitionResponse(c, ct, err)
}
