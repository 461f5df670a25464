package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/digitalagency-id/agency_be/internal/models"
	"github.com/digitalagency-id/agency_be/internal/repository"
)

type ClientHandler struct {
	Clients repository.ClientRepository
}

func NewClientHandler(clients repository.ClientRepository) *ClientHandler {
	return &ClientHandler{Clients: clients}
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	q := repository.ClientQuery{
		Search:  c.Query("q"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 20),
	}

	list, total, err := h.Clients.List(c.Context(), q)
	if err != nil {
		return fail500(c, "failed to list clients")
	}

	out := make([]fiber.Map, 0, len(list))
	for _, cl := range list {
		out = append(out, fiber.Map{
			"id":            cl.ID,
			"business_name": cl.BusinessName,
			"full_name":     cl.FullName,
			"category":      cl.Category,
			"phone":         cl.BusinessPhone,
			"email":         cl.BusinessEmail,
			"created_at":    cl.CreatedAt,
		})
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

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid client id")
	}

	cl, err := h.Clients.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Client not found",
			})
		}
		return fail500(c, "failed to load client")
	}

	return c.JSON(fiber.Map{"success": true, "data": cl})
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid client id")
	}

	cl, err := h.Clients.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Client not found",
			})
		}
		return fail500(c, "failed to load client")
	}

	var req models.Client
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	// detail edits outside the wizard touch the flat fields only;
	// child lists keep their own endpoints
	cl.FullName = req.FullName
	cl.Email = req.Email
	cl.Phone = req.Phone
	cl.Position = req.Position
	cl.BusinessName = req.BusinessName
	cl.Category = req.Category
	cl.CategoryOther = req.CategoryOther
	cl.Description = req.Description
	cl.MainOfficeAddress = req.MainOfficeAddress
	cl.EstablishedYear = req.EstablishedYear
	cl.BusinessPhone = req.BusinessPhone
	cl.BusinessWhatsApp = req.BusinessWhatsApp
	cl.BusinessEmail = req.BusinessEmail
	cl.Website = req.Website
	if req.SocialLinks != nil {
		cl.SocialLinks = req.SocialLinks
	}
	if req.SWOT != nil {
		cl.SWOT = req.SWOT
	}
	cl.Branches = nil
	cl.Competitors = nil
	cl.Segments = nil

	if err := h.Clients.Update(c.Context(), cl); err != nil {
		return fail500(c, "failed to update client")
	}

	return c.JSON(fiber.Map{"success": true, "data": cl})
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid client id")
	}

	if err := h.Clients.Delete(c.Context(), id); err != nil {
		return fail500(c, "failed to delete client")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Client deleted"})
}
