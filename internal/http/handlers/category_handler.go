package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "farmgate/internal/log"
	"farmgate/internal/services"
	"farmgate/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.Catalog.ListCategories()
	if err != nil {
		return failErr(c, "categories.list.fail", err)
	}
	return c.JSON(out)
}

// GET /api/categories/:id
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "category not found")
	}
	cat, err := h.Catalog.GetCategory(id)
	if err != nil {
		return failErr(c, "categories.get.fail", err)
	}
	return c.JSON(cat)
}

// POST /api/categories (admin)
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.InsertCategory
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "malformed request body")
	}
	cat, err := h.Catalog.CreateCategory(in)
	if err != nil {
		return failErr(c, "categories.create.fail", err)
	}
	applog.Audit(c, "categories.create", map[string]any{"category_id": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// PUT /api/categories/:id (admin)
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "category not found")
	}
	var in services.InsertCategory
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "malformed request body")
	}
	cat, err := h.Catalog.UpdateCategory(id, in)
	if err != nil {
		return failErr(c, "categories.update.fail", err)
	}
	applog.Audit(c, "categories.update", map[string]any{"category_id": cat.ID})
	return c.JSON(cat)
}

// DELETE /api/categories/:id (admin); referencing products keep a null
// categoryId.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "category not found")
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		return failErr(c, "categories.delete.fail", err)
	}
	applog.Audit(c, "categories.delete", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
