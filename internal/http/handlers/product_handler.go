package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "farmgate/internal/log"
	"farmgate/internal/repos"
	"farmgate/internal/services"
	"farmgate/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	if cat := c.Query("categoryId"); cat != "" {
		id, ok := validate.ID(cat)
		if !ok {
			return fail(c, fiber.StatusBadRequest, CodeValidation, "invalid categoryId")
		}
		out, err := h.Catalog.ListProductsByCategory(id)
		if err != nil {
			return failErr(c, "products.list.fail", err)
		}
		return c.JSON(out)
	}
	out, err := h.Catalog.ListProducts()
	if err != nil {
		return failErr(c, "products.list.fail", err)
	}
	return c.JSON(out)
}

// GET /api/products/search?q=
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	out, err := h.Catalog.SearchProducts(c.Query("q"))
	if err != nil {
		return failErr(c, "products.search.fail", err)
	}
	return c.JSON(out)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "product not found")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return failErr(c, "products.get.fail", err)
	}
	return c.JSON(p)
}

// POST /api/products (admin)
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in repos.InsertProduct
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "malformed request body")
	}
	p, err := h.Catalog.CreateProduct(in)
	if err != nil {
		return failErr(c, "products.create.fail", err)
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/products/:id (admin, partial body)
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "product not found")
	}
	var in repos.UpdateProduct
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, CodeValidation, "malformed request body")
	}
	p, err := h.Catalog.UpdateProduct(id, in)
	if err != nil {
		return failErr(c, "products.update.fail", err)
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": p.ID})
	return c.JSON(p)
}

// DELETE /api/products/:id (admin)
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, CodeNotFound, "product not found")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return failErr(c, "products.delete.fail", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
