package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/application/purchasing"
)

// PurchasingHandler órdenes de compra y recepción de mercancía.
type PurchasingHandler struct {
	uc *purchasing.PurchasingUseCase
}

func NewPurchasingHandler(uc *purchasing.PurchasingUseCase) *PurchasingHandler {
	return &PurchasingHandler{uc: uc}
}

// CreateDrafts godoc
// @Summary      Crear borradores desde las sugerencias
// @Description  Un borrador por proveedor con candidatos. supplier_ids vacío = todos.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateDraftsRequest  false  "proveedores"
// @Success      201  {array}   dto.PurchaseOrderResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/drafts [post]
func (h *PurchasingHandler) CreateDrafts(c *fiber.Ctx) error {
	var in dto.CreateDraftsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.CreateDrafts(c.UserContext(), GetUserID(c), in.SupplierIDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Produce      json
// @Security     BearerAuth
// @Param        status       query  string  false  "draft | ordered | partially_received | received | cancelled"
// @Param        supplier_id  query  string  false  "proveedor"
// @Param        limit        query  int     false  "límite"   default(20)
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.PurchaseOrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [get]
func (h *PurchasingHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), c.Query("status"), c.Query("supplier_id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener orden de compra
// @Tags         purchase-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchasingHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Emitir orden (draft → ordered)
// @Tags         purchase-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/submit [post]
func (h *PurchasingHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Anular orden
// @Tags         purchase-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/cancel [post]
func (h *PurchasingHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Registrar recepción de mercancía
// @Description  Sin líneas se recibe todo lo pendiente. Incrementa el stock de cada SKU.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true   "ID"
// @Param        body  body  dto.ReceiveRequest  false  "líneas recibidas"
// @Success      201  {object}  dto.GoodsReceiptResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchasingHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Receive(c.UserContext(), c.Params("id"), GetUserID(c), in.Lines)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Receipts godoc
// @Summary      Recepciones de una orden
// @Tags         purchase-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID"
// @Success      200  {array}   dto.GoodsReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receipts [get]
func (h *PurchasingHandler) Receipts(c *fiber.Ctx) error {
	out, err := h.uc.Receipts(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar PDF de la orden
// @Tags         purchase-orders
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *PurchasingHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.Document(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}
