// Package products contains the HTTP handlers for the product catalog.
package products

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"rentx/internal/rentx/adapters/http/httperr"
	"rentx/internal/rentx/adapters/http/middleware"
	"rentx/internal/rentx/app/dto"
	"rentx/internal/rentx/domain/catalog"
	"rentx/internal/rentx/domain/entities"
	"rentx/internal/rentx/ports/api"
	"rentx/internal/rentx/ports/storage"
	"rentx/pkg/logger"
)

const (
	LogHandlerBrowse          = "product handler: browse"
	LogHandlerGet             = "product handler: get"
	LogHandlerBySeller        = "product handler: by seller"
	LogHandlerCreate          = "product handler: create"
	LogHandlerUpdate          = "product handler: update"
	LogHandlerSetAvailability = "product handler: set availability"
	LogHandlerPresignUpload   = "product handler: presign upload"

	ErrorInvalidRequest       = "invalid request"
	ErrorInvalidProductID     = "invalid product id"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Handler contains the HTTP handlers for the product catalog.
type Handler struct {
	catalogUseCase api.CatalogUseCase
	imageStorage   storage.ImageStorage
}

// NewHandler creates a new product handler. imageStorage may be nil when
// presigned uploads are not configured.
func NewHandler(catalogUseCase api.CatalogUseCase, imageStorage storage.ImageStorage) *Handler {
	return &Handler{
		catalogUseCase: catalogUseCase,
		imageStorage:   imageStorage,
	}
}

// Browse handles a catalog read with optional category and search filters.
func (h *Handler) Browse(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerBrowse)

	query := catalog.Query{
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
	}

	result, err := h.catalogUseCase.Browse(requestCtx, query)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewProductListResponse(result)); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

// Get handles a single product read.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGet)

	id, err := productID(ctx)
	if err != nil {
		return httperr.BadRequest(ctx, ErrorInvalidProductID)
	}

	product, err := h.catalogUseCase.Get(requestCtx, id)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewProductResponse(product)); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

// BySeller handles reading all listings of a seller.
func (h *Handler) BySeller(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerBySeller)

	sellerID := ctx.Params("userId")
	if sellerID == "" {
		return httperr.BadRequest(ctx, "seller id is required")
	}

	result, err := h.catalogUseCase.ListBySeller(requestCtx, sellerID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewProductListResponse(result)); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

// Create handles creating a new listing on behalf of the authenticated user.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	var req dto.CreateProductRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return httperr.BadRequest(ctx, ErrorInvalidRequest)
	}

	created, err := h.catalogUseCase.CreateListing(requestCtx, middleware.UserID(ctx), req.ToProduct())
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusCreated).JSON(dto.NewProductResponse(created)); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

// Update handles a whole-record merge update of a listing.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdate)

	id, err := productID(ctx)
	if err != nil {
		return httperr.BadRequest(ctx, ErrorInvalidProductID)
	}

	var req dto.UpdateProductRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return httperr.BadRequest(ctx, ErrorInvalidRequest)
	}

	updated, err := h.catalogUseCase.UpdateListing(requestCtx, id, &req)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewProductResponse(updated)); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

// SetAvailability handles an availability transition of a listing.
func (h *Handler) SetAvailability(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSetAvailability)

	id, err := productID(ctx)
	if err != nil {
		return httperr.BadRequest(ctx, ErrorInvalidProductID)
	}

	var req dto.SetAvailabilityRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return httperr.BadRequest(ctx, ErrorInvalidRequest)
	}

	updated, err := h.catalogUseCase.SetAvailability(requestCtx, id, entities.Availability(req.Availability))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewProductResponse(updated)); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

// PresignUpload handles presigning an image upload for the authenticated
// user.
func (h *Handler) PresignUpload(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerPresignUpload)

	if h.imageStorage == nil {
		return httperr.BadRequest(ctx, "image uploads are not configured")
	}

	var req dto.PresignUploadRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return httperr.BadRequest(ctx, ErrorInvalidRequest)
	}

	if req.FileName == "" || req.ContentType == "" {
		return httperr.BadRequest(ctx, "file name and content type are required")
	}

	presigned, err := h.imageStorage.PresignUpload(requestCtx, middleware.UserID(ctx), req.FileName, req.ContentType)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.PresignResponse{
		URL:       presigned.URL,
		Key:       presigned.Key,
		ExpiresAt: presigned.ExpiresAt,
	}); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

func productID(ctx fiber.Ctx) (int64, error) {
	return strconv.ParseInt(ctx.Params("id"), 10, 64)
}
