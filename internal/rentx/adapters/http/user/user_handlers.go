// Package user contains the HTTP handlers for profiles and wishlists.
package user

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"rentx/internal/rentx/adapters/http/httperr"
	"rentx/internal/rentx/adapters/http/middleware"
	"rentx/internal/rentx/app/dto"
	"rentx/internal/rentx/ports/api"
	"rentx/pkg/logger"
)

const (
	LogHandlerGetProfile     = "user handler: get profile"
	LogHandlerUpdateProfile  = "user handler: update profile"
	LogHandlerWishlist       = "user handler: wishlist"
	LogHandlerWishlistAdd    = "user handler: wishlist add"
	LogHandlerWishlistRemove = "user handler: wishlist remove"
	LogHandlerWishlistCheck  = "user handler: wishlist check"
	LogHandlerWishlistCount  = "user handler: wishlist count"

	ErrorInvalidRequest       = "invalid request"
	ErrorInvalidProductID     = "invalid product id"
	ErrorFailedToServeRequest = "failed to serve request"

	NoticeAlreadySaved = "already in wishlist"
)

// Handler contains the HTTP handlers for the authenticated user's profile
// and wishlist.
type Handler struct {
	profileUseCase  api.ProfileUseCase
	wishlistUseCase api.WishlistUseCase
}

// NewHandler creates a new user handler.
func NewHandler(profileUseCase api.ProfileUseCase, wishlistUseCase api.WishlistUseCase) *Handler {
	return &Handler{
		profileUseCase:  profileUseCase,
		wishlistUseCase: wishlistUseCase,
	}
}

// GetProfile handles reading the authenticated user's profile.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	profile, completion, err := h.profileUseCase.Get(requestCtx, middleware.UserID(ctx))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewProfileResponse(profile, completion)); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

// UpdateProfile handles a merge update of the authenticated user's profile.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateProfile)

	var req dto.UpdateProfileRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return httperr.BadRequest(ctx, ErrorInvalidRequest)
	}

	profile, completion, err := h.profileUseCase.Update(requestCtx, middleware.UserID(ctx), &req)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewProfileResponse(profile, completion)); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

// Wishlist handles reading the authenticated user's saved products.
func (h *Handler) Wishlist(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerWishlist)

	result, err := h.wishlistUseCase.Products(requestCtx, middleware.UserID(ctx))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewProductListResponse(result)); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

// WishlistAdd handles saving a product to the wishlist. Saving an already
// saved product keeps the single entry and reports changed=false.
func (h *Handler) WishlistAdd(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerWishlistAdd)

	productID, err := wishlistProductID(ctx)
	if err != nil {
		return httperr.BadRequest(ctx, ErrorInvalidProductID)
	}

	userID := middleware.UserID(ctx)

	changed, err := h.wishlistUseCase.Add(requestCtx, userID, productID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	notice := ""
	if !changed {
		notice = NoticeAlreadySaved
	}
	return h.respondChange(ctx, userID, changed, notice)
}

// WishlistRemove handles removing a product from the wishlist. Removing an
// absent product is a no-op reported as changed=false.
func (h *Handler) WishlistRemove(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerWishlistRemove)

	productID, err := wishlistProductID(ctx)
	if err != nil {
		return httperr.BadRequest(ctx, ErrorInvalidProductID)
	}

	userID := middleware.UserID(ctx)

	changed, err := h.wishlistUseCase.Remove(requestCtx, userID, productID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	return h.respondChange(ctx, userID, changed, "")
}

// WishlistCheck handles checking whether a product is saved.
func (h *Handler) WishlistCheck(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerWishlistCheck)

	productID, err := wishlistProductID(ctx)
	if err != nil {
		return httperr.BadRequest(ctx, ErrorInvalidProductID)
	}

	saved, err := h.wishlistUseCase.Contains(requestCtx, middleware.UserID(ctx), productID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"saved": saved,
	}); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

// WishlistCount handles reading the wishlist size.
func (h *Handler) WishlistCount(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerWishlistCount)

	count, err := h.wishlistUseCase.Count(requestCtx, middleware.UserID(ctx))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.WishlistCountResponse{Count: count}); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

func (h *Handler) respondChange(ctx fiber.Ctx, userID string, changed bool, notice string) error {
	requestCtx := ctx.Context()

	count, err := h.wishlistUseCase.Count(requestCtx, userID)
	if err != nil {
		return httperr.Respond(ctx, err)
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.WishlistChangeResponse{
		Changed: changed,
		Count:   count,
		Notice:  notice,
	}); err != nil {
		return httperr.Respond(ctx, err)
	}
	return nil
}

func wishlistProductID(ctx fiber.Ctx) (int64, error) {
	return strconv.ParseInt(ctx.Params("productId"), 10, 64)
}
