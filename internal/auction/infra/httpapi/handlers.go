package httpapi

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/niazroky/Commerce/internal/auction/application"
	"github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/shared/httpserver"
	"github.com/niazroky/Commerce/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

var errInvalidListingID = errors.New("listing id must be a positive integer")

// AuctionHandler exposes the auction use cases over HTTP
type AuctionHandler struct {
	service application.AuctionService
	auth    *httpserver.Authenticator
}

func NewAuctionHandler(service application.AuctionService, auth *httpserver.Authenticator) *AuctionHandler {
	return &AuctionHandler{service: service, auth: auth}
}

// Register mounts the auction routes on r
func (h *AuctionHandler) Register(r fiber.Router) {
	r.Get("/listings", h.ListListings)
	r.Get("/categories", h.ListCategories)
	r.Post("/listings", h.auth.Required(), h.CreateListing)
	r.Get("/listings/:id", h.auth.Optional(), h.GetListing)
	r.Post("/listings/:id/bids", h.auth.Required(), h.PlaceBid)
	r.Post("/listings/:id/close", h.auth.Required(), h.CloseAuction)
}

// CreateListing handles POST /listings
func (h *AuctionHandler) CreateListing(c *fiber.Ctx) error {
	var req CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return bindError(c, "CreateListing", err)
	}
	if err := req.Validate(); err != nil {
		return bindError(c, "CreateListing", err)
	}

	id, err := h.service.SeedListing(c.UserContext(), application.SeedListingDTO{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		OwnerID:       httpserver.UserID(c),
		InitialAmount: string(req.Price),
	})
	if err != nil {
		return h.fail(c, "CreateListing", err)
	}
	return httpserver.JSONResponse(c, fiber.StatusCreated, CreateListingResponse{ListingID: id}, "listing created")
}

// ListListings handles GET /listings?category=
func (h *AuctionHandler) ListListings(c *fiber.Ctx) error {
	listings, err := h.service.ListListings(c.UserContext(), c.Query("category"))
	if err != nil {
		return h.fail(c, "ListListings", err)
	}
	if listings == nil {
		listings = []application.ListingDTO{}
	}
	return httpserver.JSONResponse(c, fiber.StatusOK, listings, "listings retrieved successfully")
}

// ListCategories handles GET /categories
func (h *AuctionHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return h.fail(c, "ListCategories", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return httpserver.JSONResponse(c, fiber.StatusOK, categories, "categories retrieved successfully")
}

// GetListing handles GET /listings/:id
func (h *AuctionHandler) GetListing(c *fiber.Ctx) error {
	id, err := ListingIDParam(c)
	if err != nil {
		return bindError(c, "GetListing", err)
	}
	detail, err := h.service.GetListing(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "GetListing", err)
	}
	userID := httpserver.UserID(c)
	resp := ListingDetailResponse{
		ListingDetailDTO: *detail,
		IsOwner:          userID != "" && userID == detail.OwnerID,
	}
	return httpserver.JSONResponse(c, fiber.StatusOK, resp, "listing retrieved successfully")
}

// PlaceBid handles POST /listings/:id/bids
func (h *AuctionHandler) PlaceBid(c *fiber.Ctx) error {
	id, err := ListingIDParam(c)
	if err != nil {
		return bindError(c, "PlaceBid", err)
	}
	var req PlaceBidRequest
	if err := c.BodyParser(&req); err != nil {
		return bindError(c, "PlaceBid", err)
	}
	if err := req.Validate(); err != nil {
		return bindError(c, "PlaceBid", err)
	}

	outcome, err := h.service.PlaceBid(c.UserContext(), application.PlaceBidDTO{
		ListingID: id,
		BidderID:  httpserver.UserID(c),
		Amount:    string(req.Amount),
	})
	if err != nil {
		return h.fail(c, "PlaceBid", err)
	}

	if !outcome.Accepted() {
		return httpserver.JSONResponse(c, fiber.StatusOK, newBidOutcomeResponse(outcome), "bid update failed")
	}
	return httpserver.JSONResponse(c, fiber.StatusCreated, newBidOutcomeResponse(outcome), "bid updated successfully")
}

// CloseAuction handles POST /listings/:id/close
func (h *AuctionHandler) CloseAuction(c *fiber.Ctx) error {
	id, err := ListingIDParam(c)
	if err != nil {
		return bindError(c, "CloseAuction", err)
	}
	outcome, err := h.service.CloseAuction(c.UserContext(), application.CloseAuctionDTO{
		ListingID:   id,
		RequesterID: httpserver.UserID(c),
	})
	if err != nil {
		return h.fail(c, "CloseAuction", err)
	}
	return httpserver.JSONResponse(c, fiber.StatusOK, CloseAuctionResponse{
		ListingID:     outcome.ListingID,
		State:         string(outcome.State),
		FinalAmount:   outcome.FinalAmount,
		AlreadyClosed: outcome.AlreadyClosed,
	}, "auction closed")
}

// ListingIDParam reads the :id route parameter.
func ListingIDParam(c *fiber.Ctx) (domain.ListingID, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidListingID
	}
	return domain.ListingID(id), nil
}

func bindError(c *fiber.Ctx, handlerName string, err error) error {
	log.Warn(handlerName+": invalid request", zap.Error(err))
	return httpserver.JSONError(c, fiber.StatusBadRequest, fmt.Errorf("invalid request payload: %w", err), "invalid request payload")
}

func (h *AuctionHandler) fail(c *fiber.Ctx, handlerName string, err error) error {
	status, message := MapError(err)
	if status >= fiber.StatusInternalServerError {
		log.Error(handlerName+": request failed", zap.String("path", c.Path()), zap.Error(err))
	} else {
		log.Info(handlerName+": request refused", zap.Int("status", status), zap.Error(err))
	}
	return httpserver.JSONError(c, status, err, message)
}

// MapError maps ledger errors to HTTP status code and message
func MapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return fiber.StatusBadRequest, "invalid amount"
	case errors.Is(err, domain.ErrInvalidListing):
		return fiber.StatusBadRequest, "invalid listing details"
	case errors.Is(err, domain.ErrMissingIdentity):
		return fiber.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrNotOwner):
		return fiber.StatusForbidden, "only the owner can close this auction"
	case errors.Is(err, domain.ErrListingNotFound):
		return fiber.StatusNotFound, "listing not found"
	case errors.Is(err, domain.ErrAuctionClosed):
		return fiber.StatusConflict, "auction is closed"
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}
