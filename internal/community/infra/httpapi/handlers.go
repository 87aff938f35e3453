package httpapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	auctionapi "github.com/niazroky/Commerce/internal/auction/infra/httpapi"
	"github.com/niazroky/Commerce/internal/community/application"
	"github.com/niazroky/Commerce/internal/community/domain"
	"github.com/niazroky/Commerce/internal/shared/httpserver"
	"github.com/niazroky/Commerce/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

var errBodyRequired = errors.New("body is required")

type AddCommentRequest struct {
	Body string `json:"body" form:"body"`
}

func (r AddCommentRequest) Validate() error {
	if strings.TrimSpace(r.Body) == "" {
		return errBodyRequired
	}
	return nil
}

type WatchStateResponse struct {
	Watching bool `json:"watching"`
}

// CommunityHandler serves comments and the watchlist
type CommunityHandler struct {
	service application.CommunityService
	auth    *httpserver.Authenticator
}

func NewCommunityHandler(service application.CommunityService, auth *httpserver.Authenticator) *CommunityHandler {
	return &CommunityHandler{service: service, auth: auth}
}

func (h *CommunityHandler) Register(r fiber.Router) {
	r.Get("/listings/:id/comments", h.ListComments)
	r.Post("/listings/:id/comments", h.auth.Required(), h.AddComment)

	watch := r.Group("/watchlist", h.auth.Required())
	watch.Get("/", h.Watchlist)
	watch.Get("/:id", h.WatchState)
	watch.Put("/:id", h.Watch)
	watch.Delete("/:id", h.Unwatch)
}

// ListComments handles GET /listings/:id/comments
func (h *CommunityHandler) ListComments(c *fiber.Ctx) error {
	id, err := auctionapi.ListingIDParam(c)
	if err != nil {
		return httpserver.JSONError(c, fiber.StatusBadRequest, err, "invalid request payload")
	}
	comments, err := h.service.ListComments(c.UserContext(), id)
	if err != nil {
		return fail(c, "ListComments", err)
	}
	if comments == nil {
		comments = []application.CommentDTO{}
	}
	return httpserver.JSONResponse(c, fiber.StatusOK, comments, "comments retrieved successfully")
}

// AddComment handles POST /listings/:id/comments
func (h *CommunityHandler) AddComment(c *fiber.Ctx) error {
	id, err := auctionapi.ListingIDParam(c)
	if err != nil {
		return httpserver.JSONError(c, fiber.StatusBadRequest, err, "invalid request payload")
	}
	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return httpserver.JSONError(c, fiber.StatusBadRequest, err, "invalid request payload")
	}
	if err := req.Validate(); err != nil {
		return httpserver.JSONError(c, fiber.StatusBadRequest, err, "invalid request payload")
	}

	comment, err := h.service.AddComment(c.UserContext(), application.AddCommentDTO{
		ListingID: id,
		AuthorID:  httpserver.UserID(c),
		Body:      req.Body,
	})
	if err != nil {
		return fail(c, "AddComment", err)
	}
	return httpserver.JSONResponse(c, fiber.StatusCreated, comment, "comment added")
}

// Watchlist handles GET /watchlist
func (h *CommunityHandler) Watchlist(c *fiber.Ctx) error {
	list, err := h.service.Watchlist(c.UserContext(), httpserver.UserID(c))
	if err != nil {
		return fail(c, "Watchlist", err)
	}
	if list == nil {
		list = []application.WatchedListingDTO{}
	}
	return httpserver.JSONResponse(c, fiber.StatusOK, list, "watchlist retrieved successfully")
}

// WatchState handles GET /watchlist/:id
func (h *CommunityHandler) WatchState(c *fiber.Ctx) error {
	id, err := auctionapi.ListingIDParam(c)
	if err != nil {
		return httpserver.JSONError(c, fiber.StatusBadRequest, err, "invalid request payload")
	}
	watching, err := h.service.IsWatching(c.UserContext(), httpserver.UserID(c), id)
	if err != nil {
		return fail(c, "WatchState", err)
	}
	return httpserver.JSONResponse(c, fiber.StatusOK, WatchStateResponse{Watching: watching}, "watch state retrieved")
}

// Watch handles PUT /watchlist/:id
func (h *CommunityHandler) Watch(c *fiber.Ctx) error {
	id, err := auctionapi.ListingIDParam(c)
	if err != nil {
		return httpserver.JSONError(c, fiber.StatusBadRequest, err, "invalid request payload")
	}
	if err := h.service.Watch(c.UserContext(), httpserver.UserID(c), id); err != nil {
		return fail(c, "Watch", err)
	}
	return httpserver.JSONResponse(c, fiber.StatusOK, WatchStateResponse{Watching: true}, "added to watchlist")
}

// Unwatch handles DELETE /watchlist/:id
func (h *CommunityHandler) Unwatch(c *fiber.Ctx) error {
	id, err := auctionapi.ListingIDParam(c)
	if err != nil {
		return httpserver.JSONError(c, fiber.StatusBadRequest, err, "invalid request payload")
	}
	if err := h.service.Unwatch(c.UserContext(), httpserver.UserID(c), id); err != nil {
		return fail(c, "Unwatch", err)
	}
	return httpserver.JSONResponse(c, fiber.StatusOK, WatchStateResponse{Watching: false}, "removed from watchlist")
}

func fail(c *fiber.Ctx, handlerName string, err error) error {
	status, message := mapError(err)
	if status >= fiber.StatusInternalServerError {
		log.Error(handlerName+": request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return httpserver.JSONError(c, status, err, message)
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyComment), errors.Is(err, domain.ErrCommentTooLong):
		return fiber.StatusBadRequest, "invalid comment"
	default:
		return auctionapi.MapError(err)
	}
}
