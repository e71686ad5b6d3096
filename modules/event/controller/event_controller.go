package controller

import (
	"github.com/Ecospace254/employee-sub000/core/constants"
	"github.com/Ecospace254/employee-sub000/core/controller"
	"github.com/Ecospace254/employee-sub000/core/errors"
	"github.com/Ecospace254/employee-sub000/core/utils"
	"github.com/Ecospace254/employee-sub000/modules/event/dto"
	"github.com/Ecospace254/employee-sub000/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	service service.EventServiceInterface
}

func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (c *EventController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims.UserID, nil
}

// ListEvents handles GET /api/events
// @Summary List events
// @Description Return events matching the optional filters, enriched with organizer, participant count and the caller's RSVP status
// @Tags Event
// @Security SessionCookie
// @Produce json
// @Param eventType query string false "Filter by event type" Enums(event, training, meeting, one_on_one)
// @Param startDate query string false "Events starting at or after this date (RFC3339 or YYYY-MM-DD)"
// @Param endDate query string false "Events ending at or before this date (RFC3339 or YYYY-MM-DD)"
// @Param userId query string false "Only events this user organizes or participates in"
// @Success 200 {array} dto.EventResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /events [get]
func (c *EventController) ListEvents(ctx echo.Context) error {
	viewerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	query := new(dto.EventListQuery)
	if err := ctx.Bind(query); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid query parameters")
	}

	events, appErr := c.service.ListEvents(ctx.Request().Context(), viewerID, query)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, events, "Events retrieved successfully")
}

// GetEvent handles GET /api/events/:id
// @Summary Get one event
// @Description Return a single event with its full participant roster
// @Tags Event
// @Security SessionCookie
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx echo.Context) error {
	viewerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	event, appErr := c.service.GetEventByID(ctx.Request().Context(), eventID, viewerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Event retrieved successfully")
}

// CreateEvent handles POST /api/events
// @Summary Create an event
// @Description Create an event with the caller as organizer; listed participants start as pending invitees
// @Tags Event
// @Security SessionCookie
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event payload"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /events [post]
func (c *EventController) CreateEvent(ctx echo.Context) error {
	organizerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.CreateEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	event, appErr := c.service.CreateEvent(ctx.Request().Context(), organizerID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Event created successfully")
}

// UpdateEvent handles PUT /api/events/:id
// @Summary Update an event
// @Description Apply a partial update; only the organizer may do this
// @Tags Event
// @Security SessionCookie
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	req := new(dto.UpdateEventRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	event, appErr := c.service.UpdateEvent(ctx.Request().Context(), eventID, userID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Event updated successfully")
}

// DeleteEvent handles DELETE /api/events/:id
// @Summary Delete an event
// @Description Remove the event and all its participant records; only the organizer may do this
// @Tags Event
// @Security SessionCookie
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	if appErr := c.service.DeleteEvent(ctx.Request().Context(), eventID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

// AddParticipants handles POST /api/events/:id/participants
// @Summary Invite participants
// @Description Bulk-invite users to an event; already-invited users are skipped
// @Tags Event
// @Security SessionCookie
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.AddParticipantsRequest true "User IDs to invite"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id}/participants [post]
func (c *EventController) AddParticipants(ctx echo.Context) error {
	if _, err := c.getUserIDFromContext(ctx); err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	req := new(dto.AddParticipantsRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if len(req.UserIDs) == 0 {
		return c.BadRequest(errors.ErrInvalidInput, "user_ids is required")
	}

	event, appErr := c.service.AddParticipants(ctx.Request().Context(), eventID, req.UserIDs)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, event, "Participants added successfully")
}

// SetRSVP handles PUT /api/events/:id/participants/:userId
// @Summary Set RSVP status
// @Description Record the caller's response to an invitation; users may only change their own status
// @Tags Event
// @Security SessionCookie
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param userId path string true "Participant user ID (must be the caller)"
// @Param request body dto.SetRSVPRequest true "New status"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /events/{id}/participants/{userId} [put]
func (c *EventController) SetRSVP(ctx echo.Context) error {
	callerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	targetID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user id")
	}

	if targetID != callerID {
		return c.Forbidden(errors.ErrForbidden, "You may only change your own RSVP")
	}

	req := new(dto.SetRSVPRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if appErr := c.service.SetParticipantStatus(ctx.Request().Context(), eventID, callerID, req.Status); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "RSVP updated successfully")
}

// UpcomingSidebar handles GET /api/events/upcoming/sidebar
// @Summary Upcoming events sidebar
// @Description Return the caller's next few events; degrades to an empty list on backend trouble
// @Tags Event
// @Security SessionCookie
// @Produce json
// @Param limit query int false "Maximum events to return (default 5, cap 20)"
// @Success 200 {array} dto.EventResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /events/upcoming/sidebar [get]
func (c *EventController) UpcomingSidebar(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	limit := utils.ToNumberWithDefault(ctx.QueryParam("limit"), constants.DefaultUpcomingLimit)

	events := c.service.UpcomingForUser(ctx.Request().Context(), userID, limit)
	return c.SuccessResponse(ctx, events, "Upcoming events retrieved successfully")
}
