package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/pkg/errors"
	"github.com/gym-finder/internal/pkg/utils"
	"github.com/gym-finder/internal/pkg/validator"
	"github.com/gym-finder/internal/usecase"
	"github.com/gym-finder/internal/usecase/dto"
)

// ScreenHandler - HTTP surface of the map screen
type ScreenHandler struct {
	registry    *usecase.ScreenRegistry
	waitTimeout time.Duration
	logger      *zap.Logger
}

// NewScreenHandler - waitTimeout bounds ?wait=true requests
func NewScreenHandler(registry *usecase.ScreenRegistry, waitTimeout time.Duration, logger *zap.Logger) *ScreenHandler {
	return &ScreenHandler{
		registry:    registry,
		waitTimeout: waitTimeout,
		logger:      logger,
	}
}

// Open godoc
// @Summary Open a map screen
// @Description Mounts a screen and starts the initial search with the default 5000 m radius
// @Tags Screens
// @Accept json
// @Produce json
// @Param request body dto.OpenScreenRequest false "Initial location report"
// @Param wait query bool false "Wait for the initial search to settle"
// @Success 201 {object} utils.SuccessResponse{data=usecase.ScreenState}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/screens [post]
func (h *ScreenHandler) Open(c *fiber.Ctx) error {
	var req dto.OpenScreenRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			h.logger.Debug("Failed to parse open screen request", zap.Error(err))
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
		if err := validator.Validate(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"validation": err.Error(),
			}))
		}
	}

	var initial *domain.LocationReport
	if req.Location != nil {
		report := req.Location.ToDomain()
		initial = &report
	}

	screen, err := h.registry.Open(initial)
	if err != nil {
		h.logger.Error("Failed to open screen", zap.Error(err))
		return utils.SendError(c, err)
	}

	state, meta, err := h.settle(c, screen, 1)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, state, meta)
}

// Get godoc
// @Summary Get screen state
// @Tags Screens
// @Produce json
// @Param id path string true "Screen ID"
// @Success 200 {object} utils.SuccessResponse{data=usecase.ScreenState}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/screens/{id} [get]
func (h *ScreenHandler) Get(c *fiber.Ctx) error {
	screen, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, screen.State(), nil)
}

// Close godoc
// @Summary Close a map screen
// @Description Unmounts the screen; an in-flight search is cancelled and its result discarded
// @Tags Screens
// @Param id path string true "Screen ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/screens/{id} [delete]
func (h *ScreenHandler) Close(c *fiber.Ctx) error {
	if err := h.registry.Close(c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReportLocation godoc
// @Summary Report device location
// @Description Pushes the outcome of the OS permission prompt and the current fix
// @Tags Screens
// @Accept json
// @Produce json
// @Param id path string true "Screen ID"
// @Param request body dto.LocationReportRequest true "Location report"
// @Success 200 {object} utils.SuccessResponse{data=usecase.ScreenState}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/screens/{id}/location [put]
func (h *ScreenHandler) ReportLocation(c *fiber.Ctx) error {
	screen, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.LocationReportRequest
	if err := h.parse(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	screen.ReportLocation(req.ToDomain())
	return utils.SendSuccess(c, screen.State(), nil)
}

// InputRadius godoc
// @Summary Update radius text
// @Description Applies a keystroke to the radius field; text with non-digits is rejected and the previous text kept
// @Tags Screens
// @Accept json
// @Produce json
// @Param id path string true "Screen ID"
// @Param request body dto.RadiusInputRequest true "Radius text"
// @Success 200 {object} utils.SuccessResponse{data=usecase.RadiusInputView}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/screens/{id}/radius [put]
func (h *ScreenHandler) InputRadius(c *fiber.Ctx) error {
	screen, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.RadiusInputRequest
	if err := h.parse(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, screen.InputRadius(req.Text), nil)
}

// Search godoc
// @Summary Search with the current radius
// @Description Submits the radius text; empty text searches with 5000 m, out-of-range text is rejected
// @Tags Screens
// @Produce json
// @Param id path string true "Screen ID"
// @Param wait query bool false "Wait for the search to settle"
// @Success 200 {object} utils.SuccessResponse{data=usecase.ScreenState}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 410 {object} utils.ErrorResponse
// @Router /api/v1/screens/{id}/search [post]
func (h *ScreenHandler) Search(c *fiber.Ctx) error {
	screen, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	seq, err := screen.SubmitRadius()
	if err != nil {
		return utils.SendError(c, err)
	}

	state, meta, err := h.settle(c, screen, seq)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, meta)
}

// Retry godoc
// @Summary Retry the last search
// @Description Re-runs the last search, re-requesting location permission
// @Tags Screens
// @Produce json
// @Param id path string true "Screen ID"
// @Param wait query bool false "Wait for the search to settle"
// @Success 200 {object} utils.SuccessResponse{data=usecase.ScreenState}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 410 {object} utils.ErrorResponse
// @Router /api/v1/screens/{id}/retry [post]
func (h *ScreenHandler) Retry(c *fiber.Ctx) error {
	screen, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	seq, err := screen.Retry()
	if err != nil {
		return utils.SendError(c, err)
	}

	state, meta, err := h.settle(c, screen, seq)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, meta)
}

// Select godoc
// @Summary Select a place
// @Description Selects a place from a marker or a list row; list selection also collapses the list
// @Tags Screens
// @Accept json
// @Produce json
// @Param id path string true "Screen ID"
// @Param request body dto.SelectPlaceRequest true "Selection"
// @Success 200 {object} utils.SuccessResponse{data=dto.SelectionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/screens/{id}/selection [post]
func (h *ScreenHandler) Select(c *fiber.Ctx) error {
	screen, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SelectPlaceRequest
	if err := h.parse(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	var (
		region domain.Region
		ok     bool
	)
	if req.Source == dto.SelectionSourceList {
		region, ok = screen.SelectFromList(req.PlaceID)
	} else {
		region, ok = screen.SelectFromMarker(req.PlaceID)
	}
	if !ok {
		return utils.SendError(c, errors.ErrPlaceNotFound.WithDetails(map[string]interface{}{
			"place_id": req.PlaceID,
		}))
	}

	return utils.SendSuccess(c, dto.SelectionResponse{
		Region: region,
		Screen: screen.State(),
	}, nil)
}

// ClearSelection godoc
// @Summary Clear the selection
// @Tags Screens
// @Produce json
// @Param id path string true "Screen ID"
// @Success 200 {object} utils.SuccessResponse{data=usecase.ScreenState}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/screens/{id}/selection [delete]
func (h *ScreenHandler) ClearSelection(c *fiber.Ctx) error {
	screen, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	screen.ClearSelection()
	return utils.SendSuccess(c, screen.State(), nil)
}

// ToggleList godoc
// @Summary Show or hide the result list
// @Tags Screens
// @Produce json
// @Param id path string true "Screen ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.ListToggleResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/screens/{id}/list/toggle [post]
func (h *ScreenHandler) ToggleList(c *fiber.Ctx) error {
	screen, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	visible := screen.ToggleList()
	return utils.SendSuccess(c, dto.ListToggleResponse{
		Visible: visible,
		Screen:  screen.State(),
	}, nil)
}

// PlaceDetails godoc
// @Summary Place detail view
// @Description Returns a copy of the selected place with directions, dial and photo links
// @Tags Screens
// @Produce json
// @Param id path string true "Screen ID"
// @Param placeId path string true "Place ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.PlaceDetails}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/screens/{id}/places/{placeId} [get]
func (h *ScreenHandler) PlaceDetails(c *fiber.Ctx) error {
	screen, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	details, err := screen.OpenDetails(c.Params("placeId"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, details, nil)
}

// ValidateRadius godoc
// @Summary Validate radius text
// @Tags Radius
// @Produce json
// @Param text query string false "Radius text in meters"
// @Success 200 {object} utils.SuccessResponse{data=dto.RadiusValidationResponse}
// @Router /api/v1/radius/validate [get]
func (h *ScreenHandler) ValidateRadius(c *fiber.Ctx) error {
	text := c.Query("text")
	return utils.SendSuccess(c, dto.NewRadiusValidationResponse(text, usecase.ValidateRadius(text)), nil)
}

func (h *ScreenHandler) parse(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		h.logger.Debug("Failed to parse request body", zap.String("path", c.Path()), zap.Error(err))
		return errors.ErrInvalidRequest
	}
	if err := validator.Validate(req); err != nil {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		})
	}
	return nil
}

// settle returns the screen state right away, or after the search settles
// when the client asked for ?wait=true. A wait that runs out returns the
// Loading state with meta.settled=false.
func (h *ScreenHandler) settle(c *fiber.Ctx, screen *usecase.Screen, seq uint64) (usecase.ScreenState, *utils.Meta, error) {
	meta := &utils.Meta{Seq: seq}
	if !c.QueryBool("wait") {
		return screen.State(), meta, nil
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(c.UserContext(), h.waitTimeout)
	defer cancel()

	state, err := screen.AwaitSettled(ctx)
	meta.TimeMSec = float64(time.Since(start).Microseconds()) / 1000
	switch {
	case err == nil:
		meta.Settled = true
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		h.logger.Debug("Wait for search ended before it settled", zap.String("screen_id", screen.ID()))
	default:
		return state, meta, err
	}

	return state, meta, nil
}
