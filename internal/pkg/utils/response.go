package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gym-finder/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Seq      uint64  `json:"seq,omitempty"`
	Settled  bool    `json:"settled,omitempty"`
	TimeMSec float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendCreated(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

// SendError renders the first AppError in err's chain; anything else is a 500.
func SendError(c *fiber.Ctx, err error) error {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
