package server

import (
	"gatherly/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAvailabilityWeek handles GET /availability/week/:weekOffset
func (s *Server) GetAvailabilityWeek(c *fiber.Ctx) error {
	offset, err := s.parseOffset(c, "weekOffset")
	if err != nil {
		return nil
	}

	payload, err := s.availabilityService.GetWeekPayload(c.Context(), currentUserID(c), offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payload)
}

// GetAvailabilityByDate handles GET /availability/api/:date
// It returns the week payload for the week containing the date; the
// availability editor bootstraps from it.
func (s *Server) GetAvailabilityByDate(c *fiber.Ctx) error {
	payload, err := s.availabilityService.GetWeekPayloadForDate(c.Context(), currentUserID(c), c.Params("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payload)
}

// SubmitAvailability handles POST /availability/submit
func (s *Server) SubmitAvailability(c *fiber.Ctx) error {
	var req struct {
		WeekStart        string                  `json:"week_start"`
		AvailabilityData models.WeekAvailability `json:"availability_data"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.availabilityService.SubmitWeek(c.Context(), currentUserID(c), req.WeekStart, req.AvailabilityData); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// SaveDefaultSchedule handles POST /availability/save-default
func (s *Server) SaveDefaultSchedule(c *fiber.Ctx) error {
	var req struct {
		WeekOffset       int                     `json:"week_offset"`
		AvailabilityData models.WeekAvailability `json:"availability_data"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// The offset identifies the week the client was editing; only the
	// template is stored, so it just has to be within the horizon.
	if _, err := s.availabilityService.WeekStartForOffset(req.WeekOffset); err != nil {
		return respondError(c, err)
	}

	if err := s.availabilityService.SaveDefault(c.Context(), currentUserID(c), req.AvailabilityData); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// HasDefaultSchedule handles GET /availability/has-default
func (s *Server) HasDefaultSchedule(c *fiber.Ctx) error {
	hasDefault, err := s.availabilityService.HasDefault(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"has_default": hasDefault})
}
