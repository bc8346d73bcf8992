package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetWeekView handles GET /api/week/:weekOffset
func (s *Server) GetWeekView(c *fiber.Ctx) error {
	offset, err := s.parseOffset(c, "weekOffset")
	if err != nil {
		return nil
	}

	payload, err := s.calendarService.BuildWeek(c.Context(), currentUserID(c), offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payload)
}

// GetMonthChunk handles GET /api/months/:chunkOffset
func (s *Server) GetMonthChunk(c *fiber.Ctx) error {
	offset, err := s.parseOffset(c, "chunkOffset")
	if err != nil {
		return nil
	}

	payload, err := s.calendarService.BuildMonthChunk(c.Context(), currentUserID(c), offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payload)
}

// GetDayView handles GET /api/day/:date
func (s *Server) GetDayView(c *fiber.Ctx) error {
	day, err := s.calendarService.BuildDay(c.Context(), currentUserID(c), c.Params("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(day)
}
