package server

import (
	"gatherly/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.GetFriends(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"friends": friends})
}

// AddFriend handles POST /friends/add
func (s *Server) AddFriend(c *fiber.Ctx) error {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	friendship, err := s.friendService.AddFriendByPhone(c.Context(), currentUserID(c), req.Phone)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Friend request sent to " + friendship.Addressee.FullName(),
	})
}

// AcceptFriendRequest handles POST /friends/accept/:id
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	friendship, err := s.friendService.AcceptFriendRequest(c.Context(), currentUserID(c), requestID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "You are now friends with " + friendship.Requester.FullName(),
	})
}

// DeclineFriendRequest handles POST /friends/decline/:id
func (s *Server) DeclineFriendRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.friendService.DeclineFriendRequest(c.Context(), currentUserID(c), requestID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Friend request declined",
	})
}

// GetPendingRequests handles GET /friends/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.GetPendingRequests(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// GetSentRequests handles GET /friends/requests/sent
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	requests, err := s.friendService.GetSentRequests(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// SearchFriends handles GET /friends/search?q=
func (s *Server) SearchFriends(c *fiber.Ctx) error {
	results, err := s.friendService.SearchByPhone(c.Context(), currentUserID(c), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"results": results})
}

// RemoveFriend handles DELETE /friends/:userId
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.friendService.RemoveFriend(c.Context(), currentUserID(c), targetID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Friend removed",
	})
}
