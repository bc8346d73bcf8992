package service

import (
	"context"
	"strings"

	"gatherly/internal/models"
	"gatherly/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// AddFriendByPhone looks the target user up by phone number and sends them a
// friend request.
func (s *FriendService) AddFriendByPhone(ctx context.Context, userID uint, phone string) (*models.Friendship, error) {
	phone = normalizePhone(phone)
	if phone == "" {
		return nil, models.NewValidationError("Phone number is required")
	}

	target, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, models.NewValidationError("No user found with that phone number")
	}

	return s.SendFriendRequest(ctx, userID, target.ID)
}

// SendFriendRequest sends a friend request to the target user.
func (s *FriendService) SendFriendRequest(ctx context.Context, userID, targetUserID uint) (*models.Friendship, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot send friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	existing, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.FriendshipStatusAccepted:
			return nil, models.NewValidationError("You are already friends")
		case models.FriendshipStatusPending:
			if existing.RequesterID == userID {
				return nil, models.NewValidationError("Friend request already sent")
			}
			return nil, models.NewValidationError("You already have a pending friend request from this user")
		case models.FriendshipStatusBlocked:
			return nil, models.NewValidationError("Cannot send friend request to this user")
		}
	}

	friendship := &models.Friendship{
		RequesterID: userID,
		AddresseeID: targetUserID,
		Status:      models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}

	return s.friendRepo.GetByID(ctx, friendship.ID)
}

// GetPendingRequests returns pending friend requests for the user.
func (s *FriendService) GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.friendRepo.GetPendingRequests(ctx, userID)
}

// GetSentRequests returns friend requests sent by the user.
func (s *FriendService) GetSentRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.friendRepo.GetSentRequests(ctx, userID)
}

// AcceptFriendRequest accepts a pending friend request. Only the addressee
// may accept; acceptance makes availability visible in both directions.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, userID, requestID uint) (*models.Friendship, error) {
	friendship, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if friendship.AddresseeID != userID {
		return nil, models.NewUnauthorizedError("You can only accept friend requests sent to you")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return nil, models.NewValidationError("Friend request is not pending")
	}

	if err := s.friendRepo.UpdateStatus(ctx, requestID, models.FriendshipStatusAccepted); err != nil {
		return nil, err
	}

	return s.friendRepo.GetByID(ctx, requestID)
}

// DeclineFriendRequest declines or cancels a pending friend request.
func (s *FriendService) DeclineFriendRequest(ctx context.Context, userID, requestID uint) (*models.Friendship, error) {
	friendship, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if friendship.AddresseeID != userID && friendship.RequesterID != userID {
		return nil, models.NewUnauthorizedError("You can only decline or cancel your own pending requests")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return nil, models.NewValidationError("Friend request is not pending")
	}

	if err := s.friendRepo.Delete(ctx, friendship.ID); err != nil {
		return nil, err
	}

	return friendship, nil
}

// FriendSummary is the friend list entry with display attributes attached.
type FriendSummary struct {
	UserID     uint   `json:"id"`
	Name       string `json:"name"`
	Initials   string `json:"initials"`
	Phone      string `json:"phone"`
	ColorIndex int    `json:"color_index"`
}

// GetFriends returns the user's accepted friends with display attributes.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]FriendSummary, error) {
	friends, err := s.friendRepo.GetFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]FriendSummary, 0, len(friends))
	for _, friend := range friends {
		summaries = append(summaries, FriendSummary{
			UserID:     friend.ID,
			Name:       friend.FullName(),
			Initials:   friend.Initials(),
			Phone:      friend.Phone,
			ColorIndex: int(friend.ID % models.PaletteSize),
		})
	}
	return summaries, nil
}

// SearchByPhone searches users by phone number fragment, excluding the
// searcher.
func (s *FriendService) SearchByPhone(ctx context.Context, userID uint, fragment string) ([]FriendSummary, error) {
	fragment = normalizePhone(fragment)
	if len(fragment) < 3 {
		return nil, models.NewValidationError("Search query must be at least 3 digits")
	}

	const searchLimit = 20
	users, err := s.userRepo.SearchByPhone(ctx, fragment, userID, searchLimit)
	if err != nil {
		return nil, err
	}

	results := make([]FriendSummary, 0, len(users))
	for _, user := range users {
		results = append(results, FriendSummary{
			UserID:     user.ID,
			Name:       user.FullName(),
			Initials:   user.Initials(),
			Phone:      user.Phone,
			ColorIndex: int(user.ID % models.PaletteSize),
		})
	}
	return results, nil
}

// RemoveFriend removes the friendship between two users.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, targetUserID uint) error {
	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return err
	}
	if friendship == nil || friendship.Status != models.FriendshipStatusAccepted {
		return models.NewNotFoundError("Friendship", targetUserID)
	}

	return s.friendRepo.RemoveFriendship(ctx, userID, targetUserID)
}

// normalizePhone strips everything but digits and a leading plus sign.
func normalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
