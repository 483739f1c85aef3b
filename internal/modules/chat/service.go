package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitlink/internal/domain"
	"fitlink/internal/notify"
	"fitlink/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	groups   GroupRepository
	messages MessageRepository
	hub      *Hub
	notifier Notifier
}

func NewService(groups GroupRepository, messages MessageRepository, hub *Hub, notifier Notifier) *Service {
	return &Service{
		groups:   groups,
		messages: messages,
		hub:      hub,
		notifier: notifier,
	}
}

func (s *Service) CreateGroup(ctx context.Context, ownerID int64, req CreateGroupRequest) (*domain.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrValidation
	}

	g := &domain.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		OwnerID:     ownerID,
		AvatarURL:   req.AvatarURL,
	}
	if err := s.groups.Create(ctx, g); err != nil {
		return nil, err
	}
	if err := s.groups.AddMember(ctx, g.ID, ownerID); err != nil {
		return nil, err
	}
	g.MemberCount = 1
	return g, nil
}

func (s *Service) GetGroup(ctx context.Context, groupID int64) (*domain.Group, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if count, err := s.groups.CountMembers(ctx, groupID); err == nil {
		g.MemberCount = count
	}
	return g, nil
}

func (s *Service) MyGroups(ctx context.Context, userID int64) ([]domain.Group, error) {
	return s.groups.ListByUser(ctx, userID)
}

func (s *Service) JoinGroup(ctx context.Context, groupID, userID int64) error {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return err
	}

	if err := s.groups.AddMember(ctx, groupID, userID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyMember
		}
		return err
	}
	return nil
}

// InviteToGroup adds the invitee and drops a group-invite notification into
// their feed.
func (s *Service) InviteToGroup(ctx context.Context, groupID, inviterID, inviteeID int64) error {
	g, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}

	member, err := s.groups.IsMember(ctx, groupID, inviterID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}

	if err := s.groups.AddMember(ctx, groupID, inviteeID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyMember
		}
		return err
	}

	if s.notifier != nil {
		s.notifier.Publish(inviteeID, notify.NewGroupInvite(
			inviterID, groupID,
			"Group invite",
			fmt.Sprintf("You were added to %s", g.Name),
		))
	}
	return nil
}

func (s *Service) LeaveGroup(ctx context.Context, groupID, userID int64) error {
	err := s.groups.RemoveMember(ctx, groupID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotMember
	}
	return err
}

func (s *Service) History(ctx context.Context, groupID, userID int64, before time.Time, limit int) ([]domain.Message, error) {
	member, err := s.groups.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.messages.ListByGroup(ctx, groupID, before, limit)
}

// SendMessage persists the message, broadcasts it to the room and notifies
// offline-reachable members through their notification feeds.
func (s *Service) SendMessage(ctx context.Context, groupID, senderID int64, body string, msgType domain.MessageType) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrValidation
	}
	if msgType == "" {
		msgType = domain.MessageTypeText
	}

	member, err := s.groups.IsMember(ctx, groupID, senderID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	msg := &domain.Message{
		GroupID:  groupID,
		SenderID: senderID,
		Type:     msgType,
		Body:     body,
		SentAt:   time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(groupID, msg)
	}

	if s.notifier != nil {
		memberIDs, err := s.groups.MemberIDs(ctx, groupID)
		if err == nil {
			preview := body
			if len(preview) > 80 {
				preview = preview[:80]
			}
			for _, id := range memberIDs {
				if id == senderID {
					continue
				}
				s.notifier.Publish(id, notify.NewMessage(senderID, groupID, "New message", preview))
			}
		}
	}

	return msg, nil
}
