package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"fitlink/internal/domain"
	"fitlink/internal/notify"
	"fitlink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Create(ctx context.Context, g *domain.Group) error {
	args := m.Called(ctx, g)
	if args.Error(0) == nil {
		g.ID = 5
	}
	return args.Error(0)
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupRepository) AddMember(ctx context.Context, groupID, userID int64) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockGroupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGroupRepository) MemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockGroupRepository) CountMembers(ctx context.Context, groupID int64) (int, error) {
	args := m.Called(ctx, groupID)
	return args.Int(0), args.Error(1)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	if args.Error(0) == nil {
		msg.ID = 31
	}
	return args.Error(0)
}

func (m *MockMessageRepository) ListByGroup(ctx context.Context, groupID int64, before time.Time, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, groupID, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

type recordingNotifier struct {
	userIDs []int64
	drafts  []notify.Draft
}

func (n *recordingNotifier) Publish(userID int64, d notify.Draft) {
	n.userIDs = append(n.userIDs, userID)
	n.drafts = append(n.drafts, d)
}

func TestService_CreateGroup_OwnerBecomesMember(t *testing.T) {
	groups := new(MockGroupRepository)
	messages := new(MockMessageRepository)
	service := NewService(groups, messages, nil, nil)

	groups.On("Create", mock.Anything, mock.AnythingOfType("*domain.Group")).Return(nil)
	groups.On("AddMember", mock.Anything, int64(5), int64(1)).Return(nil)

	g, err := service.CreateGroup(context.Background(), 1, CreateGroupRequest{Name: "  Morning Runners  "})

	require.NoError(t, err)
	assert.Equal(t, int64(5), g.ID)
	assert.Equal(t, "Morning Runners", g.Name)
	assert.Equal(t, 1, g.MemberCount)
	groups.AssertExpectations(t)
}

func TestService_CreateGroup_RejectsEmptyName(t *testing.T) {
	groups := new(MockGroupRepository)
	service := NewService(groups, new(MockMessageRepository), nil, nil)

	_, err := service.CreateGroup(context.Background(), 1, CreateGroupRequest{Name: "   "})

	assert.ErrorIs(t, err, ErrValidation)
	groups.AssertNotCalled(t, "Create")
}

func TestService_JoinGroup_Duplicate(t *testing.T) {
	groups := new(MockGroupRepository)
	service := NewService(groups, new(MockMessageRepository), nil, nil)

	groups.On("GetByID", mock.Anything, int64(5)).Return(&domain.Group{ID: 5, Name: "Runners"}, nil)
	groups.On("CountMembers", mock.Anything, int64(5)).Return(3, nil)
	groups.On("AddMember", mock.Anything, int64(5), int64(2)).Return(repository.ErrDuplicate)

	err := service.JoinGroup(context.Background(), 5, 2)

	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestService_InviteToGroup_PublishesInvite(t *testing.T) {
	groups := new(MockGroupRepository)
	notifier := &recordingNotifier{}
	service := NewService(groups, new(MockMessageRepository), nil, notifier)

	groups.On("GetByID", mock.Anything, int64(5)).Return(&domain.Group{ID: 5, Name: "Runners"}, nil)
	groups.On("CountMembers", mock.Anything, int64(5)).Return(3, nil)
	groups.On("IsMember", mock.Anything, int64(5), int64(1)).Return(true, nil)
	groups.On("AddMember", mock.Anything, int64(5), int64(9)).Return(nil)

	err := service.InviteToGroup(context.Background(), 5, 1, 9)

	require.NoError(t, err)
	require.Len(t, notifier.drafts, 1)
	assert.Equal(t, []int64{9}, notifier.userIDs)
	assert.Equal(t, notify.CategoryGroupInvite, notifier.drafts[0].Category)
	assert.Equal(t, int64(5), notifier.drafts[0].Ref.GroupID)
}

func TestService_InviteToGroup_InviterMustBeMember(t *testing.T) {
	groups := new(MockGroupRepository)
	service := NewService(groups, new(MockMessageRepository), nil, nil)

	groups.On("GetByID", mock.Anything, int64(5)).Return(&domain.Group{ID: 5, Name: "Runners"}, nil)
	groups.On("CountMembers", mock.Anything, int64(5)).Return(3, nil)
	groups.On("IsMember", mock.Anything, int64(5), int64(7)).Return(false, nil)

	err := service.InviteToGroup(context.Background(), 5, 7, 9)

	assert.ErrorIs(t, err, ErrNotMember)
	groups.AssertNotCalled(t, "AddMember")
}

func TestService_History_RequiresMembership(t *testing.T) {
	groups := new(MockGroupRepository)
	messages := new(MockMessageRepository)
	service := NewService(groups, messages, nil, nil)

	groups.On("IsMember", mock.Anything, int64(5), int64(9)).Return(false, nil)

	_, err := service.History(context.Background(), 5, 9, time.Now(), 20)

	assert.ErrorIs(t, err, ErrNotMember)
	messages.AssertNotCalled(t, "ListByGroup")
}

func TestService_SendMessage_NotifiesOthersOnly(t *testing.T) {
	groups := new(MockGroupRepository)
	messages := new(MockMessageRepository)
	notifier := &recordingNotifier{}
	service := NewService(groups, messages, nil, notifier)

	groups.On("IsMember", mock.Anything, int64(5), int64(1)).Return(true, nil)
	messages.On("Create", mock.Anything, mock.AnythingOfType("*domain.Message")).Return(nil)
	groups.On("MemberIDs", mock.Anything, int64(5)).Return([]int64{1, 2, 3}, nil)

	msg, err := service.SendMessage(context.Background(), 5, 1, "Run at 7?", domain.MessageTypeText)

	require.NoError(t, err)
	assert.Equal(t, int64(31), msg.ID)
	assert.Equal(t, domain.MessageTypeText, msg.Type)
	assert.ElementsMatch(t, []int64{2, 3}, notifier.userIDs)
	for _, d := range notifier.drafts {
		assert.Equal(t, notify.CategoryMessage, d.Category)
	}
}

func TestService_SendMessage_TruncatesPreview(t *testing.T) {
	groups := new(MockGroupRepository)
	messages := new(MockMessageRepository)
	notifier := &recordingNotifier{}
	service := NewService(groups, messages, nil, notifier)

	groups.On("IsMember", mock.Anything, int64(5), int64(1)).Return(true, nil)
	messages.On("Create", mock.Anything, mock.AnythingOfType("*domain.Message")).Return(nil)
	groups.On("MemberIDs", mock.Anything, int64(5)).Return([]int64{1, 2}, nil)

	long := strings.Repeat("a", 200)
	_, err := service.SendMessage(context.Background(), 5, 1, long, domain.MessageTypeText)

	require.NoError(t, err)
	require.Len(t, notifier.drafts, 1)
	assert.Len(t, notifier.drafts[0].Body, 80)
}

func TestService_SendMessage_RejectsEmptyBody(t *testing.T) {
	groups := new(MockGroupRepository)
	messages := new(MockMessageRepository)
	service := NewService(groups, messages, nil, nil)

	_, err := service.SendMessage(context.Background(), 5, 1, "   ", domain.MessageTypeText)

	assert.ErrorIs(t, err, ErrValidation)
	messages.AssertNotCalled(t, "Create")
}
