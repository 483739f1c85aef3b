package notify

import "time"

type Category string

const (
	CategoryLike            Category = "like"
	CategoryComment         Category = "comment"
	CategoryFollow          Category = "follow"
	CategoryGroupInvite     Category = "group_invite"
	CategoryWorkoutReminder Category = "workout_reminder"
	CategoryAchievement     Category = "achievement"
	CategoryEvent           Category = "event"
	CategoryMessage         Category = "message"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryLike, CategoryComment, CategoryFollow, CategoryGroupInvite,
		CategoryWorkoutReminder, CategoryAchievement, CategoryEvent, CategoryMessage:
		return true
	}
	return false
}

// Ref carries the contextual identifiers a notification points at. Which
// fields are set depends on the category; the Draft constructors only fill
// the ones that make sense for it.
type Ref struct {
	ActorID int64             `json:"actor_id,omitempty"`
	GroupID int64             `json:"group_id,omitempty"`
	PostID  int64             `json:"post_id,omitempty"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Notification is one alert record held by the Store. ID and CreatedAt are
// assigned on insertion and never change; TimeAgo is derived from CreatedAt
// and the current time and is recomputed by the refresh task.
type Notification struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Ref       Ref       `json:"ref"`
	CreatedAt time.Time `json:"created_at"`
	TimeAgo   string    `json:"time_ago"`
	Read      bool      `json:"read"`
}

// Draft is a notification before the Store assigns identity and timestamp.
type Draft struct {
	Category Category
	Title    string
	Body     string
	Ref      Ref
}

func NewLike(actorID, postID int64, title, body string) Draft {
	return Draft{Category: CategoryLike, Title: title, Body: body, Ref: Ref{ActorID: actorID, PostID: postID}}
}

func NewComment(actorID, postID int64, title, body string) Draft {
	return Draft{Category: CategoryComment, Title: title, Body: body, Ref: Ref{ActorID: actorID, PostID: postID}}
}

func NewFollow(actorID int64, title, body string) Draft {
	return Draft{Category: CategoryFollow, Title: title, Body: body, Ref: Ref{ActorID: actorID}}
}

func NewGroupInvite(actorID, groupID int64, title, body string) Draft {
	return Draft{Category: CategoryGroupInvite, Title: title, Body: body, Ref: Ref{ActorID: actorID, GroupID: groupID}}
}

func NewWorkoutReminder(title, body string) Draft {
	return Draft{Category: CategoryWorkoutReminder, Title: title, Body: body}
}

func NewAchievement(title, body string, payload map[string]string) Draft {
	return Draft{Category: CategoryAchievement, Title: title, Body: body, Ref: Ref{Payload: payload}}
}

func NewEvent(groupID int64, title, body string) Draft {
	return Draft{Category: CategoryEvent, Title: title, Body: body, Ref: Ref{GroupID: groupID}}
}

func NewMessage(actorID, groupID int64, title, body string) Draft {
	return Draft{Category: CategoryMessage, Title: title, Body: body, Ref: Ref{ActorID: actorID, GroupID: groupID}}
}

// Deliverer receives delivery side effects when the matching preference is
// enabled. Real push/sound dispatch lives behind this interface; the Store
// itself never touches a transport.
type Deliverer interface {
	Deliver(n Notification)
	PlaySound(n Notification)
}

type nopDeliverer struct{}

func (nopDeliverer) Deliver(Notification)   {}
func (nopDeliverer) PlaySound(Notification) {}
