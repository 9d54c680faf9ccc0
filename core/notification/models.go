package notification

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/user"
)

// Kinds
const (
	KindInfo     = "info"
	KindAlert    = "alert"
	KindEvent    = "event"
	KindReminder = "reminder"
)

// Audience selects the users a Notification is meant for; criteria are OR-ed.
type Audience struct {
	All      bool     `json:"all"`
	Roles    []string `json:"roles" validate:"omitempty,allroles"`
	ClassIDs []string `json:"class_ids"`
	UserIDs  []string `json:"user_ids"`
}

func (a *Audience) Clean() {
	a.Roles = core.UniqueStrings(a.Roles)
	a.ClassIDs = core.UniqueStrings(a.ClassIDs)
	a.UserIDs = core.UniqueStrings(a.UserIDs)
	if a.Roles == nil {
		a.Roles = []string{}
	}
	if a.ClassIDs == nil {
		a.ClassIDs = []string{}
	}
	if a.UserIDs == nil {
		a.UserIDs = []string{}
	}
}

func (a Audience) IsEmpty() bool {
	return !a.All && len(a.Roles) == 0 && len(a.ClassIDs) == 0 && len(a.UserIDs) == 0
}

// Includes reports whether usr, member of classIDs, is part of the audience.
func (a Audience) Includes(usr user.User, classIDs []string) bool {
	return a.All ||
		usr.HasAnyRole(a.Roles...) ||
		core.AnyStringInSlice(classIDs, a.ClassIDs) ||
		core.StringInSlice(usr.ID, a.UserIDs)
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Kind      string    `json:"kind"`
	Audience  Audience  `json:"audience"`
	CreatedBy string    `json:"created_by"`
	SendEmail bool      `json:"send_email"`
	ExpiresAt null.Time `json:"expires_at"` // UTC
	ReadBy    []string  `json:"read_by"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (n Notification) IsReadBy(userID string) bool {
	return core.StringInSlice(userID, n.ReadBy)
}

func (n Notification) IsExpired(now time.Time) bool {
	return n.ExpiresAt.Valid && !n.ExpiresAt.Time.After(now)
}

// NewNotification contains information needed to create a new Notification.
type NewNotification struct {
	Title     string    `json:"title" validate:"required,max=255"`
	Body      string    `json:"body" validate:"required,max=20000"`
	Kind      string    `json:"kind" validate:"omitempty,oneof=info alert event reminder"`
	Audience  Audience  `json:"audience"`
	SendEmail bool      `json:"send_email"`
	ExpiresAt null.Time `json:"expires_at"`
}

func (nn *NewNotification) Clean() {
	nn.Title = core.CleanString(core.StripHTML(nn.Title))
	nn.Body = core.CleanString(core.SanitizeHTML(nn.Body))
	nn.Kind = core.CleanString(nn.Kind, true /* lower */)
	if nn.Kind == "" {
		nn.Kind = KindInfo
	}
	nn.Audience.Clean()
	if nn.ExpiresAt.Valid {
		nn.ExpiresAt.Time = nn.ExpiresAt.Time.UTC()
	}
}

func (nn *NewNotification) Validate(validate *validator.Validate) error {
	nn.Clean()
	if err := validate.Struct(nn); err != nil {
		return err
	}
	if nn.Audience.IsEmpty() {
		return core.NewFieldError("audience", "audience must not be empty")
	}
	if nn.ExpiresAt.Valid && !nn.ExpiresAt.Time.After(time.Now()) {
		return core.NewFieldError("expires_at", "must be in the future")
	}
	return nil
}

// UpdateNotification defines what information may be provided to modify an existing Notification.
type UpdateNotification struct {
	Title     string    `json:"title" validate:"max=255"`
	Body      string    `json:"body" validate:"max=20000"`
	Kind      string    `json:"kind" validate:"omitempty,oneof=info alert event reminder"`
	ExpiresAt null.Time `json:"expires_at"`
}

func (un *UpdateNotification) Validate(orig Notification, validate *validator.Validate) error {
	if title := core.CleanString(core.StripHTML(un.Title)); title != "" {
		un.Title = title
	} else {
		un.Title = orig.Title
	}
	if body := core.CleanString(core.SanitizeHTML(un.Body)); body != "" {
		un.Body = body
	} else {
		un.Body = orig.Body
	}
	if kind := core.CleanString(un.Kind, true /* lower */); kind != "" {
		un.Kind = kind
	} else {
		un.Kind = orig.Kind
	}
	if un.ExpiresAt.Valid {
		un.ExpiresAt.Time = un.ExpiresAt.Time.UTC()
	} else {
		un.ExpiresAt = orig.ExpiresAt
	}
	return validate.Struct(un)
}

// QueryFilter holds the public listing filters; the service fills the rest from the acting user.
type QueryFilter struct {
	Unread *bool  `query:"unread"`
	Kind   string `query:"kind"`
	Scope  string `query:"scope"` // "all": every notification (admins)

	Audience     *AudienceFilter `query:"-"`
	Reader       string          `query:"-"` // user Unread applies to
	NotExpiredAt time.Time       `query:"-"`
}

// AudienceFilter matches the notifications whose audience includes a user.
type AudienceFilter struct {
	UserID   string
	Roles    []string
	ClassIDs []string
}

func (qf *QueryFilter) Clean() {
	qf.Kind = core.CleanString(qf.Kind, true /* lower */)
	qf.Scope = core.CleanString(qf.Scope, true /* lower */)
}

// Match applies the filter to n; it backs the repositories that filter in memory.
func (qf *QueryFilter) Match(n Notification) bool {
	if qf == nil {
		return true
	}
	if af := qf.Audience; af != nil {
		usr := user.User{ID: af.UserID, Roles: af.Roles}
		if !n.Audience.Includes(usr, af.ClassIDs) {
			return false
		}
	}
	if qf.Unread != nil && qf.Reader != "" && n.IsReadBy(qf.Reader) == *qf.Unread {
		return false
	}
	if qf.Kind != "" && n.Kind != qf.Kind {
		return false
	}
	if !qf.NotExpiredAt.IsZero() && n.IsExpired(qf.NotExpiredAt) {
		return false
	}
	return true
}

// Orderable fields (API name -> column).
var OrderingFields = map[string]string{
	"title":      "title",
	"kind":       "kind",
	"expires_at": "expires_at",
	"created_at": "created_at",
}

var DefaultOrdering = core.DBOrdering{Field: "created_at", Ascending: false}
