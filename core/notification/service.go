package notification

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/user"
)

const (
	Topic        = "notifications"
	EventCreated = "notification.created"

	ScopeAll = "all"

	emailTemplate = "notification"
)

var (
	// errors
	ErrNotFound = errors.New("notification not found")
)

type (
	Repository interface {
		CreateNotification(ctx context.Context, n Notification) (Notification, error)
		QueryNotifications(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Notification, error)
		CountNotifications(ctx context.Context, filter *QueryFilter) (int, error)
		GetNotification(ctx context.Context, id string) (Notification, error)
		UpdateNotification(ctx context.Context, n Notification) (Notification, error)
		// MarkRead adds userID to the readers of the notification.
		MarkRead(ctx context.Context, id, userID string) (Notification, error)
		DeleteNotification(ctx context.Context, id string) error
	}

	Service interface {
		// Create checks what audience actor may address; admins address anyone, teachers their
		// classes and individual users.
		Create(ctx context.Context, actor user.User, nn NewNotification) (Notification, error)
		Query(ctx context.Context, actor user.User, filter *QueryFilter, ordering []core.DBOrdering) ([]Notification, error)
		UnreadCount(ctx context.Context, actor user.User) (int, error)
		// GetForUser returns ErrNotFound unless actor is an admin, the creator or, before
		// expiry, part of the audience.
		GetForUser(ctx context.Context, actor user.User, id string) (Notification, error)
		// Recipients resolves the active users n is meant for.
		Recipients(ctx context.Context, n Notification) ([]user.User, error)
		Update(ctx context.Context, actor user.User, n Notification, un UpdateNotification) (Notification, error)
		MarkRead(ctx context.Context, actor user.User, n Notification) (Notification, error)
		Delete(ctx context.Context, actor user.User, n Notification) error
	}

	service struct {
		repo      Repository
		usrSvc    user.Service
		clsSvc    class.Service
		mailSvc   core.EmailService
		publisher core.EventPublisher
		logger    core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(
	repo Repository,
	usrSvc user.Service,
	clsSvc class.Service,
	mailSvc core.EmailService,
	publisher core.EventPublisher,
	logger core.Logger,
) Service {
	return &service{
		repo:      repo,
		usrSvc:    usrSvc,
		clsSvc:    clsSvc,
		mailSvc:   mailSvc,
		publisher: publisher,
		logger:    logger,
	}
}

func (svc *service) Create(ctx context.Context, actor user.User, nn NewNotification) (Notification, error) {
	if !actor.IsStaff() {
		return Notification{}, core.ErrForbidden
	}
	if err := svc.checkAudience(ctx, actor, nn.Audience); err != nil {
		return Notification{}, err
	}

	now := time.Now().UTC()
	n := Notification{
		Title:     nn.Title,
		Body:      nn.Body,
		Kind:      nn.Kind,
		Audience:  nn.Audience,
		CreatedBy: actor.ID,
		SendEmail: nn.SendEmail,
		ExpiresAt: nn.ExpiresAt,
		ReadBy:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	n, err := svc.repo.CreateNotification(ctx, n)
	if err != nil {
		return Notification{}, errors.Wrap(err, "creating notification")
	}

	if n.SendEmail {
		if err = svc.sendEmails(ctx, n); err != nil {
			svc.logger.Error(fmt.Sprintf("mailing notification %s: %v", n.ID, err), err, actor)
		}
	}
	if err = svc.publisher.Publish(ctx, Topic, core.NewEvent(EventCreated, n.ID, actor.ID, n)); err != nil {
		svc.logger.Warn(fmt.Sprintf("publishing %s: %v", EventCreated, err), err, actor)
	}
	return n, nil
}

func (svc *service) checkAudience(ctx context.Context, actor user.User, aud Audience) error {
	if !actor.IsAdmin() && (aud.All || len(aud.Roles) > 0) {
		return core.ErrForbidden
	}

	if len(aud.ClassIDs) > 0 {
		classes, err := svc.clsSvc.GetManyByID(ctx, aud.ClassIDs)
		if err != nil {
			return errors.Wrap(err, "finding audience classes")
		}
		found := make(map[string]class.Class, len(classes))
		for _, cls := range classes {
			found[cls.ID] = cls
		}
		var invalid []string
		for _, id := range aud.ClassIDs {
			cls, ok := found[id]
			if !ok {
				invalid = append(invalid, id)
				continue
			}
			if !actor.IsAdmin() && !cls.HasTeacher(actor.ID) {
				return core.ErrForbidden
			}
		}
		if len(invalid) > 0 {
			return core.NewFieldError("class_ids", "invalid classes: "+strings.Join(invalid, ", "))
		}
	}

	if len(aud.UserIDs) > 0 {
		users, err := svc.usrSvc.GetManyByID(ctx, aud.UserIDs)
		if err != nil {
			return errors.Wrap(err, "finding audience users")
		}
		found := make(map[string]bool, len(users))
		for _, usr := range users {
			found[usr.ID] = true
		}
		var invalid []string
		for _, id := range aud.UserIDs {
			if !found[id] {
				invalid = append(invalid, id)
			}
		}
		if len(invalid) > 0 {
			return core.NewFieldError("user_ids", "invalid users: "+strings.Join(invalid, ", "))
		}
	}
	return nil
}

func (svc *service) Recipients(ctx context.Context, n Notification) ([]user.User, error) {
	active := true
	filter := &user.QueryFilter{IsActive: &active}
	if !n.Audience.All && len(n.Audience.Roles) == 0 && len(n.Audience.ClassIDs) == 0 {
		filter.IDs = n.Audience.UserIDs
	}
	users, err := svc.usrSvc.Query(ctx, filter, nil)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}

	// user id -> audience classes
	memberOf := make(map[string][]string)
	if len(n.Audience.ClassIDs) > 0 {
		classes, err := svc.clsSvc.GetManyByID(ctx, n.Audience.ClassIDs)
		if err != nil {
			return nil, errors.Wrap(err, "finding audience classes")
		}
		for _, cls := range classes {
			for _, id := range cls.MemberIDs() {
				memberOf[id] = append(memberOf[id], cls.ID)
			}
		}
	}

	recipients := make([]user.User, 0, len(users))
	for _, usr := range users {
		if n.Audience.Includes(usr, memberOf[usr.ID]) {
			recipients = append(recipients, usr)
		}
	}
	return recipients, nil
}

func (svc *service) sendEmails(ctx context.Context, n Notification) error {
	recipients, err := svc.Recipients(ctx, n)
	if err != nil {
		return err
	}

	title, text := core.PlainText(n.Title), core.PlainText(n.Body)
	messages := make([]*core.EmailMessage, 0, len(recipients))
	for _, usr := range recipients {
		if usr.Email == "" {
			continue
		}
		messages = append(messages, &core.EmailMessage{
			To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
			Subject:      title,
			TemplateName: emailTemplate,
			TemplateData: map[string]interface{}{
				"Name":  usr.Name,
				"Title": title,
				"Text":  text,
				"HTML":  core.SafeHTML(n.Body),
			},
		})
	}
	if len(messages) > 0 {
		svc.mailSvc.SendMessages(messages...)
	}
	return nil
}

func (svc *service) Query(ctx context.Context, actor user.User, filter *QueryFilter, ordering []core.DBOrdering) ([]Notification, error) {
	if filter == nil {
		filter = new(QueryFilter)
	}
	filter.Clean()
	if err := svc.scope(ctx, actor, filter); err != nil {
		return nil, err
	}
	return svc.repo.QueryNotifications(ctx, filter, core.AllowedOrdering(ordering, OrderingFields, DefaultOrdering))
}

func (svc *service) UnreadCount(ctx context.Context, actor user.User) (int, error) {
	unread := true
	filter := &QueryFilter{Unread: &unread}
	if err := svc.scope(ctx, actor, filter); err != nil {
		return 0, err
	}
	return svc.repo.CountNotifications(ctx, filter)
}

// scope restricts filter to the audience of actor, unless an admin asks for every notification.
func (svc *service) scope(ctx context.Context, actor user.User, filter *QueryFilter) error {
	filter.Reader = actor.ID
	if filter.Scope == ScopeAll && actor.IsAdmin() {
		return nil
	}

	classes, err := svc.clsSvc.ClassesOf(ctx, actor.ID)
	if err != nil {
		return errors.Wrap(err, "finding user classes")
	}
	classIDs := make([]string, 0, len(classes))
	for _, cls := range classes {
		classIDs = append(classIDs, cls.ID)
	}
	filter.Audience = &AudienceFilter{UserID: actor.ID, Roles: actor.Roles, ClassIDs: classIDs}
	if !actor.IsAdmin() {
		filter.NotExpiredAt = time.Now().UTC()
	}
	return nil
}

func (svc *service) GetForUser(ctx context.Context, actor user.User, id string) (Notification, error) {
	n, err := svc.repo.GetNotification(ctx, id)
	if err != nil {
		return Notification{}, err
	}
	if actor.IsAdmin() || n.CreatedBy == actor.ID {
		return n, nil
	}
	if n.IsExpired(time.Now()) {
		return Notification{}, ErrNotFound
	}

	classes, err := svc.clsSvc.ClassesOf(ctx, actor.ID)
	if err != nil {
		return Notification{}, errors.Wrap(err, "finding user classes")
	}
	classIDs := make([]string, 0, len(classes))
	for _, cls := range classes {
		classIDs = append(classIDs, cls.ID)
	}
	if !n.Audience.Includes(actor, classIDs) {
		return Notification{}, ErrNotFound
	}
	return n, nil
}

func (svc *service) Update(ctx context.Context, actor user.User, n Notification, un UpdateNotification) (Notification, error) {
	if !(n.CreatedBy == actor.ID || actor.IsAdmin()) {
		return Notification{}, core.ErrForbidden
	}
	n.Title = un.Title
	n.Body = un.Body
	n.Kind = un.Kind
	n.ExpiresAt = un.ExpiresAt
	n.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateNotification(ctx, n)
}

func (svc *service) MarkRead(ctx context.Context, actor user.User, n Notification) (Notification, error) {
	if n.IsReadBy(actor.ID) {
		return n, nil
	}
	return svc.repo.MarkRead(ctx, n.ID, actor.ID)
}

func (svc *service) Delete(ctx context.Context, actor user.User, n Notification) error {
	if !(n.CreatedBy == actor.ID || actor.IsAdmin()) {
		return core.ErrForbidden
	}
	return svc.repo.DeleteNotification(ctx, n.ID)
}
