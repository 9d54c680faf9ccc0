package message

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/file"
	"github.com/trezcool/ujumbe/core/user"
)

const (
	Topic        = "messages"
	EventCreated = "message.created"

	replyPrefix = "Re: "
)

var (
	// errors
	ErrNotFound = errors.New("message not found")
)

type (
	Repository interface {
		CreateMessage(ctx context.Context, msg Message) (Message, error)
		// QueryMessages applies AND operation on the set QueryFilter fields, except RecipientID and
		// MemberClassIDs that are OR-ed together.
		QueryMessages(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Message, error)
		CountMessages(ctx context.Context, filter *QueryFilter) (int, error)
		GetMessage(ctx context.Context, id string) (Message, error)
		UpdateMessage(ctx context.Context, msg Message) (Message, error)
		// MarkRead adds userID to the readers of the message.
		MarkRead(ctx context.Context, id, userID string) (Message, error)
		DeleteMessage(ctx context.Context, id string) error
	}

	Service interface {
		// Send checks who sender may write to and what the new message references.
		Send(ctx context.Context, sender user.User, nm NewMessage) (Message, error)
		Query(ctx context.Context, actor user.User, filter *QueryFilter, ordering []core.DBOrdering) ([]Message, error)
		UnreadCount(ctx context.Context, actor user.User) (int, error)
		// GetForUser returns ErrNotFound unless actor is an admin or a participant.
		GetForUser(ctx context.Context, actor user.User, id string) (Message, error)
		IsParticipant(ctx context.Context, actor user.User, msg Message) (bool, error)
		// IsRecipient reports whether msg was sent to actor, directly or through a class.
		IsRecipient(ctx context.Context, actor user.User, msg Message) (bool, error)
		// CanAccessFile reports whether actor takes part in a message carrying the file.
		CanAccessFile(ctx context.Context, actor user.User, fileID string) (bool, error)
		Update(ctx context.Context, actor user.User, msg Message, um UpdateMessage) (Message, error)
		MarkRead(ctx context.Context, actor user.User, msg Message) (Message, error)
		Delete(ctx context.Context, actor user.User, msg Message) error
	}

	service struct {
		repo      Repository
		usrSvc    user.Service
		clsSvc    class.Service
		fileSvc   file.Service
		publisher core.EventPublisher
		logger    core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(
	repo Repository,
	usrSvc user.Service,
	clsSvc class.Service,
	fileSvc file.Service,
	publisher core.EventPublisher,
	logger core.Logger,
) Service {
	return &service{
		repo:      repo,
		usrSvc:    usrSvc,
		clsSvc:    clsSvc,
		fileSvc:   fileSvc,
		publisher: publisher,
		logger:    logger,
	}
}

func (svc *service) Send(ctx context.Context, sender user.User, nm NewMessage) (Message, error) {
	if err := svc.checkRecipients(ctx, sender, nm.RecipientIDs); err != nil {
		return Message{}, err
	}
	if nm.ClassID != "" {
		if err := svc.checkClass(ctx, sender, nm.ClassID); err != nil {
			return Message{}, err
		}
	}
	if nm.ParentID != "" {
		parent, err := svc.GetForUser(ctx, sender, nm.ParentID)
		if err != nil {
			if errors.Cause(err) == ErrNotFound {
				return Message{}, core.NewFieldError("parent_id", user.ErrInvalidValue.Error())
			}
			return Message{}, errors.Wrap(err, "finding parent message")
		}
		if nm.Subject == "" {
			nm.Subject = replySubject(parent.Subject)
		}
	}
	if err := svc.checkAttachments(ctx, sender, nm.AttachmentIDs); err != nil {
		return Message{}, err
	}

	now := time.Now().UTC()
	msg := Message{
		SenderID:      sender.ID,
		RecipientIDs:  nm.RecipientIDs,
		ClassID:       nm.ClassID,
		ParentID:      nm.ParentID,
		Subject:       nm.Subject,
		Body:          nm.Body,
		AttachmentIDs: nm.AttachmentIDs,
		ReadBy:        []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if msg.RecipientIDs == nil {
		msg.RecipientIDs = []string{}
	}
	if msg.AttachmentIDs == nil {
		msg.AttachmentIDs = []string{}
	}

	msg, err := svc.repo.CreateMessage(ctx, msg)
	if err != nil {
		return Message{}, errors.Wrap(err, "creating message")
	}

	if err = svc.publisher.Publish(ctx, Topic, core.NewEvent(EventCreated, msg.ID, sender.ID, msg)); err != nil {
		svc.logger.Warn(fmt.Sprintf("publishing %s: %v", EventCreated, err), err, sender)
	}
	return msg, nil
}

// checkRecipients makes sure recipients are active users sender may write to.
func (svc *service) checkRecipients(ctx context.Context, sender user.User, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if core.StringInSlice(sender.ID, ids) {
		return core.NewFieldError("recipient_ids", "you cannot send a message to yourself")
	}

	users, err := svc.usrSvc.GetManyByID(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "finding recipients")
	}
	active := make(map[string]user.User, len(users))
	for _, usr := range users {
		if usr.IsActive {
			active[usr.ID] = usr
		}
	}

	var invalid []string
	for _, id := range ids {
		if _, ok := active[id]; !ok {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return core.NewFieldError("recipient_ids", "invalid recipients: "+strings.Join(invalid, ", "))
	}

	// students & parents may only write to the staff
	if !sender.IsStaff() {
		for _, usr := range active {
			if !usr.IsStaff() {
				return core.ErrForbidden
			}
		}
	}
	return nil
}

// checkClass makes sure sender may write to the class: admins to any class, teachers to the classes they teach.
func (svc *service) checkClass(ctx context.Context, sender user.User, classID string) error {
	cls, err := svc.clsSvc.GetByID(ctx, classID)
	if err != nil {
		if errors.Cause(err) == class.ErrNotFound {
			return core.NewFieldError("class_id", user.ErrInvalidValue.Error())
		}
		return errors.Wrap(err, "finding class")
	}
	if sender.IsAdmin() || (sender.IsTeacher() && cls.HasTeacher(sender.ID)) {
		return nil
	}
	return core.ErrForbidden
}

// checkAttachments makes sure the files exist and belong to sender.
func (svc *service) checkAttachments(ctx context.Context, sender user.User, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	files, err := svc.fileSvc.GetManyByID(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "finding attachments")
	}
	owned := make(map[string]bool, len(files))
	for _, f := range files {
		owned[f.ID] = f.OwnerID == sender.ID
	}
	var invalid []string
	for _, id := range ids {
		if !owned[id] {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return core.NewFieldError("attachment_ids", "invalid attachments: "+strings.Join(invalid, ", "))
	}
	return nil
}

func (svc *service) Query(ctx context.Context, actor user.User, filter *QueryFilter, ordering []core.DBOrdering) ([]Message, error) {
	if filter == nil {
		filter = new(QueryFilter)
	}
	filter.Clean()
	if err := svc.scope(ctx, actor, filter); err != nil {
		return nil, err
	}
	return svc.repo.QueryMessages(ctx, filter, core.AllowedOrdering(ordering, OrderingFields, DefaultOrdering))
}

func (svc *service) UnreadCount(ctx context.Context, actor user.User) (int, error) {
	unread := true
	filter := &QueryFilter{Box: BoxInbox, Unread: &unread}
	if err := svc.scope(ctx, actor, filter); err != nil {
		return 0, err
	}
	return svc.repo.CountMessages(ctx, filter)
}

// scope restricts filter to the mailbox of actor.
func (svc *service) scope(ctx context.Context, actor user.User, filter *QueryFilter) error {
	filter.Reader = actor.ID
	if filter.Box == BoxSent {
		filter.SenderID = actor.ID
		return nil
	}

	classes, err := svc.clsSvc.ClassesOf(ctx, actor.ID)
	if err != nil {
		return errors.Wrap(err, "finding user classes")
	}
	filter.RecipientID = actor.ID
	filter.MemberClassIDs = make([]string, 0, len(classes))
	for _, cls := range classes {
		filter.MemberClassIDs = append(filter.MemberClassIDs, cls.ID)
	}
	filter.ExcludeSenderID = actor.ID
	return nil
}

func (svc *service) GetForUser(ctx context.Context, actor user.User, id string) (Message, error) {
	msg, err := svc.repo.GetMessage(ctx, id)
	if err != nil {
		return Message{}, err
	}
	if actor.IsAdmin() {
		return msg, nil
	}
	ok, err := svc.IsParticipant(ctx, actor, msg)
	if err != nil {
		return Message{}, err
	}
	if !ok {
		return Message{}, ErrNotFound
	}
	return msg, nil
}

func (svc *service) IsParticipant(ctx context.Context, actor user.User, msg Message) (bool, error) {
	if msg.SenderID == actor.ID {
		return true, nil
	}
	return svc.IsRecipient(ctx, actor, msg)
}

func (svc *service) IsRecipient(ctx context.Context, actor user.User, msg Message) (bool, error) {
	if msg.SenderID == actor.ID {
		return false, nil
	}
	if msg.HasRecipient(actor.ID) {
		return true, nil
	}
	if msg.ClassID == "" {
		return false, nil
	}
	cls, err := svc.clsSvc.GetByID(ctx, msg.ClassID)
	if err != nil {
		if errors.Cause(err) == class.ErrNotFound {
			return false, nil
		}
		return false, errors.Wrap(err, "finding message class")
	}
	return cls.HasMember(actor.ID), nil
}

func (svc *service) CanAccessFile(ctx context.Context, actor user.User, fileID string) (bool, error) {
	messages, err := svc.repo.QueryMessages(ctx, &QueryFilter{AttachmentID: fileID}, []core.DBOrdering{DefaultOrdering})
	if err != nil {
		return false, errors.Wrap(err, "querying messages by attachment")
	}
	for _, msg := range messages {
		ok, err := svc.IsParticipant(ctx, actor, msg)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (svc *service) Update(ctx context.Context, actor user.User, msg Message, um UpdateMessage) (Message, error) {
	if msg.SenderID != actor.ID {
		return Message{}, core.ErrForbidden
	}
	msg.Subject = um.Subject
	msg.Body = um.Body
	msg.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateMessage(ctx, msg)
}

func (svc *service) MarkRead(ctx context.Context, actor user.User, msg Message) (Message, error) {
	if msg.IsReadBy(actor.ID) {
		return msg, nil
	}
	return svc.repo.MarkRead(ctx, msg.ID, actor.ID)
}

func (svc *service) Delete(ctx context.Context, actor user.User, msg Message) error {
	if !(msg.SenderID == actor.ID || actor.IsAdmin()) {
		return core.ErrForbidden
	}
	return svc.repo.DeleteMessage(ctx, msg.ID)
}

func replySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), strings.ToLower(replyPrefix)) {
		return subject
	}
	return replyPrefix + subject
}
