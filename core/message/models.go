package message

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/ujumbe/core"
)

// Mailboxes
const (
	BoxInbox = "inbox"
	BoxSent  = "sent"
)

type Message struct {
	ID            string    `json:"id"`
	SenderID      string    `json:"sender_id"`
	RecipientIDs  []string  `json:"recipient_ids"`
	ClassID       string    `json:"class_id,omitempty"`
	ParentID      string    `json:"parent_id,omitempty"`
	Subject       string    `json:"subject"`
	Body          string    `json:"body"`
	AttachmentIDs []string  `json:"attachment_ids"`
	ReadBy        []string  `json:"read_by"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

func (m Message) IsReadBy(userID string) bool {
	return core.StringInSlice(userID, m.ReadBy)
}

func (m Message) HasRecipient(userID string) bool {
	return core.StringInSlice(userID, m.RecipientIDs)
}

// NewMessage contains information needed to send a new Message.
type NewMessage struct {
	RecipientIDs  []string `json:"recipient_ids"`
	ClassID       string   `json:"class_id"`
	ParentID      string   `json:"parent_id"`
	Subject       string   `json:"subject" validate:"max=255"`
	Body          string   `json:"body" validate:"required,max=20000"`
	AttachmentIDs []string `json:"attachment_ids" validate:"max=10"`
}

func (nm *NewMessage) Clean() {
	nm.RecipientIDs = core.UniqueStrings(nm.RecipientIDs)
	nm.ClassID = core.CleanString(nm.ClassID)
	nm.ParentID = core.CleanString(nm.ParentID)
	nm.Subject = core.CleanString(core.StripHTML(nm.Subject))
	nm.Body = core.CleanString(core.SanitizeHTML(nm.Body))
	nm.AttachmentIDs = core.UniqueStrings(nm.AttachmentIDs)
}

func (nm *NewMessage) Validate(validate *validator.Validate) error {
	nm.Clean()
	if err := validate.Struct(nm); err != nil {
		return err
	}
	if len(nm.RecipientIDs) == 0 && nm.ClassID == "" {
		return core.NewFieldError("recipient_ids", "at least one recipient or a class is required")
	}
	return nil
}

// UpdateMessage defines what information may be provided to modify an existing Message.
type UpdateMessage struct {
	Subject string `json:"subject" validate:"max=255"`
	Body    string `json:"body" validate:"max=20000"`
}

func (um *UpdateMessage) Validate(orig Message, validate *validator.Validate) error {
	if subj := core.CleanString(core.StripHTML(um.Subject)); subj != "" {
		um.Subject = subj
	} else {
		um.Subject = orig.Subject
	}
	if body := core.CleanString(core.SanitizeHTML(um.Body)); body != "" {
		um.Body = body
	} else {
		um.Body = orig.Body
	}
	return validate.Struct(um)
}

// QueryFilter holds the public listing filters; the service fills the rest from the acting user.
type QueryFilter struct {
	Box      string `query:"box"`
	Unread   *bool  `query:"unread"`
	ClassID  string `query:"class_id"`
	ParentID string `query:"parent_id"`
	Search   string `query:"search"`

	SenderID        string   `query:"-"` // sent box
	RecipientID     string   `query:"-"` // inbox: direct recipient ...
	MemberClassIDs  []string `query:"-"` // ... or member of the class
	ExcludeSenderID string   `query:"-"`
	Reader          string   `query:"-"` // user Unread applies to
	AttachmentID    string   `query:"-"`
}

func (qf *QueryFilter) Clean() {
	qf.Box = core.CleanString(qf.Box, true /* lower */)
	if qf.Box != BoxSent {
		qf.Box = BoxInbox
	}
	qf.ClassID = core.CleanString(qf.ClassID)
	qf.ParentID = core.CleanString(qf.ParentID)
	qf.Search = core.CleanString(qf.Search)
}

// Match applies the filter to msg; it backs the repositories that filter in memory.
func (qf *QueryFilter) Match(msg Message) bool {
	if qf == nil {
		return true
	}
	if qf.SenderID != "" && msg.SenderID != qf.SenderID {
		return false
	}
	if qf.RecipientID != "" || qf.MemberClassIDs != nil {
		inClass := msg.ClassID != "" && core.StringInSlice(msg.ClassID, qf.MemberClassIDs)
		if !(inClass || (qf.RecipientID != "" && msg.HasRecipient(qf.RecipientID))) {
			return false
		}
	}
	if qf.ExcludeSenderID != "" && msg.SenderID == qf.ExcludeSenderID {
		return false
	}
	if qf.Unread != nil && qf.Reader != "" && msg.IsReadBy(qf.Reader) == *qf.Unread {
		return false
	}
	if qf.ClassID != "" && msg.ClassID != qf.ClassID {
		return false
	}
	if qf.ParentID != "" && msg.ParentID != qf.ParentID {
		return false
	}
	if qf.AttachmentID != "" && !core.StringInSlice(qf.AttachmentID, msg.AttachmentIDs) {
		return false
	}
	if qf.Search != "" {
		s := strings.ToLower(qf.Search)
		if !(strings.Contains(strings.ToLower(msg.Subject), s) || strings.Contains(strings.ToLower(msg.Body), s)) {
			return false
		}
	}
	return true
}

// Orderable fields (API name -> column).
var OrderingFields = map[string]string{
	"subject":    "subject",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

var DefaultOrdering = core.DBOrdering{Field: "created_at", Ascending: false}
