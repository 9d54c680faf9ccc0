package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/message"
)

const messageTable = "message"

var messageColumns = []string{
	"id", "sender_id", "recipient_ids", "class_id", "parent_id", "subject", "body",
	"attachment_ids", "read_by", "created_at", "updated_at",
}

type messageRow struct {
	ID            string         `db:"id"`
	SenderID      string         `db:"sender_id"`
	RecipientIDs  pq.StringArray `db:"recipient_ids"`
	ClassID       null.String    `db:"class_id"`
	ParentID      null.String    `db:"parent_id"`
	Subject       string         `db:"subject"`
	Body          string         `db:"body"`
	AttachmentIDs pq.StringArray `db:"attachment_ids"`
	ReadBy        pq.StringArray `db:"read_by"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r messageRow) toModel() message.Message {
	return message.Message{
		ID:            r.ID,
		SenderID:      r.SenderID,
		RecipientIDs:  stringSlice(r.RecipientIDs),
		ClassID:       r.ClassID.String,
		ParentID:      r.ParentID.String,
		Subject:       r.Subject,
		Body:          r.Body,
		AttachmentIDs: stringSlice(r.AttachmentIDs),
		ReadBy:        stringSlice(r.ReadBy),
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

func messageWhere(filter *message.QueryFilter) sq.And {
	where := sq.And{}
	if filter == nil {
		return where
	}
	if filter.SenderID != "" {
		where = append(where, sq.Eq{"sender_id": filter.SenderID})
	}
	if filter.RecipientID != "" || filter.MemberClassIDs != nil {
		or := sq.Or{}
		if filter.RecipientID != "" {
			or = append(or, contains("recipient_ids", filter.RecipientID))
		}
		if len(filter.MemberClassIDs) > 0 {
			or = append(or, sq.Eq{"class_id": filter.MemberClassIDs})
		}
		if len(or) == 0 {
			or = append(or, sq.Expr("FALSE"))
		}
		where = append(where, or)
	}
	if filter.ExcludeSenderID != "" {
		where = append(where, sq.NotEq{"sender_id": filter.ExcludeSenderID})
	}
	if filter.Unread != nil && filter.Reader != "" {
		if *filter.Unread {
			where = append(where, sq.Expr("NOT (? = ANY(read_by))", filter.Reader))
		} else {
			where = append(where, contains("read_by", filter.Reader))
		}
	}
	if filter.ClassID != "" {
		where = append(where, sq.Eq{"class_id": filter.ClassID})
	}
	if filter.ParentID != "" {
		where = append(where, sq.Eq{"parent_id": filter.ParentID})
	}
	if filter.AttachmentID != "" {
		where = append(where, contains("attachment_ids", filter.AttachmentID))
	}
	if filter.Search != "" {
		s := ilike(filter.Search)
		where = append(where, sq.Or{sq.ILike{"subject": s}, sq.ILike{"body": s}})
	}
	return where
}

type messageRepository struct {
	db *sqlx.DB
}

var _ message.Repository = (*messageRepository)(nil)

func NewMessageRepository(db *sqlx.DB) message.Repository {
	return &messageRepository{db: db}
}

func (repo *messageRepository) CreateMessage(ctx context.Context, msg message.Message) (message.Message, error) {
	msg.ID = newID()
	b := psql.Insert(messageTable).Columns(messageColumns...).Values(
		msg.ID, msg.SenderID, stringArray(msg.RecipientIDs), nullString(msg.ClassID), nullString(msg.ParentID),
		msg.Subject, msg.Body, stringArray(msg.AttachmentIDs), stringArray(msg.ReadBy),
		msg.CreatedAt.UTC(), msg.UpdatedAt.UTC(),
	)
	if _, err := exec(ctx, repo.db, b); err != nil {
		return message.Message{}, errors.Wrap(err, "creating message")
	}
	return msg, nil
}

func (repo *messageRepository) QueryMessages(ctx context.Context, filter *message.QueryFilter, ordering []core.DBOrdering) ([]message.Message, error) {
	b := psql.Select(messageColumns...).From(messageTable).Where(messageWhere(filter))
	b = orderBy(b, ordering, message.OrderingFields)

	var rows []messageRow
	if err := selectRows(ctx, repo.db, &rows, b); err != nil {
		return nil, errors.Wrap(err, "querying messages")
	}
	msgs := make([]message.Message, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, row.toModel())
	}
	return msgs, nil
}

func (repo *messageRepository) CountMessages(ctx context.Context, filter *message.QueryFilter) (int, error) {
	n, err := count(ctx, repo.db, messageTable, messageWhere(filter))
	if err != nil {
		return 0, errors.Wrap(err, "counting messages")
	}
	return n, nil
}

func (repo *messageRepository) GetMessage(ctx context.Context, id string) (message.Message, error) {
	var row messageRow
	b := psql.Select(messageColumns...).From(messageTable).Where(sq.Eq{"id": id})
	if err := getRow(ctx, repo.db, &row, b); err != nil {
		if isNoRows(err) {
			return message.Message{}, message.ErrNotFound
		}
		return message.Message{}, errors.Wrap(err, "getting message")
	}
	return row.toModel(), nil
}

func (repo *messageRepository) UpdateMessage(ctx context.Context, msg message.Message) (message.Message, error) {
	b := psql.Update(messageTable).SetMap(map[string]interface{}{
		"subject":    msg.Subject,
		"body":       msg.Body,
		"read_by":    stringArray(msg.ReadBy),
		"updated_at": msg.UpdatedAt.UTC(),
	}).Where(sq.Eq{"id": msg.ID})

	n, err := exec(ctx, repo.db, b)
	if err != nil {
		return message.Message{}, errors.Wrap(err, "updating message")
	}
	if n == 0 {
		return message.Message{}, message.ErrNotFound
	}
	return msg, nil
}

func (repo *messageRepository) MarkRead(ctx context.Context, id, userID string) (message.Message, error) {
	b := psql.Update(messageTable).
		Set("read_by", sq.Expr("array_append(read_by, ?)", userID)).
		Where(sq.Eq{"id": id}).
		Where("NOT (? = ANY(read_by))", userID)
	if _, err := exec(ctx, repo.db, b); err != nil {
		return message.Message{}, errors.Wrap(err, "marking message as read")
	}
	return repo.GetMessage(ctx, id)
}

func (repo *messageRepository) DeleteMessage(ctx context.Context, id string) error {
	n, err := exec(ctx, repo.db, psql.Delete(messageTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return errors.Wrap(err, "deleting message")
	}
	if n == 0 {
		return message.ErrNotFound
	}
	return nil
}
