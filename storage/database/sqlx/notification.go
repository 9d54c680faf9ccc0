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
	"github.com/trezcool/ujumbe/core/notification"
)

const notificationTable = "notification"

var notificationColumns = []string{
	"id", "title", "body", "kind", "audience_all", "audience_roles", "audience_class_ids", "audience_user_ids",
	"created_by", "send_email", "expires_at", "read_by", "created_at", "updated_at",
}

type notificationRow struct {
	ID               string         `db:"id"`
	Title            string         `db:"title"`
	Body             string         `db:"body"`
	Kind             string         `db:"kind"`
	AudienceAll      bool           `db:"audience_all"`
	AudienceRoles    pq.StringArray `db:"audience_roles"`
	AudienceClassIDs pq.StringArray `db:"audience_class_ids"`
	AudienceUserIDs  pq.StringArray `db:"audience_user_ids"`
	CreatedBy        null.String    `db:"created_by"`
	SendEmail        bool           `db:"send_email"`
	ExpiresAt        null.Time      `db:"expires_at"`
	ReadBy           pq.StringArray `db:"read_by"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (r notificationRow) toModel() notification.Notification {
	n := notification.Notification{
		ID:    r.ID,
		Title: r.Title,
		Body:  r.Body,
		Kind:  r.Kind,
		Audience: notification.Audience{
			All:      r.AudienceAll,
			Roles:    stringSlice(r.AudienceRoles),
			ClassIDs: stringSlice(r.AudienceClassIDs),
			UserIDs:  stringSlice(r.AudienceUserIDs),
		},
		CreatedBy: r.CreatedBy.String,
		SendEmail: r.SendEmail,
		ExpiresAt: r.ExpiresAt,
		ReadBy:    stringSlice(r.ReadBy),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
	if n.ExpiresAt.Valid {
		n.ExpiresAt.Time = n.ExpiresAt.Time.UTC()
	}
	return n
}

func notificationWhere(filter *notification.QueryFilter) sq.And {
	where := sq.And{}
	if filter == nil {
		return where
	}
	if af := filter.Audience; af != nil {
		or := sq.Or{sq.Eq{"audience_all": true}}
		if af.UserID != "" {
			or = append(or, contains("audience_user_ids", af.UserID))
		}
		if len(af.ClassIDs) > 0 {
			or = append(or, sq.Expr("audience_class_ids && ?", pq.Array(af.ClassIDs)))
		}
		if len(af.Roles) > 0 {
			// audience roles are prefixes of the user roles
			or = append(or, sq.Expr(
				"EXISTS (SELECT 1 FROM unnest(audience_roles) ar, unnest(?::text[]) ur WHERE starts_with(ur, ar))",
				pq.Array(af.Roles),
			))
		}
		where = append(where, or)
	}
	if filter.Unread != nil && filter.Reader != "" {
		if *filter.Unread {
			where = append(where, sq.Expr("NOT (? = ANY(read_by))", filter.Reader))
		} else {
			where = append(where, contains("read_by", filter.Reader))
		}
	}
	if filter.Kind != "" {
		where = append(where, sq.Eq{"kind": filter.Kind})
	}
	if !filter.NotExpiredAt.IsZero() {
		where = append(where, sq.Or{sq.Eq{"expires_at": nil}, sq.Gt{"expires_at": filter.NotExpiredAt.UTC()}})
	}
	return where
}

type notificationRepository struct {
	db *sqlx.DB
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(db *sqlx.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) CreateNotification(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	n.ID = newID()
	b := psql.Insert(notificationTable).Columns(notificationColumns...).Values(
		n.ID, n.Title, n.Body, n.Kind, n.Audience.All, stringArray(n.Audience.Roles),
		stringArray(n.Audience.ClassIDs), stringArray(n.Audience.UserIDs), nullString(n.CreatedBy),
		n.SendEmail, n.ExpiresAt, stringArray(n.ReadBy), n.CreatedAt.UTC(), n.UpdatedAt.UTC(),
	)
	if _, err := exec(ctx, repo.db, b); err != nil {
		return notification.Notification{}, errors.Wrap(err, "creating notification")
	}
	return n, nil
}

func (repo *notificationRepository) QueryNotifications(
	ctx context.Context,
	filter *notification.QueryFilter,
	ordering []core.DBOrdering,
) ([]notification.Notification, error) {
	b := psql.Select(notificationColumns...).From(notificationTable).Where(notificationWhere(filter))
	b = orderBy(b, ordering, notification.OrderingFields)

	var rows []notificationRow
	if err := selectRows(ctx, repo.db, &rows, b); err != nil {
		return nil, errors.Wrap(err, "querying notifications")
	}
	notifs := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		notifs = append(notifs, row.toModel())
	}
	return notifs, nil
}

func (repo *notificationRepository) CountNotifications(ctx context.Context, filter *notification.QueryFilter) (int, error) {
	n, err := count(ctx, repo.db, notificationTable, notificationWhere(filter))
	if err != nil {
		return 0, errors.Wrap(err, "counting notifications")
	}
	return n, nil
}

func (repo *notificationRepository) GetNotification(ctx context.Context, id string) (notification.Notification, error) {
	var row notificationRow
	b := psql.Select(notificationColumns...).From(notificationTable).Where(sq.Eq{"id": id})
	if err := getRow(ctx, repo.db, &row, b); err != nil {
		if isNoRows(err) {
			return notification.Notification{}, notification.ErrNotFound
		}
		return notification.Notification{}, errors.Wrap(err, "getting notification")
	}
	return row.toModel(), nil
}

func (repo *notificationRepository) UpdateNotification(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	b := psql.Update(notificationTable).SetMap(map[string]interface{}{
		"title":      n.Title,
		"body":       n.Body,
		"kind":       n.Kind,
		"expires_at": n.ExpiresAt,
		"read_by":    stringArray(n.ReadBy),
		"updated_at": n.UpdatedAt.UTC(),
	}).Where(sq.Eq{"id": n.ID})

	affected, err := exec(ctx, repo.db, b)
	if err != nil {
		return notification.Notification{}, errors.Wrap(err, "updating notification")
	}
	if affected == 0 {
		return notification.Notification{}, notification.ErrNotFound
	}
	return n, nil
}

func (repo *notificationRepository) MarkRead(ctx context.Context, id, userID string) (notification.Notification, error) {
	b := psql.Update(notificationTable).
		Set("read_by", sq.Expr("array_append(read_by, ?)", userID)).
		Where(sq.Eq{"id": id}).
		Where("NOT (? = ANY(read_by))", userID)
	if _, err := exec(ctx, repo.db, b); err != nil {
		return notification.Notification{}, errors.Wrap(err, "marking notification as read")
	}
	return repo.GetNotification(ctx, id)
}

func (repo *notificationRepository) DeleteNotification(ctx context.Context, id string) error {
	n, err := exec(ctx, repo.db, psql.Delete(notificationTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return errors.Wrap(err, "deleting notification")
	}
	if n == 0 {
		return notification.ErrNotFound
	}
	return nil
}
