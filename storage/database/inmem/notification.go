package inmemdb

import (
	"context"
	"time"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/notification"
)

type notificationRepository struct {
	db *notificationTable
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db.notification}
}

func cloneNotification(n notification.Notification) notification.Notification {
	n.Audience.Roles = cloneStrings(n.Audience.Roles)
	n.Audience.ClassIDs = cloneStrings(n.Audience.ClassIDs)
	n.Audience.UserIDs = cloneStrings(n.Audience.UserIDs)
	n.ReadBy = cloneStrings(n.ReadBy)
	return n
}

func (repo *notificationRepository) CreateNotification(_ context.Context, n notification.Notification) (notification.Notification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n.ID = newID()
	repo.db.table[n.ID] = cloneNotification(n)
	return cloneNotification(n), nil
}

func (repo *notificationRepository) QueryNotifications(
	_ context.Context,
	filter *notification.QueryFilter,
	ordering []core.DBOrdering,
) ([]notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notifs := make([]notification.Notification, 0)
	for _, n := range repo.db.table {
		if filter.Match(n) {
			notifs = append(notifs, cloneNotification(n))
		}
	}
	sortRows(notifs, ordering, func(n notification.Notification, field string) interface{} {
		switch field {
		case "title":
			return n.Title
		case "kind":
			return n.Kind
		case "expires_at":
			if n.ExpiresAt.Valid {
				return n.ExpiresAt.Time
			}
			return time.Time{}
		}
		return n.CreatedAt
	})
	return notifs, nil
}

func (repo *notificationRepository) CountNotifications(_ context.Context, filter *notification.QueryFilter) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var count int
	for _, n := range repo.db.table {
		if filter.Match(n) {
			count++
		}
	}
	return count, nil
}

func (repo *notificationRepository) GetNotification(_ context.Context, id string) (notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if n, ok := repo.db.table[id]; ok {
		return cloneNotification(n), nil
	}
	return notification.Notification{}, notification.ErrNotFound
}

func (repo *notificationRepository) UpdateNotification(_ context.Context, n notification.Notification) (notification.Notification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[n.ID]; !ok {
		return notification.Notification{}, notification.ErrNotFound
	}
	repo.db.table[n.ID] = cloneNotification(n)
	return cloneNotification(n), nil
}

func (repo *notificationRepository) MarkRead(_ context.Context, id, userID string) (notification.Notification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n, ok := repo.db.table[id]
	if !ok {
		return notification.Notification{}, notification.ErrNotFound
	}
	if !n.IsReadBy(userID) {
		n.ReadBy = append(cloneStrings(n.ReadBy), userID)
		repo.db.table[id] = n
	}
	return cloneNotification(n), nil
}

func (repo *notificationRepository) DeleteNotification(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return notification.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
