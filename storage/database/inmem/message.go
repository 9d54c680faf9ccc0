package inmemdb

import (
	"context"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/message"
)

type messageRepository struct {
	db *messageTable
}

var _ message.Repository = (*messageRepository)(nil)

func NewMessageRepository(db *DB) message.Repository {
	return &messageRepository{db: db.message}
}

func cloneMessage(msg message.Message) message.Message {
	msg.RecipientIDs = cloneStrings(msg.RecipientIDs)
	msg.AttachmentIDs = cloneStrings(msg.AttachmentIDs)
	msg.ReadBy = cloneStrings(msg.ReadBy)
	return msg
}

func (repo *messageRepository) CreateMessage(_ context.Context, msg message.Message) (message.Message, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	msg.ID = newID()
	repo.db.table[msg.ID] = cloneMessage(msg)
	return cloneMessage(msg), nil
}

func (repo *messageRepository) QueryMessages(_ context.Context, filter *message.QueryFilter, ordering []core.DBOrdering) ([]message.Message, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	msgs := make([]message.Message, 0)
	for _, msg := range repo.db.table {
		if filter.Match(msg) {
			msgs = append(msgs, cloneMessage(msg))
		}
	}
	sortRows(msgs, ordering, func(msg message.Message, field string) interface{} {
		switch field {
		case "subject":
			return msg.Subject
		case "updated_at":
			return msg.UpdatedAt
		}
		return msg.CreatedAt
	})
	return msgs, nil
}

func (repo *messageRepository) CountMessages(_ context.Context, filter *message.QueryFilter) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var count int
	for _, msg := range repo.db.table {
		if filter.Match(msg) {
			count++
		}
	}
	return count, nil
}

func (repo *messageRepository) GetMessage(_ context.Context, id string) (message.Message, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if msg, ok := repo.db.table[id]; ok {
		return cloneMessage(msg), nil
	}
	return message.Message{}, message.ErrNotFound
}

func (repo *messageRepository) UpdateMessage(_ context.Context, msg message.Message) (message.Message, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[msg.ID]; !ok {
		return message.Message{}, message.ErrNotFound
	}
	repo.db.table[msg.ID] = cloneMessage(msg)
	return cloneMessage(msg), nil
}

func (repo *messageRepository) MarkRead(_ context.Context, id, userID string) (message.Message, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	msg, ok := repo.db.table[id]
	if !ok {
		return message.Message{}, message.ErrNotFound
	}
	if !msg.IsReadBy(userID) {
		msg.ReadBy = append(cloneStrings(msg.ReadBy), userID)
		repo.db.table[id] = msg
	}
	return cloneMessage(msg), nil
}

func (repo *messageRepository) DeleteMessage(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return message.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
