package inmemdb

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/file"
	"github.com/trezcool/ujumbe/core/message"
	"github.com/trezcool/ujumbe/core/notification"
	"github.com/trezcool/ujumbe/core/setting"
	"github.com/trezcool/ujumbe/core/user"
)

// DB keeps every table in memory; for tests and local development.
type (
	DB struct {
		user         *userTable
		class        *classTable
		file         *fileTable
		message      *messageTable
		notification *notificationTable
		setting      *settingTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]user.User
	}

	classTable struct {
		sync.RWMutex
		table map[string]class.Class
	}

	fileTable struct {
		sync.RWMutex
		table map[string]file.File
	}

	messageTable struct {
		sync.RWMutex
		table map[string]message.Message
	}

	notificationTable struct {
		sync.RWMutex
		table map[string]notification.Notification
	}

	settingTable struct {
		sync.RWMutex
		table map[string]setting.Setting
	}
)

func Open() *DB {
	return &DB{
		user:         &userTable{table: make(map[string]user.User)},
		class:        &classTable{table: make(map[string]class.Class)},
		file:         &fileTable{table: make(map[string]file.File)},
		message:      &messageTable{table: make(map[string]message.Message)},
		notification: &notificationTable{table: make(map[string]notification.Notification)},
		setting:      &settingTable{table: make(map[string]setting.Setting)},
	}
}

func newID() string {
	return uuid.New().String()
}

// cloneStrings copies ss so that stored rows never share memory with the callers.
func cloneStrings(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return append(make([]string, 0, len(ss)), ss...)
}

// sortRows sorts rows by ordering; value returns the column value of a row.
func sortRows[T any](rows []T, ordering []core.DBOrdering, value func(row T, field string) interface{}) {
	if len(ordering) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, ord := range ordering {
			c := compare(value(rows[i], ord.Field), value(rows[j], ord.Field))
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func compare(a, b interface{}) int {
	switch a := a.(type) {
	case string:
		return strings.Compare(strings.ToLower(a), strings.ToLower(b.(string)))
	case bool:
		b := b.(bool)
		switch {
		case a == b:
			return 0
		case !a:
			return -1
		}
		return 1
	case int64:
		b := b.(int64)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	case time.Time:
		b := b.(time.Time)
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		}
		return 0
	}
	return 0
}
