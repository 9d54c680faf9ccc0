package echoapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/message"
	"github.com/trezcool/ujumbe/core/notification"
	"github.com/trezcool/ujumbe/core/user"
)

const orderingParam = "ordering"

var queryDateLayouts = []string{time.RFC3339, "2006-01-02"}

func bindOrdering(ctx echo.Context) []core.DBOrdering {
	return core.ParseOrdering(ctx.QueryParam(orderingParam))
}

func queryBool(ctx echo.Context, name string) (*bool, error) {
	val := strings.TrimSpace(ctx.QueryParam(name))
	if val == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil, core.NewFieldError(name, "must be true or false")
	}
	return &b, nil
}

// queryTime accepts RFC 3339 timestamps and plain dates (UTC).
func queryTime(ctx echo.Context, name string) (time.Time, error) {
	val := strings.TrimSpace(ctx.QueryParam(name))
	if val == "" {
		return time.Time{}, nil
	}
	for _, layout := range queryDateLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, core.NewFieldError(name, "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}

// queryList returns the values of a repeatable query param, also splitting comma separated ones.
func queryList(ctx echo.Context, name string) []string {
	var vals []string
	for _, v := range ctx.QueryParams()[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				vals = append(vals, part)
			}
		}
	}
	return vals
}

func bindUserFilter(ctx echo.Context) (*user.QueryFilter, error) {
	var err error
	filter := &user.QueryFilter{
		Search: ctx.QueryParam("search"),
		Roles:  queryList(ctx, "role"),
	}
	if filter.IsActive, err = queryBool(ctx, "is_active"); err != nil {
		return nil, err
	}
	if filter.CreatedFrom, err = queryTime(ctx, "created_from"); err != nil {
		return nil, err
	}
	if filter.CreatedTo, err = queryTime(ctx, "created_to"); err != nil {
		return nil, err
	}
	return filter, nil
}

func bindClassFilter(ctx echo.Context) (*class.QueryFilter, error) {
	var err error
	filter := &class.QueryFilter{
		Search:       ctx.QueryParam("search"),
		Level:        ctx.QueryParam("level"),
		AcademicYear: ctx.QueryParam("academic_year"),
		Member:       ctx.QueryParam("member"),
	}
	if filter.IsArchived, err = queryBool(ctx, "is_archived"); err != nil {
		return nil, err
	}
	return filter, nil
}

func bindMessageFilter(ctx echo.Context) (*message.QueryFilter, error) {
	var err error
	filter := &message.QueryFilter{
		Box:      ctx.QueryParam("box"),
		ClassID:  ctx.QueryParam("class_id"),
		ParentID: ctx.QueryParam("parent_id"),
		Search:   ctx.QueryParam("search"),
	}
	if filter.Unread, err = queryBool(ctx, "unread"); err != nil {
		return nil, err
	}
	return filter, nil
}

func bindNotificationFilter(ctx echo.Context) (*notification.QueryFilter, error) {
	var err error
	filter := &notification.QueryFilter{
		Kind:  ctx.QueryParam("kind"),
		Scope: ctx.QueryParam("scope"),
	}
	if filter.Unread, err = queryBool(ctx, "unread"); err != nil {
		return nil, err
	}
	return filter, nil
}
