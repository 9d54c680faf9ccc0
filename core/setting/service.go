package setting

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/user"
)

const (
	cachePrefix = "setting:"
	cacheTTL    = 10 * time.Minute
	cacheMiss   = "-"
	cacheHit    = "v:"
)

var (
	// errors
	ErrNotFound = errors.New("setting not found")
)

type (
	Repository interface {
		QuerySettings(ctx context.Context, publicOnly bool) ([]Setting, error)
		GetSetting(ctx context.Context, key string) (Setting, error)
		UpsertSetting(ctx context.Context, s Setting) (Setting, error)
		DeleteSetting(ctx context.Context, key string) error
	}

	Service interface {
		core.SettingsReader

		// Query lists every setting for admins and only the public ones otherwise.
		Query(ctx context.Context, actor user.User) ([]Setting, error)
		// Get returns ErrNotFound for private settings unless actor is an admin.
		Get(ctx context.Context, actor user.User, key string) (Setting, error)
		Upsert(ctx context.Context, actor user.User, us UpsertSetting) (Setting, error)
		Delete(ctx context.Context, key string) error
		SchoolName(ctx context.Context) string
		DefaultLanguage(ctx context.Context) string
	}

	service struct {
		repo   Repository
		cache  core.Cache // optional
		logger core.Logger
	}
)

var _ Service = (*service)(nil)

// NewService returns a settings Service; values are cached when cache is not nil.
func NewService(repo Repository, cache core.Cache, logger core.Logger) Service {
	return &service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (svc *service) Query(ctx context.Context, actor user.User) ([]Setting, error) {
	return svc.repo.QuerySettings(ctx, !actor.IsAdmin())
}

func (svc *service) Get(ctx context.Context, actor user.User, key string) (Setting, error) {
	s, err := svc.repo.GetSetting(ctx, core.CleanString(key, true /* lower */))
	if err != nil {
		return Setting{}, err
	}
	if !(s.IsPublic || actor.IsAdmin()) {
		return Setting{}, ErrNotFound
	}
	return s, nil
}

func (svc *service) Upsert(ctx context.Context, actor user.User, us UpsertSetting) (Setting, error) {
	now := time.Now().UTC()
	s, err := svc.repo.GetSetting(ctx, us.Key)
	switch errors.Cause(err) {
	case nil:
	case ErrNotFound:
		s = Setting{Key: us.Key, CreatedAt: now}
	default:
		return Setting{}, errors.Wrap(err, "finding setting")
	}

	s.Value = us.Value
	s.Description = us.Description
	if us.IsPublic != nil {
		s.IsPublic = *us.IsPublic
	}
	s.UpdatedBy = actor.ID
	s.UpdatedAt = now

	if s, err = svc.repo.UpsertSetting(ctx, s); err != nil {
		return Setting{}, errors.Wrap(err, "saving setting")
	}
	svc.invalidate(ctx, s.Key)
	return s, nil
}

func (svc *service) Delete(ctx context.Context, key string) error {
	key = core.CleanString(key, true /* lower */)
	if err := svc.repo.DeleteSetting(ctx, key); err != nil {
		return err
	}
	svc.invalidate(ctx, key)
	return nil
}

func (svc *service) SchoolName(ctx context.Context) string {
	return svc.String(ctx, KeySchoolName, DefaultSchoolName)
}

func (svc *service) DefaultLanguage(ctx context.Context) string {
	lang := svc.String(ctx, KeyDefaultLanguage, DefaultLanguage)
	if !core.StringInSlice(lang, core.Languages) {
		return DefaultLanguage
	}
	return lang
}

func (svc *service) String(ctx context.Context, key, def string) string {
	if val, ok := svc.value(ctx, key); ok && val != "" {
		return val
	}
	return def
}

func (svc *service) Bool(ctx context.Context, key string, def bool) bool {
	if val, ok := svc.value(ctx, key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

func (svc *service) Int(ctx context.Context, key string, def int) int {
	if val, ok := svc.value(ctx, key); ok {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}

// value reads a raw setting value, through the cache when there is one.
// Lookup errors are logged and reported as unset values.
func (svc *service) value(ctx context.Context, key string) (string, bool) {
	if svc.cache != nil {
		cached, found, err := svc.cache.Get(ctx, cachePrefix+key)
		if err != nil {
			svc.logger.Warn(fmt.Sprintf("reading cached setting %q: %v", key, err), err)
		} else if found {
			if cached == cacheMiss {
				return "", false
			}
			return strings.TrimPrefix(cached, cacheHit), true
		}
	}

	s, err := svc.repo.GetSetting(ctx, key)
	if err != nil {
		if errors.Cause(err) != ErrNotFound {
			svc.logger.Error(fmt.Sprintf("reading setting %q: %v", key, err), err)
			return "", false
		}
		svc.store(ctx, key, cacheMiss)
		return "", false
	}
	svc.store(ctx, key, cacheHit+s.Value)
	return s.Value, true
}

func (svc *service) store(ctx context.Context, key, val string) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Set(ctx, cachePrefix+key, val, cacheTTL); err != nil {
		svc.logger.Warn(fmt.Sprintf("caching setting %q: %v", key, err), err)
	}
}

func (svc *service) invalidate(ctx context.Context, key string) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Delete(ctx, cachePrefix+key); err != nil {
		svc.logger.Warn(fmt.Sprintf("invalidating cached setting %q: %v", key, err), err)
	}
}
