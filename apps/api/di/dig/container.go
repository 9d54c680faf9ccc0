package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/ujumbe/apps/api/echo"
	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/file"
	"github.com/trezcool/ujumbe/core/message"
	"github.com/trezcool/ujumbe/core/notification"
	"github.com/trezcool/ujumbe/core/setting"
	"github.com/trezcool/ujumbe/core/suggest"
	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/services/ai"
	"github.com/trezcool/ujumbe/services/cache"
	"github.com/trezcool/ujumbe/services/email"
	"github.com/trezcool/ujumbe/services/events"
	"github.com/trezcool/ujumbe/services/logger"
	"github.com/trezcool/ujumbe/services/storage"
	"github.com/trezcool/ujumbe/storage/database"
	"github.com/trezcool/ujumbe/storage/database/inmem"
	"github.com/trezcool/ujumbe/storage/database/sqlx"
)

const connectTimeout = 10 * time.Second

type (
	DBLoggerParam struct {
		dig.In
		Logger core.Logger `name:"dbLogger"`
	}

	// Closer releases a connection when the application stops.
	Closer struct {
		Name  string
		Close func() error
	}

	// ClosersParam collects every Closer provided to the container.
	ClosersParam struct {
		dig.In
		Closers []Closer `group:"closers"`
	}

	// Pinger reports whether the database is reachable.
	Pinger func(ctx context.Context) error

	repositories struct {
		dig.Out
		Users         user.Repository
		Classes       class.Repository
		Messages      message.Repository
		Notifications notification.Repository
		Settings      setting.Repository
		Files         file.Repository
		Ping          Pinger
		Closer        Closer `group:"closers"`
	}

	cacheResult struct {
		dig.Out
		Cache  core.Cache
		Closer Closer `group:"closers"`
	}

	publisherResult struct {
		dig.Out
		Publisher core.EventPublisher
		Closer    Closer `group:"closers"`
	}

	serverParams struct {
		dig.In
		Conf            *core.Config
		Logger          core.Logger
		Validate        *validator.Validate
		Translator      ut.Translator
		UserSvc         user.Service
		ClassSvc        class.Service
		MessageSvc      message.Service
		NotificationSvc notification.Service
		SettingSvc      setting.Service
		FileSvc         file.Service
		SuggestSvc      suggest.Service
		Ping            Pinger
	}
)

func noopCloser(name string) Closer {
	return Closer{Name: name, Close: func() error { return nil }}
}

func newRollbarLogger(conf *core.Config) *logsvc.RollbarLogger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newLogger(l *logsvc.RollbarLogger) core.Logger {
	return l
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newRepositories(conf *core.Config, loggerParam DBLoggerParam) repositories {
	if conf.Database.Engine == "memory" {
		loggerParam.Logger.Warn("using the in-memory database: data is lost on exit")
		db := inmemdb.Open()
		return repositories{
			Users:         inmemdb.NewUserRepository(db),
			Classes:       inmemdb.NewClassRepository(db),
			Messages:      inmemdb.NewMessageRepository(db),
			Notifications: inmemdb.NewNotificationRepository(db),
			Settings:      inmemdb.NewSettingRepository(db),
			Files:         inmemdb.NewFileRepository(db),
			Ping:          func(context.Context) error { return nil },
			Closer:        noopCloser("database"),
		}
	}

	if err := database.CreateIfNotExist(conf); err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("creating database: %v", err), err)
	}
	db, err := database.Open(conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	if err = database.Migrate(db, "up"); err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
	}
	return repositories{
		Users:         sqlxrepos.NewUserRepository(db),
		Classes:       sqlxrepos.NewClassRepository(db),
		Messages:      sqlxrepos.NewMessageRepository(db),
		Notifications: sqlxrepos.NewNotificationRepository(db),
		Settings:      sqlxrepos.NewSettingRepository(db),
		Files:         sqlxrepos.NewFileRepository(db),
		Ping:          db.PingContext,
		Closer:        Closer{Name: "database", Close: db.Close},
	}
}

func newCache(conf *core.Config, logger core.Logger) cacheResult {
	if conf.Redis.Addr == "" {
		return cacheResult{Cache: cachesvc.NewMemoryCache(), Closer: noopCloser("cache")}
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	cache, client, err := cachesvc.NewRedisCache(ctx, conf.Redis)
	if err != nil {
		logger.Fatal(fmt.Sprintf("connecting to redis: %v", err), err)
	}
	return cacheResult{Cache: cache, Closer: Closer{Name: "redis", Close: client.Close}}
}

func newPublisher(conf *core.Config, logger core.Logger) publisherResult {
	if len(conf.Kafka.Brokers) == 0 {
		return publisherResult{Publisher: eventsvc.NewLogPublisher(logger), Closer: noopCloser("events")}
	}
	p := eventsvc.NewKafkaPublisher(conf.Kafka)
	return publisherResult{Publisher: p, Closer: Closer{Name: "kafka", Close: p.Close}}
}

func newFileStorage(conf *core.Config, logger core.Logger) core.FileStorage {
	var (
		storage core.FileStorage
		err     error
	)
	switch conf.Storage.Backend {
	case "minio":
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		storage, err = storagesvc.NewMinioStorage(ctx, conf.Storage.Minio)
	default:
		storage, err = storagesvc.NewDiskStorage(conf.Storage.Dir)
	}
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up %s storage: %v", conf.Storage.Backend, err), err)
	}
	return storage
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridAPIKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

// newReplyModel returns nil when no API key is configured: replies then come from the catalog only.
func newReplyModel(conf *core.Config) suggest.ReplyModel {
	if conf.AI.APIKey == "" {
		return nil
	}
	return aisvc.NewReplyModel(conf.AI)
}

func newValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	setting.InitValidators(validate, translator)
	return validate, translator
}

func newSettingsReader(svc setting.Service) core.SettingsReader {
	return svc
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.Deps{
		Conf:            p.Conf,
		Logger:          p.Logger,
		Validate:        p.Validate,
		Translator:      p.Translator,
		UserSvc:         p.UserSvc,
		ClassSvc:        p.ClassSvc,
		MessageSvc:      p.MessageSvc,
		NotificationSvc: p.NotificationSvc,
		SettingSvc:      p.SettingSvc,
		FileSvc:         p.FileSvc,
		SuggestSvc:      p.SuggestSvc,
		Ping:            p.Ping,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newRollbarLogger))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newValidator))

	// infrastructure
	must(c.Provide(newRepositories))
	must(c.Provide(newCache))
	must(c.Provide(newPublisher))
	must(c.Provide(newFileStorage))
	must(c.Provide(newEmailService))
	must(c.Provide(newReplyModel))
	must(c.Provide(suggest.DefaultClassifier))

	// services
	must(c.Provide(user.NewService))
	must(c.Provide(class.NewService))
	must(c.Provide(setting.NewService))
	must(c.Provide(newSettingsReader))
	must(c.Provide(file.NewService))
	must(c.Provide(message.NewService))
	must(c.Provide(notification.NewService))
	must(c.Provide(suggest.NewService))

	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
