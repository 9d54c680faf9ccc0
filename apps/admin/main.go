package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/services/email"
	"github.com/trezcool/ujumbe/services/logger"
	"github.com/trezcool/ujumbe/storage/database"
	"github.com/trezcool/ujumbe/storage/database/inmem"
	"github.com/trezcool/ujumbe/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")

	var (
		db      *sqlx.DB
		usrRepo user.Repository
		err     error
	)
	if conf.Database.Engine == "memory" {
		logger.Warn("using the in-memory database: changes are lost on exit")
		usrRepo = inmemdb.NewUserRepository(inmemdb.Open())
	} else {
		if err = database.CreateIfNotExist(conf); err != nil {
			logger.Fatal("creating database", err)
		}
		if db, err = database.Open(conf); err != nil {
			logger.Fatal("opening database", err)
		}
		usrRepo = sqlxrepos.NewUserRepository(db)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	user.LoadCommonPasswords(logger)

	cli := commandLine{
		db:         db,
		usrSvc:     user.NewService(usrRepo, emailsvc.NewConsoleService(conf, logger), conf),
		validate:   validate,
		translator: translator,
		out:        os.Stdout,
	}
	err = cli.run(os.Args)

	if db != nil {
		_ = db.Close()
	}
	logger.Close()

	if err != nil {
		if err != errHelp {
			log.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
