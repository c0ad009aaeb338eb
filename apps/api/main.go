package main

import (
	"log"
	"os"

	"github.com/coursedesk/coursedesk/apps/api/echo"
	"github.com/coursedesk/coursedesk/core"
	"github.com/coursedesk/coursedesk/core/record"
	"github.com/coursedesk/coursedesk/services/email"
	"github.com/coursedesk/coursedesk/services/logger"
	"github.com/coursedesk/coursedesk/storage/database"
	"github.com/coursedesk/coursedesk/storage/jsonfile"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile)

	wd, err := os.Getwd()
	errAndDie(std, err)
	conf, err := core.NewConfig(wd)
	errAndDie(std, err)

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up storage
	var store record.Store
	switch conf.Storage.Backend {
	case core.StorageDatabase:
		db, err := database.Open(conf.Database)
		errAndDie(std, err)
		defer db.Close()
		store = database.NewStore(db)
	default:
		store, err = jsonfile.NewStore(conf.Storage.DataDir)
		errAndDie(std, err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	services := make([]*record.Service, 0, len(record.AllSchemas))
	for _, schema := range record.AllSchemas {
		services = append(services, record.NewService(conf, schema, store, mailSvc))
	}

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:     conf.Server.Address(),
			Conf:     conf,
			Logger:   logger,
			Services: services,
		},
	)
	app.Start()
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
