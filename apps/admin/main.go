package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/core"
	"github.com/coursedesk/coursedesk/core/record"
	"github.com/coursedesk/coursedesk/storage/database"
	"github.com/coursedesk/coursedesk/storage/jsonfile"
)

type commandLine struct {
	conf       *core.Config
	studentSvc *record.Service
}

func main() {
	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags)

	wd, err := os.Getwd()
	errAndDie(std, err)
	conf, err := core.NewConfig(wd)
	errAndDie(std, err)

	cli := &commandLine{conf: conf}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Coursedesk operator tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		cli.migrateCmd(),
		cli.addStudentCmd(),
		cli.resetPasswordCmd(),
	)

	if err := root.Execute(); err != nil {
		std.Fatal(err)
	}
}

// studentService lazily opens the configured storage backend.
func (cli *commandLine) studentService() (*record.Service, error) {
	if cli.studentSvc != nil {
		return cli.studentSvc, nil
	}

	var store record.Store
	if cli.conf.Storage.Backend == core.StorageDatabase {
		db, err := database.Open(cli.conf.Database)
		if err != nil {
			return nil, err
		}
		store = database.NewStore(db)
	} else {
		var err error
		store, err = jsonfile.NewStore(cli.conf.Storage.DataDir)
		if err != nil {
			return nil, err
		}
	}

	cli.studentSvc = record.NewService(cli.conf, record.Students, store, nil)
	return cli.studentSvc, nil
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
