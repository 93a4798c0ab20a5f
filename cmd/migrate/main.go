package main

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"sieteymedio/internal/config"
	"sieteymedio/pkg/db"
)

func main() {
	dbh := waitForDB()
	if err := db.Migrate(dbh, config.Instance().MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}
}

func waitForDB() *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			if err := db.LoadInstance(); err == nil {
				return db.Instance()
			}

			time.Sleep(time.Millisecond * 500)
		}
	}
}
