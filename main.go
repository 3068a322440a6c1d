package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/soulware-systems/training-survey/app"
	"github.com/soulware-systems/training-survey/config"
	"github.com/soulware-systems/training-survey/log"
	"github.com/soulware-systems/training-survey/notify"
	"github.com/soulware-systems/training-survey/routes"
	"github.com/soulware-systems/training-survey/store"
	"github.com/soulware-systems/training-survey/store/csvfile"
	"github.com/soulware-systems/training-survey/store/sqlite"
	"github.com/soulware-systems/training-survey/store/xlsxfile"
	"github.com/soulware-systems/training-survey/survey"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	backends, closeStores, err := openBackends(cfg)
	if err != nil {
		log.Fatal("main.store:", err)
	}
	defer closeStores()

	app := app.App{
		Multi:    store.NewMulti(backends...),
		Sessions: survey.NewRegistry(),
		Notifier: notify.New(notify.Settings{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			TLS:  cfg.SMTPTLS,
			From: cfg.NotifyFrom,
		}),
		Config: cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

// openBackends builds the store list: CSV primary, then the optional
// spreadsheet mirror and SQLite backends.
func openBackends(cfg config.Config) (backends []store.Backend, closeAll func(), err error) {
	backends = append(backends, csvfile.New(cfg.CSVPath))
	if cfg.XLSXPath != "" {
		backends = append(backends, xlsxfile.New(cfg.XLSXPath))
	}

	closeAll = func() {}
	if cfg.SQLitePath != "" {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		backends = append(backends, db)
		closeAll = func() { db.Close() }
	}
	return backends, closeAll, nil
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
