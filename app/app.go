package app

import (
	"github.com/soulware-systems/training-survey/config"
	"github.com/soulware-systems/training-survey/notify"
	"github.com/soulware-systems/training-survey/store"
	"github.com/soulware-systems/training-survey/survey"
)

type App struct {
	*store.Multi
	Sessions *survey.Registry
	Notifier notify.Provider
	config.Config
}
