package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/soulware-systems/training-survey/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Post("/sessions", CreateSession(app))
	api.Delete("/sessions/{id}", ResetSession(app))

	api.Get(`/surveys/{version:^\d+$}`, GetSurveyByVersion(app))
	api.Post(`/surveys/{version:^\d+$}/submissions`, SubmitSurvey(app))

	api.Route("/results", func(r chi.Router) {
		r.Get("/summary", GetResultsSummary(app))
		r.Get("/rows", GetResultsRows(app))
		r.Get("/export", ExportResults(app))
	})

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}
