package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/soulware-systems/training-survey/app"
	"github.com/soulware-systems/training-survey/httpx"
	"github.com/soulware-systems/training-survey/log"
	"github.com/soulware-systems/training-survey/model"
	"github.com/soulware-systems/training-survey/schema"
	"github.com/soulware-systems/training-survey/store"
	"github.com/soulware-systems/training-survey/survey"
)

type sessionRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Location string `json:"csc"`
	Email    string `json:"email"`
}

// CreateSession saves demographics and opens a respondent session. The
// location selector is the one hard requirement at this stage; name and
// role fall back to their anonymous defaults.
func CreateSession(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := sessionRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if req.Location == "" {
			httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.DebugLevel, "session.missing_location",
				"Please select your CSC location to proceed.")
			return
		}

		sess := survey.NewSession(req.Name, req.Role, req.Location, req.Email)
		app.Sessions.Put(sess)

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, sess)
	}
}

// ResetSession discards a session before submission, e.g. when a respondent
// starts over.
func ResetSession(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app.Sessions.Delete(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetSurveyByVersion serves the ordered field list a form UI renders.
// Unknown versions fall back to the latest schema rather than failing.
func GetSurveyByVersion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version, err := strconv.Atoi(chi.URLParam(r, "version"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.version")
			return
		}

		render.JSON(w, r, map[string]any{
			"version": version,
			"latest":  schema.LatestVersion(),
			"fields":  schema.FieldsForVersion(version),
		})
	}
}

type submissionRequest struct {
	SessionID string                    `json:"session_id"`
	Values    map[string]string         `json:"values"`
	Rankings  map[string]map[string]int `json:"rankings"`
}

type submissionResponse struct {
	SubmissionID string          `json:"submission_id"`
	Saved        bool            `json:"saved"`
	Warning      string          `json:"warning,omitempty"`
	Backends     []store.Outcome `json:"backends"`
}

// SubmitSurvey turns raw form values into one appended record: build,
// finalize, fan-out append, then the fire-and-forget notification. Partial
// backend success is reported as saved-with-warning, never as a failure.
func SubmitSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version, err := strconv.Atoi(chi.URLParam(r, "version"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.version")
			return
		}

		req := submissionRequest{}
		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		sess, ok := app.Sessions.Get(req.SessionID)
		if !ok {
			httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.DebugLevel, "session.not_found",
				"Please complete the demographics section before submitting the survey.")
			return
		}

		var opts []survey.Option
		if app.StrictRanking {
			opts = append(opts, survey.StrictRanking())
		}
		builder := survey.Begin(version, sess, opts...)

		for key, value := range req.Values {
			builder.Set(key, value)
		}
		for fieldKey, ranks := range req.Rankings {
			if err := builder.AttachRanking(fieldKey, ranks); err != nil {
				httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.DebugLevel, "submission.ranking",
					"%s. Each rank must be unique, with every option ranked.", err)
				return
			}
		}

		rec, err := builder.Finalize(schema.RequiredKeys(version))
		if err != nil {
			var verr survey.ValidationError
			if errors.As(err, &verr) {
				httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.DebugLevel, "submission.finalize",
					"Please fill in %q before submitting.", schema.Label(verr.MissingField))
				return
			}
			httpx.LogInternalError(w, "submission.finalize", err)
			return
		}

		outcomes, err := app.Append(r.Context(), rec)
		if err != nil {
			log.Errorf("store.append: %s", err)
			httpx.LogStatusMsg(w, http.StatusInternalServerError, log.ErrorLevel, "store.append",
				"Your response could not be saved. Please try again or contact support.")
			return
		}

		app.Sessions.Delete(sess.ID)
		notifySubmission(app, sess, rec)

		resp := submissionResponse{
			SubmissionID: rec[model.ColSubmissionID],
			Saved:        true,
			Backends:     outcomes,
		}
		for _, o := range outcomes {
			if !o.OK {
				resp.Warning = fmt.Sprintf("Your response was saved, but the %s copy could not be written.", o.Backend)
			}
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, resp)
	}
}

// notifySubmission is a side effect only: any error was already logged by
// the mailer and never reaches the intake result.
func notifySubmission(app app.App, sess survey.Session, rec model.Record) {
	subject := "New training feedback submission"
	body := fmt.Sprintf(
		"Submission %s\nFrom: %s (%s)\nCSC: %s\nSubmitted at: %s\n",
		rec[model.ColSubmissionID], sess.Name, sess.Role, sess.Location, rec[model.ColSubmittedAt],
	)
	_ = app.Notifier.Send(subject, body, app.NotifyTo)
}
