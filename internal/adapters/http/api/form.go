// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gorilla/schema"
	service "github.com/okian/studytrack/internal/app"
	"github.com/okian/studytrack/internal/domain/catalog"
	"github.com/okian/studytrack/internal/domain/model"
	"github.com/okian/studytrack/pkg/logger"
)

// User-facing validation messages.
const (
	MsgInvalidScore = "Invalid score. Please enter a number."
	MsgMissingName  = "Student name is required."
	MsgInternal     = "The evaluation could not be saved. Please try again later."
)

// submissionForm mirrors the fields posted by the form page. Score stays a
// string so that unparsable input reaches the service's validation.
type submissionForm struct {
	Name       string `schema:"nome"`
	Score      string `schema:"score"`
	Course     string `schema:"course"`
	Discipline string `schema:"discipline"`
}

// FormHandler serves the submission form and its result page at /.
type FormHandler struct {
	deps    Dependencies
	decoder *schema.Decoder
	log     logger.Logger
}

// NewFormHandler creates a new form handler.
func NewFormHandler(deps Dependencies, log logger.Logger) *FormHandler {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return &FormHandler{deps: deps, decoder: dec, log: log}
}

// HandleIndex handles GET / (form) and POST / (submission).
func (h *FormHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.renderForm(w, r)
	case http.MethodPost:
		h.handleSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *FormHandler) renderForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageForm, formPage{
		Courses:          catalog.Courses(),
		SubjectsByCourse: catalog.SubjectsByCourse(),
	})
}

func (h *FormHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit"
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, pageMessage, MsgInvalidScore)
		return
	}
	var form submissionForm
	if err := h.decoder.Decode(&form, r.PostForm); err != nil {
		h.warn(r, "decode form", WrapKind(op, ErrBadRequest, err))
		h.render(w, r, http.StatusBadRequest, pageMessage, MsgInvalidScore)
		return
	}

	res, err := h.deps.Submit(ctx, service.Submission{
		Name:    form.Name,
		Score:   form.Score,
		Course:  form.Course,
		Subject: form.Discipline,
	})
	switch {
	case errors.Is(err, service.ErrMissingName):
		h.render(w, r, http.StatusBadRequest, pageMessage, MsgMissingName)
		return
	case errors.Is(err, service.ErrValidation):
		h.render(w, r, http.StatusBadRequest, pageMessage, MsgInvalidScore)
		return
	case err != nil:
		if h.log != nil {
			h.log.Error(ctx, "submission failed",
				logger.String("request_id", RequestIDFrom(ctx)),
				logger.Error(WrapKind(op, ErrInternal, err)),
			)
		}
		h.render(w, r, http.StatusInternalServerError, pageMessage, MsgInternal)
		return
	}

	rec := res.Record
	h.render(w, r, http.StatusOK, pageResult, resultPage{
		Name:      rec.StudentName,
		Score:     model.FormatScore(rec.Score),
		TierLabel: rec.TierLabel,
		TierCode:  rec.TierCode.String(),
		Feedback:  res.Feedback,
		Course:    rec.Course,
		Subject:   rec.Subject,
		Advice:    res.Advice,
		Frequency: res.Frequency,
		Note:      res.Note,
	})
}

// render executes page into a buffer first so a template error never leaves
// a half-written response.
func (h *FormHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, page, data); err != nil {
		h.warn(r, "render page", WrapKind("api.render", ErrTemplate, err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *FormHandler) warn(r *http.Request, msg string, err error) {
	if h.log == nil {
		return
	}
	h.log.Warn(r.Context(), msg,
		logger.String("request_id", RequestIDFrom(r.Context())),
		logger.Error(err),
	)
}
