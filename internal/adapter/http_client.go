package adapter

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/models"
	"github.com/go-resty/resty/v2"
)

// HTTPClientConfig carries the connection settings for the portal REST API.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpRemoteSource struct {
	client *resty.Client
	creds  Credentials
	log    *logger.Logger

	mu        sync.RWMutex
	token     string
	studentID string
}

// NewHTTPRemoteSource builds a [RemoteSource] talking to the portal's
// REST API with one student's credentials. Authentication is lazy: the
// first fetch logs in and caches the session token, and a 401 on a
// later fetch forces a re-login before the call is reported as failed.
func NewHTTPRemoteSource(cfg HTTPClientConfig, creds Credentials, log *logger.Logger) RemoteSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://web.spaggiari.eu/rest/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "CVVS/std/4.1.7 Android/10").
		SetHeader("Z-Dev-Apikey", "Tg1NWEwNGIgIC0K")

	return &httpRemoteSource{client: cli, creds: creds, log: log}
}

// NewHTTPFactory returns a [Factory] producing HTTP remote sources that
// share the same connection settings and differ only in credentials.
func NewHTTPFactory(cfg HTTPClientConfig, log *logger.Logger) Factory {
	return func(creds Credentials) RemoteSource {
		return NewHTTPRemoteSource(cfg, creds, log)
	}
}

type loginRequest struct {
	UID  string `json:"uid"`
	Pass string `json:"pass"`
}

type loginResponse struct {
	Token string `json:"token"`
	Ident string `json:"ident"`
}

type agendaResponse struct {
	Agenda []agendaEvent `json:"agenda"`
}

type agendaEvent struct {
	EvtID            int64  `json:"evtId"`
	EvtCode          string `json:"evtCode"`
	EvtDatetimeBegin string `json:"evtDatetimeBegin"`
	Notes            string `json:"notes"`
	AuthorName       string `json:"authorName"`
	SubjectDesc      string `json:"subjectDesc"`
}

type gradesResponse struct {
	Grades []gradeRecord `json:"grades"`
}

type gradeRecord struct {
	EvtID          int64   `json:"evtId"`
	SubjectDesc    string  `json:"subjectDesc"`
	DecimalValue   float64 `json:"decimalValue"`
	DisplayValue   string  `json:"displayValue"`
	EvtDate        string  `json:"evtDate"`
	PeriodDesc     string  `json:"periodDesc"`
	NotesForFamily string  `json:"notesForFamily"`
}

// eventKinds maps the portal event codes to the labels served to the
// frontend. Unknown codes are passed through lowercased.
var eventKinds = map[string]string{
	"AGHW": "compiti",
	"AGNT": "nota",
	"AGCH": "verifica",
}

var nonDigits = regexp.MustCompile(`\D`)

func (h *httpRemoteSource) FetchHomework(ctx context.Context, lookbackDays, lookaheadDays int) ([]models.Task, error) {
	studentID, err := h.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	begin := now.AddDate(0, 0, -lookbackDays).Format("20060102")
	end := now.AddDate(0, 0, lookaheadDays).Format("20060102")

	var payload agendaResponse
	resp, err := h.authorizedRequest(ctx).
		SetResult(&payload).
		SetPathParams(map[string]string{
			"studentID": studentID,
			"begin":     begin,
			"end":       end,
		}).
		Get("/students/{studentID}/agenda/all/{begin}/{end}")
	if err != nil {
		return nil, fmt.Errorf("%w: fetch agenda: %v", ErrConnection, err)
	}
	if err = h.retryOnExpiredSession(ctx, resp, &payload, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParams(map[string]string{
			"studentID": studentID,
			"begin":     begin,
			"end":       end,
		}).Get("/students/{studentID}/agenda/all/{begin}/{end}")
	}); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(payload.Agenda))
	for _, ev := range payload.Agenda {
		tasks = append(tasks, mapAgendaEvent(ev))
	}

	h.log.Debug().Str("func", "FetchHomework").Int("count", len(tasks)).
		Str("begin", begin).Str("end", end).Msg("agenda fetched")
	return tasks, nil
}

func (h *httpRemoteSource) FetchGrades(ctx context.Context) ([]models.Grade, error) {
	studentID, err := h.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	var payload gradesResponse
	resp, err := h.authorizedRequest(ctx).
		SetResult(&payload).
		SetPathParam("studentID", studentID).
		Get("/students/{studentID}/grades")
	if err != nil {
		return nil, fmt.Errorf("%w: fetch grades: %v", ErrConnection, err)
	}
	if err = h.retryOnExpiredSession(ctx, resp, &payload, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("studentID", studentID).Get("/students/{studentID}/grades")
	}); err != nil {
		return nil, err
	}

	grades := make([]models.Grade, 0, len(payload.Grades))
	for _, g := range payload.Grades {
		grades = append(grades, mapGradeRecord(g))
	}

	h.log.Debug().Str("func", "FetchGrades").Int("count", len(grades)).Msg("grades fetched")
	return grades, nil
}

// ensureSession returns the cached student identifier, logging in first
// when no session exists yet.
func (h *httpRemoteSource) ensureSession(ctx context.Context) (string, error) {
	h.mu.RLock()
	token, studentID := h.token, h.studentID
	h.mu.RUnlock()
	if token != "" {
		return studentID, nil
	}
	return h.login(ctx)
}

func (h *httpRemoteSource) login(ctx context.Context) (string, error) {
	var payload loginResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(loginRequest{UID: h.creds.Username, Pass: h.creds.Password}).
		SetResult(&payload).
		Post("/auth/login")
	if err != nil {
		return "", fmt.Errorf("%w: login: %v", ErrConnection, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if payload.Token == "" || payload.Ident == "" {
		return "", fmt.Errorf("%w: login reply missing token or ident", ErrMalformedResponse)
	}

	// The portal ident carries letter affixes around the numeric
	// student identifier used in resource paths.
	studentID := nonDigits.ReplaceAllString(payload.Ident, "")
	if studentID == "" {
		return "", fmt.Errorf("%w: no student id in ident %q", ErrMalformedResponse, payload.Ident)
	}

	h.mu.Lock()
	h.token = payload.Token
	h.studentID = studentID
	h.mu.Unlock()

	return studentID, nil
}

func (h *httpRemoteSource) authorizedRequest(ctx context.Context) *resty.Request {
	h.mu.RLock()
	token := h.token
	h.mu.RUnlock()

	return h.client.R().
		SetContext(ctx).
		SetHeader("Z-Auth-Token", token)
}

// retryOnExpiredSession maps resp through mapHTTPError, except that a
// single 401 triggers one re-login and a retry of the original call.
func (h *httpRemoteSource) retryOnExpiredSession(ctx context.Context, resp *resty.Response, result any, redo func(*resty.Request) (*resty.Response, error)) error {
	err := mapHTTPError(resp)
	if err == nil {
		return nil
	}
	if !isUnauthorized(err) {
		return err
	}

	h.mu.Lock()
	h.token = ""
	h.mu.Unlock()

	if _, err = h.login(ctx); err != nil {
		return err
	}

	retried, err := redo(h.authorizedRequest(ctx).SetResult(result))
	if err != nil {
		return fmt.Errorf("%w: retry after re-login: %v", ErrConnection, err)
	}
	return mapHTTPError(retried)
}

func mapAgendaEvent(ev agendaEvent) models.Task {
	kind, ok := eventKinds[ev.EvtCode]
	if !ok {
		kind = strings.ToLower(ev.EvtCode)
	}

	// "2006-01-02T15:04:05+02:00" from the portal becomes the
	// "2006-01-02 15:04" form served to the frontend.
	start := ev.EvtDatetimeBegin
	if t, err := time.Parse(time.RFC3339, ev.EvtDatetimeBegin); err == nil {
		start = t.Format("2006-01-02 15:04")
	}

	return models.Task{
		ID:          strconv.FormatInt(ev.EvtID, 10),
		Title:       ev.Notes,
		Start:       start,
		Kind:        kind,
		SubjectDesc: ev.SubjectDesc,
		AuthorDesc:  ev.AuthorName,
	}
}

func mapGradeRecord(g gradeRecord) models.Grade {
	return models.Grade{
		ID:           strconv.FormatInt(g.EvtID, 10),
		Subject:      g.SubjectDesc,
		Value:        g.DecimalValue,
		DisplayValue: g.DisplayValue,
		Date:         g.EvtDate,
		Period:       g.PeriodDesc,
		Comment:      g.NotesForFamily,
	}
}
