package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, serverURL string) *httpRemoteSource {
	t.Helper()
	src := NewHTTPRemoteSource(
		HTTPClientConfig{BaseURL: serverURL, Timeout: 5 * time.Second},
		Credentials{Username: "S1234567", Password: "secret"},
		logger.Nop(),
	)
	return src.(*httpRemoteSource)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestFetchHomework_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/login":
			assert.Equal(t, http.MethodPost, r.Method)
			writeJSON(t, w, loginResponse{Token: "tok-1", Ident: "G9876543X"})
		case r.URL.Path == "/students/9876543/agenda/all/"+agendaBegin(90)+"/"+agendaEnd(90):
			assert.Equal(t, "tok-1", r.Header.Get("Z-Auth-Token"))
			writeJSON(t, w, agendaResponse{Agenda: []agendaEvent{
				{
					EvtID:            418230,
					EvtCode:          "AGHW",
					EvtDatetimeBegin: "2026-05-02T09:00:00+02:00",
					Notes:            "esercizi pag. 120",
					AuthorName:       "ROSSI MARIA",
					SubjectDesc:      "MATEMATICA",
				},
				{
					EvtID:            418231,
					EvtCode:          "AGXX",
					EvtDatetimeBegin: "not-a-date",
					Notes:            "gita scolastica",
				},
			}})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL)
	tasks, err := src.FetchHomework(context.Background(), 90, 90)

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "418230", tasks[0].ID)
	assert.Equal(t, "esercizi pag. 120", tasks[0].Title)
	assert.Equal(t, "2026-05-02 09:00", tasks[0].Start)
	assert.Equal(t, "compiti", tasks[0].Kind)
	assert.Equal(t, "MATEMATICA", tasks[0].SubjectDesc)
	assert.Equal(t, "ROSSI MARIA", tasks[0].AuthorDesc)
	assert.False(t, tasks[0].IsManual)
	// unknown codes and unparseable dates are passed through
	assert.Equal(t, "agxx", tasks[1].Kind)
	assert.Equal(t, "not-a-date", tasks[1].Start)
}

func TestFetchGrades_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeJSON(t, w, loginResponse{Token: "tok-1", Ident: "G55A"})
		case "/students/55/grades":
			writeJSON(t, w, gradesResponse{Grades: []gradeRecord{
				{
					EvtID:          900100,
					SubjectDesc:    "STORIA",
					DecimalValue:   7.25,
					DisplayValue:   "7+",
					EvtDate:        "2026-03-14",
					PeriodDesc:     "pentamestre",
					NotesForFamily: "interrogazione",
				},
			}})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL)
	grades, err := src.FetchGrades(context.Background())

	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, "900100", grades[0].ID)
	assert.Equal(t, "STORIA", grades[0].Subject)
	assert.InDelta(t, 7.25, grades[0].Value, 1e-9)
	assert.Equal(t, "7+", grades[0].DisplayValue)
	assert.Equal(t, "2026-03-14", grades[0].Date)
	assert.Equal(t, "pentamestre", grades[0].Period)
	assert.Equal(t, "interrogazione", grades[0].Comment)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid credentials"))
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL)
	_, err := src.FetchGrades(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_MalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, loginResponse{Token: "tok", Ident: "no-digits-here"})
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL)
	_, err := src.FetchGrades(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestFetch_ReloginOnExpiredSession(t *testing.T) {
	logins := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			logins++
			writeJSON(t, w, loginResponse{Token: "tok-" + string(rune('0'+logins)), Ident: "G7"})
		case "/students/7/grades":
			if r.Header.Get("Z-Auth-Token") == "tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(t, w, gradesResponse{Grades: []gradeRecord{{EvtID: 1, SubjectDesc: "LATINO"}}})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL)

	// prime a session that the server will treat as expired
	_, err := src.login(context.Background())
	require.NoError(t, err)

	grades, err := src.FetchGrades(context.Background())

	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, 2, logins)
	assert.Equal(t, "LATINO", grades[0].Subject)
}

func TestFetch_PortalDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := newTestSource(t, srv.URL)
	_, err := src.FetchHomework(context.Background(), 90, 90)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func agendaBegin(lookback int) string {
	return time.Now().AddDate(0, 0, -lookback).Format("20060102")
}

func agendaEnd(lookahead int) string {
	return time.Now().AddDate(0, 0, lookahead).Format("20060102")
}
