package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"coretemp/internal/logger"
	"coretemp/internal/models"
	"coretemp/internal/service"
)

func TestHealth(t *testing.T) {
	w := doGet(newTestRouter(&service.Service{}), "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListRuns_Validation(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		code    int
		errText string
	}{
		{name: "bad from", query: "?from=notatime", code: http.StatusBadRequest, errText: errFromInvalid},
		{name: "bad to", query: "?to=yesterday", code: http.StatusBadRequest, errText: errToInvalid},
		{name: "reversed", query: "?from=2025-08-31&to=2025-08-01", code: http.StatusBadRequest, errText: errRangeInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			archive := &mockArchive{}
			w := doGet(newTestRouter(&service.Service{Archive: archive}), "/api/v1/runs"+tc.query)
			require.Equal(t, tc.code, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.errText, body["error"])
		})
	}
}

func TestListRuns_OK(t *testing.T) {
	started := time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)
	archive := &mockArchive{listResp: []models.FitRun{
		{ID: "a", Input: "one.txt", StartedAt: started, Channels: 4},
		{ID: "b", Input: "two.txt", StartedAt: started.Add(time.Hour), Channels: 4},
	}}
	r := newTestRouter(&service.Service{Archive: archive})

	w := doGet(r, "/api/v1/runs?from=2025-08-01&to=2025-08-31")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Count int             `json:"count"`
		Runs  []models.FitRun `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "b", out.Runs[1].ID)

	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), archive.lastList.From)
	assert.Equal(t, time.Date(2025, 8, 31, 23, 59, 59, 999999999, time.UTC), archive.lastList.To)
}

func TestListRuns_ServiceError(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&service.Service{Archive: &mockArchive{listErr: errors.New("db down")}},
		logger.New(zapcore.AddSync(&buf), logger.DebugLevel))
	r := h.InitRoutes()

	w := doGet(r, "/api/v1/runs")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "runs_list_failed")
	assert.Contains(t, buf.String(), "http_request")
}

func TestRuns_ArchiveDisabled(t *testing.T) {
	r := newTestRouter(&service.Service{})

	assert.Equal(t, http.StatusServiceUnavailable, doGet(r, "/api/v1/runs").Code)
	assert.Equal(t, http.StatusServiceUnavailable, doGet(r, "/api/v1/runs/a").Code)
}

func TestGetRun(t *testing.T) {
	archive := &mockArchive{runs: map[string]models.FitRun{
		"a": {ID: "a", Channels: 1, Lines: []models.FitLine{
			{Channel: 0, Seq: 0, Kind: "least-squares", XLo: 0, XHi: 60, Intercept: 10, Slope: 0.5},
		}},
	}}
	r := newTestRouter(&service.Service{Archive: archive})

	w := doGet(r, "/api/v1/runs/a")
	require.Equal(t, http.StatusOK, w.Code)
	var run models.FitRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	require.Len(t, run.Lines, 1)
	assert.Equal(t, 0.5, run.Lines[0].Slope)

	assert.Equal(t, http.StatusNotFound, doGet(r, "/api/v1/runs/zzz").Code)

	archive.getErr = errors.New("boom")
	assert.Equal(t, http.StatusInternalServerError, doGet(r, "/api/v1/runs/a").Code)
}

func TestParseQueryTime(t *testing.T) {
	for _, s := range []string{"2025-08-27T15:04:05Z", "2025-08-27 15:04:05", "2025-08-27"} {
		_, err := parseQueryTime(s)
		assert.NoError(t, err, s)
	}
	_, err := parseQueryTime("27/08/2025")
	assert.Error(t, err)
	assert.True(t, isDateOnly("2025-08-27"))
	assert.False(t, isDateOnly("2025-08-27 10:00:00"))
}
