package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paili/analyzer/application/service"
	"paili/common/http"
	"paili/engine/scoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(checks map[string]HealthCheck) (*http.HttpServer, *Handlers) {
	svc := service.NewAnalysisService(scoring.DefaultRules(), map[string]string{"Tanyao": "断么"})
	h := NewHandlers(svc, nil, checks)
	s := http.NewHttpServer(http.WithMode(gin.TestMode))
	s.Use(http.RequestIDMiddleware(), http.RecoveryMiddleware())
	RegisterRoutes(s, h)
	return s, h
}

func do(t *testing.T, s *http.HttpServer, req *nethttp.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestPing(t *testing.T) {
	s, _ := newTestServer(nil)
	w, env := do(t, s, httptest.NewRequest(nethttp.MethodGet, "/ping", nil))
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, http.CodeSuccess, env.Code)
}

func TestAnalyzeGet(t *testing.T) {
	s, _ := newTestServer(nil)
	w, env := do(t, s, httptest.NewRequest(nethttp.MethodGet, "/api/v1/analyze?hand=234567m23455p678s&tsumo=true", nil))
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())

	var res struct {
		Success   bool `json:"success"`
		Shanten   *int `json:"shanten"`
		HandValue struct {
			Han  int `json:"han"`
			Yaku []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"yaku"`
		} `json:"hand_value"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, res.Success)
	require.NotNil(t, res.Shanten)
	assert.Equal(t, -1, *res.Shanten)
	// 门清自摸 + 平和 + 断幺九
	assert.Equal(t, 3, res.HandValue.Han)

	names := map[string]string{}
	for _, y := range res.HandValue.Yaku {
		names[y.ID] = y.Name
	}
	assert.Equal(t, "断么", names["Tanyao"], "使用注入的标签")
}

func TestAnalyzePost(t *testing.T) {
	s, _ := newTestServer(nil)
	body := `{"hand":"123456789m123p1s","options":{"seat_wind":"S"}}`
	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w, env := do(t, s, req)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())

	var res struct {
		Waits struct {
			Waits []struct {
				Tile string `json:"tile"`
			} `json:"waits"`
		} `json:"waits"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Len(t, res.Waits.Waits, 1)
	assert.Equal(t, "1s", res.Waits.Waits[0].Tile)
}

func TestAnalyzeInputErrors(t *testing.T) {
	s, _ := newTestServer(nil)

	cases := []struct {
		name string
		url  string
	}{
		{"缺少手牌", "/api/v1/analyze"},
		{"张数不对", "/api/v1/analyze?hand=123m"},
		{"超过四张", "/api/v1/analyze?hand=11111m234p567s789p"},
		{"风位错误", "/api/v1/analyze?hand=123456789m123p1s&seat=X"},
		{"布尔参数错误", "/api/v1/analyze?hand=123456789m123p1s&tsumo=maybe"},
		{"宝牌指示牌错误", "/api/v1/analyze?hand=123456789m123p1s&dora=8z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, s, httptest.NewRequest(nethttp.MethodGet, tc.url, nil))
			assert.Equal(t, nethttp.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, http.CodeInvalidParam, env.Code)
		})
	}

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/analyze", bytes.NewBufferString(`{"options":{}}`))
	req.Header.Set("Content-Type", "application/json")
	w, _ := do(t, s, req)
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}

func TestAnalyzeText(t *testing.T) {
	s, _ := newTestServer(nil)
	w, _ := do(t, s, httptest.NewRequest(nethttp.MethodGet, "/api/v1/analyze?hand=1112345678999m&format=text", nil))
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "听牌")

	w, _ = do(t, s, httptest.NewRequest(nethttp.MethodGet, "/api/v1/analyze?hand=12m&format=text", nil))
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "分析失败")
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(nil)
	w, env := do(t, s, httptest.NewRequest(nethttp.MethodGet, "/api/v2/analyze", nil))
	assert.Equal(t, nethttp.StatusNotFound, w.Code)
	assert.Equal(t, http.CodeNotFound, env.Code)
	assert.Equal(t, http.MsgNotFound, env.Message)
}

func TestShanten(t *testing.T) {
	s, _ := newTestServer(nil)
	w, env := do(t, s, httptest.NewRequest(nethttp.MethodGet, "/api/v1/shanten?hand=1112345678999m", nil))
	require.Equal(t, nethttp.StatusOK, w.Code)
	var out struct {
		Shanten int `json:"shanten"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, 0, out.Shanten)

	w, _ = do(t, s, httptest.NewRequest(nethttp.MethodGet, "/api/v1/shanten?hand=1m", nil))
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}

func TestLabels(t *testing.T) {
	s, _ := newTestServer(nil)
	w, env := do(t, s, httptest.NewRequest(nethttp.MethodGet, "/api/v1/labels", nil))
	require.Equal(t, nethttp.StatusOK, w.Code)
	var labels map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &labels))
	assert.Equal(t, "断么", labels["Tanyao"])
	assert.Equal(t, "平和", labels["Pinfu"])
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(map[string]HealthCheck{
		"redis": func(ctx context.Context) error { return nil },
	})
	w, _ := do(t, s, httptest.NewRequest(nethttp.MethodGet, "/health", nil))
	assert.Equal(t, nethttp.StatusOK, w.Code)

	s, _ = newTestServer(map[string]HealthCheck{
		"nats": func(ctx context.Context) error { return errors.New("disconnected") },
	})
	w, env := do(t, s, httptest.NewRequest(nethttp.MethodGet, "/health", nil))
	assert.Equal(t, nethttp.StatusServiceUnavailable, w.Code)
	assert.Contains(t, string(env.Data), "disconnected")
}

func TestNatsAnalyze(t *testing.T) {
	_, h := newTestServer(nil)
	handlers := h.NatsHandlers("paili.analyze")
	fn := handlers["paili.analyze"]
	require.NotNil(t, fn)

	out, err := fn(context.Background(), json.RawMessage(`{"hand":"1112345678999m"}`))
	require.NoError(t, err)
	require.NotNil(t, out)

	_, err = fn(context.Background(), json.RawMessage(`{"hand":"1m"}`))
	assert.Error(t, err)

	_, err = fn(context.Background(), json.RawMessage(`[`))
	assert.Error(t, err)
}
