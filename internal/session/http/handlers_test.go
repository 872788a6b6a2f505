package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gensvc "github.com/jrkim-kr/echarts-ai-studio/internal/generation/service"
	"github.com/jrkim-kr/echarts-ai-studio/internal/projects/repository"
	projsvc "github.com/jrkim-kr/echarts-ai-studio/internal/projects/service"
	sessrepo "github.com/jrkim-kr/echarts-ai-studio/internal/session/repository"
	"github.com/jrkim-kr/echarts-ai-studio/internal/session/service"
)

type env struct {
	router *gin.Engine
	store  *sessrepo.RedisStore
}

func setup(t *testing.T) env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := sessrepo.NewRedisStore(client, time.Minute)
	projects := projsvc.NewProjectService(repository.NewMemoryStore())
	svc := service.NewSessionService(store, gensvc.NewGenerator(), projects)

	r := gin.New()
	New(svc).Register(r.Group("/api/v1/sessions"))
	return env{router: r, store: store}
}

func (e env) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return rr, out
}

func TestSessionAPI_Flow(t *testing.T) {
	e := setup(t)

	rr, out := e.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	sess := out["session"].(map[string]any)
	assert.Equal(t, "no-project", sess["state"])
	base := "/api/v1/sessions/" + sess["session_id"].(string)

	rr, out = e.do(t, http.MethodPost, base+"/generate", map[string]any{
		"requirement": "제조사별 판매량을 바 차트로 만들어줘",
		"data":        "스타벅스: 100, 네스프레소: 200, 카누: 150",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	outcome := out["outcome"].(map[string]any)
	assert.Equal(t, "fallback", outcome["result"].(map[string]any)["source"])
	assert.Equal(t, 1.0, outcome["chart"].(map[string]any)["version"])
	assert.Equal(t, "persisted", outcome["session"].(map[string]any)["state"])
	assert.NotContains(t, outcome, "persist_notice")
	projectID := outcome["session"].(map[string]any)["project_id"].(string)

	rr, out = e.do(t, http.MethodPost, base+"/literal", map[string]any{"code": "{series: [{type: 'pie', data: [1]}]}"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2.0, out["outcome"].(map[string]any)["chart"].(map[string]any)["version"])

	rr, out = e.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2.0, out["session"].(map[string]any)["version"])

	rr, out = e.do(t, http.MethodPost, base+"/new-project", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-project", out["session"].(map[string]any)["state"])

	rr, out = e.do(t, http.MethodPut, base+"/project", map[string]any{"project_id": projectID})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, projectID, out["session"].(map[string]any)["project_id"])
	assert.Equal(t, 2.0, out["session"].(map[string]any)["version"])
}

func TestSessionAPI_Errors(t *testing.T) {
	e := setup(t)

	rr, _ := e.do(t, http.MethodGet, "/api/v1/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	_, out := e.do(t, http.MethodPost, "/api/v1/sessions", nil)
	sid := out["session"].(map[string]any)["session_id"].(string)
	base := "/api/v1/sessions/" + sid

	require.NoError(t, e.store.Acquire(context.Background(), sid))
	rr, _ = e.do(t, http.MethodPost, base+"/generate", map[string]any{"requirement": "바 차트", "data": "A: 1"})
	assert.Equal(t, http.StatusConflict, rr.Code)
	require.NoError(t, e.store.Release(context.Background(), sid))

	rr, out = e.do(t, http.MethodPost, base+"/generate", map[string]any{"requirement": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "empty", out["kind"])

	rr, out = e.do(t, http.MethodPost, base+"/literal", map[string]any{"code": "{series: [}"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "parse", out["kind"])

	rr, _ = e.do(t, http.MethodPut, base+"/project", map[string]any{"project_id": "missing"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = e.do(t, http.MethodPut, base+"/project", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
