package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ratonica/internal/config"
	dbRedis "github.com/kailas-cloud/ratonica/internal/db/redis"
	"github.com/kailas-cloud/ratonica/internal/metrics"
	chiTransport "github.com/kailas-cloud/ratonica/internal/transport/chi"
)

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}

func testConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	return &cfg
}

const fastYAML = `
search:
  analyze_delay_ms: 0
  search_delay_ms: 0
  seed: 11
vision:
  cache_ttl_sec: 60
`

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestRouter_SearchSaveAndList(t *testing.T) {
	h := newRouter(testConfig(t, fastYAML), nil, zap.NewNop())

	rec := do(t, h, http.MethodPost, "/search", map[string]string{"type": "text", "content": "denim jacket"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var res chiTransport.SearchResultDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Products, 8)

	rec = do(t, h, http.MethodPost, "/history", res)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved chiTransport.SaveSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.SearchID)

	rec = do(t, h, http.MethodGet, "/history/"+saved.SearchID+"?platform=etsy", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got chiTransport.SearchResultDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	for _, p := range got.Products {
		assert.Equal(t, "etsy", p.Platform)
	}

	rec = do(t, h, http.MethodGet, "/history?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []chiTransport.HistoryItemDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, saved.SearchID, items[0].ID)
	assert.Equal(t, 8, items[0].ResultCount)
}

func TestRouter_ImageSearchUsesStub(t *testing.T) {
	h := newRouter(testConfig(t, fastYAML), nil, zap.NewNop())

	body := map[string]string{"type": "image", "content": "data:image/jpeg;base64,/9j/4AAQ"}
	for range 2 {
		rec := do(t, h, http.MethodPost, "/search", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res chiTransport.SearchResultDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "image", res.Query.Type)
		assert.Equal(t, "vintage denim jacket with embroidery", res.Query.Content)
	}
}

func TestRouter_Errors(t *testing.T) {
	h := newRouter(testConfig(t, fastYAML), nil, zap.NewNop())

	rec := do(t, h, http.MethodPost, "/search", map[string]string{"type": "text"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing required fields")

	rec = do(t, h, http.MethodGet, "/history/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Search not found")

	rec = do(t, h, http.MethodGet, "/history?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid query parameters")
}

func TestRouter_ProductAffiliate(t *testing.T) {
	h := newRouter(testConfig(t, fastYAML+"affiliate:\n  param_name: src\n  param_value: test\n"), nil, zap.NewNop())

	rec := do(t, h, http.MethodGet, "/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var d chiTransport.ProductDetailDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.True(t, strings.HasSuffix(d.AffiliateURL, "src=test"), d.AffiliateURL)
}

func TestRouter_DisabledPlatforms(t *testing.T) {
	cfg := testConfig(t, fastYAML+`
platforms:
  - name: vinted
    enabled: true
  - name: etsy
    enabled: false
`)
	h := newRouter(cfg, nil, zap.NewNop())

	rec := do(t, h, http.MethodGet, "/platforms", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ps []chiTransport.PlatformDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ps))
	require.Len(t, ps, 1)
	assert.Equal(t, "vinted", ps[0].Name)

	rec = do(t, h, http.MethodPost, "/search", map[string]string{"type": "url", "content": "https://www.vinted.com/items/1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var res chiTransport.SearchResultDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	for _, p := range res.Products {
		assert.Equal(t, "vinted", p.Platform)
	}
}

func TestRouter_HealthMemory(t *testing.T) {
	h := newRouter(testConfig(t, fastYAML), nil, zap.NewNop())

	rec := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var hr chiTransport.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hr))
	assert.Equal(t, "ok", hr.Status)
}

func TestBuildAnalyzer_OpenAIHasHealthCheck(t *testing.T) {
	cfg := testConfig(t, "vision:\n  provider: openai\n  api_key: sk-test\n")
	an, vision := buildAnalyzer(&cfg.Vision, 0, nil, "", zap.NewNop())
	assert.NotNil(t, an)
	assert.NotNil(t, vision)

	stubCfg := testConfig(t, "")
	_, vision = buildAnalyzer(&stubCfg.Vision, 0, nil, "", zap.NewNop())
	assert.Nil(t, vision)
}

// keyPrefixMatcher matches a command by name and key prefix.
type keyPrefixMatcher struct{ cmd, prefix string }

func (m keyPrefixMatcher) Matches(x any) bool {
	c, ok := x.(rueidis.Completed)
	if !ok {
		return false
	}
	args := c.Commands()
	return len(args) > 1 && args[0] == m.cmd && strings.HasPrefix(args[1], m.prefix)
}

func (m keyPrefixMatcher) String() string { return m.cmd + " " + m.prefix + "*" }

func TestBuildAnalyzer_CacheUsesConfiguredKeyPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	c.EXPECT().
		Do(gomock.Any(), keyPrefixMatcher{"GET", "shop-a:analysis_cache:"}).
		Return(mock.Result(mock.RedisNil()))
	c.EXPECT().
		Do(gomock.Any(), keyPrefixMatcher{"SET", "shop-a:analysis_cache:"}).
		Return(mock.Result(mock.RedisString("OK")))

	cfg := testConfig(t, fastYAML)
	an, _ := buildAnalyzer(&cfg.Vision, 0, dbRedis.NewStoreForTest(c), "shop-a:", zap.NewNop())

	text, err := an.Analyze(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestOpenStore_Memory(t *testing.T) {
	s, err := openStore(context.Background(), &config.DatabaseConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = openStore(context.Background(), &config.DatabaseConfig{Driver: "mongo"})
	assert.Error(t, err)
}
