package ratonica

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/ratonica/internal/usecase/health"
)

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNew_RedisWithoutAddress(t *testing.T) {
	cfg := &clientConfig{driver: "redis"}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNew_MemoryHistory(t *testing.T) {
	c, err := New(context.Background(), WithDelays(0, 0), WithSeed(7))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping on memory history: %v", err)
	}
	if h := c.Health(context.Background()); h.Status != "ok" {
		t.Errorf("health = %q, want ok", h.Status)
	}
}

func TestClient_SearchSaveRecent(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, WithDelays(0, 0), WithSeed(42))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := c.Search(ctx, QueryText, "denim jacket")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.ID != "" {
		t.Errorf("unsaved result has id %q", res.ID)
	}
	if len(res.Products) != 8 {
		t.Fatalf("products = %d, want 8", len(res.Products))
	}
	for i := 1; i < len(res.Products); i++ {
		if *res.Products[i-1].SimilarityScore < *res.Products[i].SimilarityScore {
			t.Fatalf("products not sorted by similarity at %d", i)
		}
	}

	id, err := c.SaveSearch(ctx, res)
	if err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty id")
	}

	got, err := c.GetSearch(ctx, id)
	if err != nil {
		t.Fatalf("GetSearch: %v", err)
	}
	if got.ID != id || got.Query.Content != "denim jacket" || len(got.Products) != 8 {
		t.Errorf("unexpected saved search: %+v", got)
	}

	recent, err := c.RecentSearches(ctx, 0)
	if err != nil {
		t.Fatalf("RecentSearches: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != id {
		t.Errorf("recent = %+v", recent)
	}
}

func TestClient_SeedReproducibleIDs(t *testing.T) {
	ctx := context.Background()
	save := func() string {
		c, err := New(ctx, WithDelays(0, 0), WithSeed(99))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		res, err := c.Search(ctx, QueryURL, "https://www.etsy.com/listing/1")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		id, err := c.SaveSearch(ctx, res)
		if err != nil {
			t.Fatalf("SaveSearch: %v", err)
		}
		return id
	}
	if a, b := save(), save(); a != b {
		t.Errorf("ids differ with the same seed: %q vs %q", a, b)
	}
}

func TestClient_ImageUsesAnalyzer(t *testing.T) {
	ctx := context.Background()
	an := &mockAnalyzer{fn: func(_ context.Context, payload string) (string, error) {
		if payload != "data:image/png;base64,AAAA" {
			t.Errorf("payload = %q", payload)
		}
		return "red slip dress", nil
	}}
	c, err := New(ctx, WithDelays(0, 0), WithAnalyzer(an))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := c.Search(ctx, QueryImage, "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Query.Type != QueryImage || res.Query.Content != "red slip dress" {
		t.Errorf("query = %+v", res.Query)
	}
}

func TestClient_AnalyzerError(t *testing.T) {
	ctx := context.Background()
	an := &mockAnalyzer{fn: func(context.Context, string) (string, error) {
		return "", errors.New("vision down")
	}}
	c, err := New(ctx, WithDelays(0, 0), WithAnalyzer(an))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.Search(ctx, QueryImage, "data:image/png;base64,AAAA")
	if !errors.Is(err, ErrVisionProviderError) {
		t.Errorf("expected ErrVisionProviderError, got %v", err)
	}
}

func TestClient_Rescore(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, WithDelays(0, 0), WithSeed(3), WithRescore())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := c.Search(ctx, QueryText, "boots")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, p := range res.Products {
		s := *p.SimilarityScore
		if s < 60 || s >= 100 {
			t.Errorf("score %v outside [60, 100)", s)
		}
	}
}

func TestClient_Search_InvalidQuery(t *testing.T) {
	c := testClient(&mockSearchUC{searchFn: func(context.Context, query.Query) (result.Result, error) {
		t.Fatal("search use case must not be called")
		return result.Result{}, nil
	}}, nil)

	cases := []struct {
		typ     QueryType
		content string
	}{
		{"", "x"},
		{QueryText, ""},
		{"audio", "x"},
	}
	for _, tc := range cases {
		_, err := c.Search(context.Background(), tc.typ, tc.content)
		if !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("Search(%q, %q) err = %v, want ErrInvalidQuery", tc.typ, tc.content, err)
		}
	}
}

func TestClient_GetSearch_NotFound(t *testing.T) {
	c := testClient(nil, &mockHistoryUC{getFn: func(context.Context, string) (result.Result, error) {
		return result.Result{}, ErrSearchNotFound
	}})

	_, err := c.GetSearch(context.Background(), "missing")
	if !errors.Is(err, ErrSearchNotFound) {
		t.Errorf("expected ErrSearchNotFound, got %v", err)
	}
}

func TestClient_SaveSearch_PassesResult(t *testing.T) {
	var saved result.Result
	c := testClient(nil, &mockHistoryUC{saveFn: func(_ context.Context, r result.Result) (string, error) {
		saved = r
		return "new-id", nil
	}})

	in := testDomainResult()
	id, err := c.SaveSearch(context.Background(), fromResult(&in))
	if err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}
	if id != "new-id" {
		t.Errorf("id = %q", id)
	}
	if saved.Query.Type() != query.Text || saved.Query.Content() != "levi's 501" {
		t.Errorf("query = %+v", saved.Query)
	}
	if len(saved.Products) != 1 || saved.Products[0].Score() != 92 {
		t.Errorf("products = %+v", saved.Products)
	}
	if !saved.Timestamp.Equal(in.Timestamp) {
		t.Errorf("timestamp = %v", saved.Timestamp)
	}
}

func TestClient_RecentSearches_Error(t *testing.T) {
	c := testClient(nil, &mockHistoryUC{listFn: func(context.Context, int) ([]result.Result, error) {
		return nil, errors.New("store down")
	}})

	if _, err := c.RecentSearches(context.Background(), 5); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_Health(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"vision": healthuc.CheckError, "database": healthuc.CheckOK},
	}}}

	h := c.Health(context.Background())
	if h.Status != "degraded" {
		t.Errorf("status = %q", h.Status)
	}
	if h.Checks["vision"] != "error" || h.Checks["database"] != "ok" {
		t.Errorf("checks = %v", h.Checks)
	}
}

func TestConverters_NilProducts(t *testing.T) {
	r := toResult(&SearchResult{Query: Query{Type: QueryText, Content: "x"}})
	if r.Products != nil {
		t.Errorf("nil products should stay nil, got %v", r.Products)
	}
}

func TestConverters_ScoreNotAliased(t *testing.T) {
	in := testDomainResult()
	out := fromResult(&in)
	*out.Products[0].SimilarityScore = 1
	if in.Products[0].Score() != 92 {
		t.Error("converted product aliases the domain score")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret").apply(cfg)
	if cfg.driver != "valkey" {
		t.Errorf("driver = %q, want valkey", cfg.driver)
	}
	if cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.addrs[0])
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	cfg2 := &clientConfig{}
	WithRedisURI("redis://localhost:6380/2").apply(cfg2)
	WithKeyPrefix("test:").apply(cfg2)
	if cfg2.driver != "redis" || cfg2.uri != "redis://localhost:6380/2" || cfg2.keyPrefix != "test:" {
		t.Errorf("unexpected redis config: %+v", cfg2)
	}

	cfg3 := &clientConfig{}
	WithDelays(0, time.Second).apply(cfg3)
	if *cfg3.analyzeDelay != 0 || *cfg3.searchDelay != time.Second {
		t.Errorf("delays = (%v, %v)", *cfg3.analyzeDelay, *cfg3.searchDelay)
	}
	if durationOr(nil, 5*time.Second) != 5*time.Second {
		t.Error("nil delay should use the default")
	}

	cfg4 := &clientConfig{}
	logger := slog.Default()
	WithLogger(logger).apply(cfg4)
	if cfg4.logger != logger {
		t.Error("expected logger to be set")
	}

	cfg5 := &clientConfig{}
	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg5)
	if cfg5.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("search", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("search", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "ratonica_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("ratonica_sdk_operations_total not found")
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first newObserver: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("get search x: %w", ErrSearchNotFound), "not_found"},
		{fmt.Errorf("%w: missing", ErrInvalidQuery), "invalid"},
		{ErrInvalidResult, "invalid"},
		{context.Canceled, "canceled"},
		{errors.New("store down"), "error"},
	}
	for _, tc := range cases {
		if got := classify(tc.err); got != tc.want {
			t.Errorf("classify(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
