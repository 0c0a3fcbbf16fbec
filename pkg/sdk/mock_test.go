package ratonica

import (
	"context"
	"time"

	domprod "github.com/kailas-cloud/ratonica/internal/domain/product"
	"github.com/kailas-cloud/ratonica/internal/domain/search/query"
	"github.com/kailas-cloud/ratonica/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/ratonica/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, q query.Query) (result.Result, error)
}

func (m *mockSearchUC) Search(ctx context.Context, q query.Query) (result.Result, error) {
	return m.searchFn(ctx, q)
}

// --- historyUseCase mock ---

type mockHistoryUC struct {
	saveFn func(ctx context.Context, r result.Result) (string, error)
	getFn  func(ctx context.Context, id string) (result.Result, error)
	listFn func(ctx context.Context, limit int) ([]result.Result, error)
}

func (m *mockHistoryUC) Save(ctx context.Context, r result.Result) (string, error) {
	return m.saveFn(ctx, r)
}

func (m *mockHistoryUC) Get(ctx context.Context, id string) (result.Result, error) {
	return m.getFn(ctx, id)
}

func (m *mockHistoryUC) List(ctx context.Context, limit int) ([]result.Result, error) {
	return m.listFn(ctx, limit)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

// --- Analyzer mock ---

type mockAnalyzer struct {
	fn func(ctx context.Context, payload string) (string, error)
}

func (m *mockAnalyzer) Analyze(ctx context.Context, payload string) (string, error) {
	return m.fn(ctx, payload)
}

// --- helpers ---

func testClient(searchSvc searchUseCase, historySvc historyUseCase) *Client {
	return &Client{
		searchSvc:  searchSvc,
		historySvc: historySvc,
	}
}

func testDomainResult() result.Result {
	score := 92.0
	return result.Result{
		ID:    "s-1",
		Query: query.Reconstruct(query.Text, "levi's 501"),
		Products: []domprod.Product{{
			ID:              "1",
			Title:           "Vintage Levi's 501",
			Price:           45,
			Currency:        "USD",
			ImageURL:        "https://images.example/1.jpg",
			ProductURL:      "https://www.vinted.com/items/1",
			Platform:        domprod.Vinted,
			Condition:       domprod.Good,
			SimilarityScore: &score,
		}},
		Timestamp: time.UnixMilli(1_700_000_000_000),
	}
}
