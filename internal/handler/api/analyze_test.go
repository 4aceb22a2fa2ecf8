package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SeasonPulse/internal/domain/models"
	domrepo "SeasonPulse/internal/domain/repository"
	xhttp "SeasonPulse/pkg/http"

	"github.com/labstack/echo/v4"
)

type stubAnalyzer struct {
	result    *models.AnalyzeResult
	err       error
	symbols   []models.SymbolMeta
	healthErr error
	gotSymbol string
	gotFilter domrepo.FilterMode
}

func (s *stubAnalyzer) Analyze(ctx context.Context, symbol string, filter domrepo.FilterMode) (*models.AnalyzeResult, error) {
	s.gotSymbol = symbol
	s.gotFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubAnalyzer) Symbols(ctx context.Context) ([]models.SymbolMeta, error) {
	return s.symbols, nil
}

func (s *stubAnalyzer) Health(ctx context.Context) error { return s.healthErr }

func serve(t *testing.T, analyzer Analyzer, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	NewHandler(analyzer, nil).RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpointReturnsResult(t *testing.T) {
	stub := &stubAnalyzer{
		result: &models.AnalyzeResult{
			Statistics: []models.WeekNumberStats{
				{WeekNumber: 41, SampleCount: 3, AvgReturn: 1.5},
			},
			History: []models.WeeklyBar{},
			CurrentInfo: models.CurrentWeekInfo{
				CurrentWeek:     43,
				PriorWeekReturn: 8.0,
			},
		},
	}

	rec := serve(t, stub, "/api/analyze/AAPL?filter=after_up")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if stub.gotSymbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", stub.gotSymbol)
	}
	if stub.gotFilter != domrepo.FilterAfterUp {
		t.Errorf("filter = %q, want after_up", stub.gotFilter)
	}

	var body models.AnalyzeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.CurrentInfo.CurrentWeek != 43 {
		t.Errorf("current_week = %d, want 43", body.CurrentInfo.CurrentWeek)
	}
	if len(body.Statistics) != 1 || body.Statistics[0].SampleCount != 3 {
		t.Errorf("unexpected statistics: %+v", body.Statistics)
	}
}

func TestAnalyzeEndpointDefaultsFilterToAll(t *testing.T) {
	stub := &stubAnalyzer{result: &models.AnalyzeResult{}}

	rec := serve(t, stub, "/api/analyze/MSFT")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.gotFilter != domrepo.FilterAll {
		t.Errorf("filter = %q, want all", stub.gotFilter)
	}
}

func TestAnalyzeEndpointRejectsBadFilter(t *testing.T) {
	stub := &stubAnalyzer{result: &models.AnalyzeResult{}}

	rec := serve(t, stub, "/api/analyze/AAPL?filter=sideways")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body xhttp.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if !strings.Contains(body.Error, "filter") {
		t.Errorf("error message %q should mention filter", body.Error)
	}
}

func TestAnalyzeEndpointMapsNotFound(t *testing.T) {
	stub := &stubAnalyzer{err: xhttp.NotFoundErrorf("no data found for symbol %s", "NOPE")}

	rec := serve(t, stub, "/api/analyze/NOPE")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body xhttp.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body.Error != "no data found for symbol NOPE" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestAnalyzeEndpointHidesInternalDetail(t *testing.T) {
	stub := &stubAnalyzer{err: xhttp.InternalError("storage unavailable")}

	rec := serve(t, stub, "/api/analyze/AAPL")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestSymbolsEndpoint(t *testing.T) {
	stub := &stubAnalyzer{
		symbols: []models.SymbolMeta{
			{Symbol: "AAPL", LastUpdated: time.Date(2024, 10, 22, 22, 0, 0, 0, time.UTC)},
		},
	}

	rec := serve(t, stub, "/api/symbols")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body []models.SymbolMeta
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(body) != 1 || body[0].Symbol != "AAPL" {
		t.Errorf("unexpected symbols: %+v", body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	rec := serve(t, &stubAnalyzer{}, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = serve(t, &stubAnalyzer{healthErr: context.DeadlineExceeded}, "/healthz")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
