package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/smallbiznis/tripquote/internal/clock"
	countrydomain "github.com/smallbiznis/tripquote/internal/country/domain"
	quotedomain "github.com/smallbiznis/tripquote/internal/quote/domain"
	"github.com/smallbiznis/tripquote/pkg/money"
)

type stubQuoteService struct {
	res *quotedomain.PremiumCalculationResult
	err error

	got quotedomain.QuoteRequest
}

func (s *stubQuoteService) CalculatePremium(_ context.Context, req quotedomain.QuoteRequest) (*quotedomain.PremiumCalculationResult, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.res, nil
}

type stubCountryRepo struct {
	countries []countrydomain.Country
}

func (s *stubCountryRepo) FindActiveCountry(context.Context, string, time.Time) (*countrydomain.Country, error) {
	return nil, nil
}

func (s *stubCountryRepo) FindActiveDefaultRate(context.Context, string, time.Time) (*countrydomain.DefaultRate, error) {
	return nil, nil
}

func (s *stubCountryRepo) ListActiveCountries(context.Context, time.Time) ([]countrydomain.Country, error) {
	return s.countries, nil
}

func newTestServer(svc quotedomain.Service, countries countrydomain.Repository) *Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	s := &Server{
		engine:      r,
		clock:       clock.NewFakeClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)),
		quoteSvc:    svc,
		countryRepo: countries,
	}
	s.registerAPIRoutes()
	return s
}

func postQuote(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func validBody() map[string]any {
	return map[string]any{
		"birth_date":          "1991-03-10",
		"start_date":          "2026-06-01",
		"end_date":            "2026-06-15",
		"country_code":        "ES",
		"coverage_level_code": "STANDARD",
	}
}

func TestCalculateQuote_OK(t *testing.T) {
	svc := &stubQuoteService{res: &quotedomain.PremiumCalculationResult{
		Strategy:     quotedomain.StrategyMedicalLevel,
		Currency:     "EUR",
		FinalPremium: money.MustFromString("63.00", "EUR"),
	}}
	s := newTestServer(svc, &stubCountryRepo{})

	w := postQuote(t, s, validBody())
	assert.Equal(t, http.StatusOK, w.Code)

	// defaulted, parsed fields reach the service untouched otherwise
	assert.Equal(t, 1, svc.got.PersonCount)
	assert.Equal(t, "ES", svc.got.CountryCode)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), svc.got.StartDate)

	var resp struct {
		Data quotedomain.PremiumCalculationResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, quotedomain.StrategyMedicalLevel, resp.Data.Strategy)
	assert.Equal(t, "EUR", resp.Data.Currency)
}

func TestCalculateQuote_MissingCountryCode(t *testing.T) {
	s := newTestServer(&stubQuoteService{}, &stubCountryRepo{})

	body := validBody()
	delete(body, "country_code")

	w := postQuote(t, s, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	assert.Equal(t, "country_code", resp.Error.Errors[0].Field)
}

func TestCalculateQuote_BadDateFormat(t *testing.T) {
	s := newTestServer(&stubQuoteService{}, &stubCountryRepo{})

	body := validBody()
	body["start_date"] = "01/06/2026"

	w := postQuote(t, s, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateQuote_MissingReferenceData(t *testing.T) {
	svc := &stubQuoteService{err: quotedomain.NewMissingReferenceDataError("coverage_level", "GOLD")}
	s := newTestServer(svc, &stubCountryRepo{})

	w := postQuote(t, s, validBody())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp errorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "missing_reference_data", resp.Error.Type)
	assert.Equal(t, "coverage_level", resp.Error.Resource)
}

func TestCalculateQuote_AgeOutOfRange(t *testing.T) {
	svc := &stubQuoteService{err: quotedomain.ErrAgeOutOfRange}
	s := newTestServer(svc, &stubCountryRepo{})

	w := postQuote(t, s, validBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "age_out_of_range", resp.Error.Errors[0].Code)
}

func TestListCountries(t *testing.T) {
	repo := &stubCountryRepo{countries: []countrydomain.Country{
		{Code: "ES", Name: "Spain"},
	}}
	s := newTestServer(&stubQuoteService{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/v1/reference/countries", nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []countrydomain.Country `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "ES", resp.Data[0].Code)
}

func TestListCountries_BadDate(t *testing.T) {
	s := newTestServer(&stubQuoteService{}, &stubCountryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/reference/countries?date=June", nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
