package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	quotedomain "github.com/smallbiznis/tripquote/internal/quote/domain"
)

type calculateQuoteRequest struct {
	BirthDate string `json:"birth_date"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	CountryCode       string   `json:"country_code"`
	CoverageLevelCode string   `json:"coverage_level_code"`
	SelectedRiskCodes []string `json:"selected_risk_codes"`

	PromoCode    string `json:"promo_code"`
	PersonCount  int    `json:"person_count"`
	Corporate    bool   `json:"corporate"`
	LoyaltyYears int    `json:"loyalty_years"`

	UseCountryDefaultRate bool `json:"use_country_default_rate"`
}

func (s *Server) CalculateQuote(c *gin.Context) {
	var body calculateQuoteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	req, err := body.toDomain()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	res, err := s.quoteSvc.CalculatePremium(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}

func (b calculateQuoteRequest) toDomain() (quotedomain.QuoteRequest, error) {
	var req quotedomain.QuoteRequest

	birth, err := parseDateField("birth_date", b.BirthDate)
	if err != nil {
		return req, err
	}
	start, err := parseDateField("start_date", b.StartDate)
	if err != nil {
		return req, err
	}
	end, err := parseDateField("end_date", b.EndDate)
	if err != nil {
		return req, err
	}
	if strings.TrimSpace(b.CountryCode) == "" {
		return req, newValidationError("country_code", "required", "country code is required")
	}
	if b.PersonCount < 0 {
		return req, newValidationError("person_count", "invalid_person_count", "person count must not be negative")
	}
	if b.LoyaltyYears < 0 {
		return req, newValidationError("loyalty_years", "invalid_loyalty_years", "loyalty years must not be negative")
	}

	personCount := b.PersonCount
	if personCount == 0 {
		personCount = 1
	}

	return quotedomain.QuoteRequest{
		BirthDate:             birth,
		StartDate:             start,
		EndDate:               end,
		CountryCode:           b.CountryCode,
		CoverageLevelCode:     b.CoverageLevelCode,
		SelectedRiskCodes:     b.SelectedRiskCodes,
		PromoCode:             b.PromoCode,
		PersonCount:           personCount,
		Corporate:             b.Corporate,
		LoyaltyYears:          b.LoyaltyYears,
		UseCountryDefaultRate: b.UseCountryDefaultRate,
	}, nil
}

func parseDateField(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, newValidationError(field, "required", field+" is required")
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, newValidationError(field, "invalid_date", field+" must be formatted YYYY-MM-DD")
	}
	return t, nil
}
