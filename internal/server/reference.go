package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// effectiveDate reads the optional ?date= query, defaulting to today. All
// reference listings are windowed on it.
func (s *Server) effectiveDate(c *gin.Context) (time.Time, error) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		return s.clock.Now(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, newValidationError("date", "invalid_date", "date must be formatted YYYY-MM-DD")
	}
	return t, nil
}

func (s *Server) ListCountries(c *gin.Context) {
	at, err := s.effectiveDate(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	countries, err := s.countryRepo.ListActiveCountries(c.Request.Context(), at)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": countries})
}

func (s *Server) ListCoverageLevels(c *gin.Context) {
	at, err := s.effectiveDate(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	levels, err := s.coverageRepo.ListActive(c.Request.Context(), at)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": levels})
}

func (s *Server) ListRiskTypes(c *gin.Context) {
	at, err := s.effectiveDate(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	risks, err := s.riskRepo.ListActive(c.Request.Context(), at)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": risks})
}
