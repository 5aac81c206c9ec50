package svscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dermascan/internal/app/domains/entity/etscan"
)

func TestFallbackResultBounds(t *testing.T) {
	labels := map[etscan.RiskLevel]string{
		etscan.RiskLow:    "Low Risk",
		etscan.RiskMedium: "Medium Risk",
		etscan.RiskHigh:   "High Risk",
	}

	seen := make(map[etscan.RiskLevel]bool)
	for i := 0; i < 200; i++ {
		result := fallbackResult()

		require.True(t, result.RiskLevel.Valid())
		assert.GreaterOrEqual(t, result.Confidence, float64(70))
		assert.LessOrEqual(t, result.Confidence, float64(90))
		assert.Equal(t, labels[result.RiskLevel], result.Prediction)
		assert.Equal(t, fallbackDetails, result.Details)

		seen[result.RiskLevel] = true
	}

	// 200 次采样足以覆盖三个分级
	assert.Len(t, seen, 3)
}

func TestFallbackDetailsCarriesDegradedMarker(t *testing.T) {
	assert.Contains(t, fallbackDetails, "(Fallback mode)")
	assert.Contains(t, fallbackDetails, baseDetails)
}
