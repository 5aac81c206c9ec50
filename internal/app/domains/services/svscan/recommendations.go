package svscan

import (
	"fmt"

	"dermascan/internal/app/domains/entity/etscan"
)

// 各风险分级对应的固定建议文案（产品文案，顺序固定）
var (
	lowRiskRecommendations = []string{
		"Continue to monitor this area for any changes in size, shape, or color.",
		"Apply sunscreen regularly and avoid excessive sun exposure.",
		"Perform regular self-examinations of your skin.",
	}

	mediumRiskRecommendations = []string{
		"Schedule a follow-up with a dermatologist within the next month.",
		"Take photos to track any changes in the lesion.",
		"Apply sunscreen with SPF 50+ and avoid direct sun exposure.",
		"Perform weekly self-examinations of your skin.",
	}

	highRiskRecommendations = []string{
		"Consult with a dermatologist as soon as possible.",
		"This lesion shows characteristics that require professional evaluation.",
		"Avoid sun exposure to the area.",
		"Do not scratch or irritate the area.",
	}
)

// recommendationsFor 根据风险分级返回建议列表（纯函数，无随机、无 I/O）
// 只对三个合法分级有定义，传入未知分级属于编程错误，直接 panic
func recommendationsFor(level etscan.RiskLevel) []string {
	var src []string
	switch level {
	case etscan.RiskLow:
		src = lowRiskRecommendations
	case etscan.RiskMedium:
		src = mediumRiskRecommendations
	case etscan.RiskHigh:
		src = highRiskRecommendations
	default:
		panic(fmt.Sprintf("recommendationsFor: unknown risk level %q", level))
	}

	// 返回副本，避免调用方改写共享切片
	out := make([]string, len(src))
	copy(out, src)
	return out
}
