package svscan

import (
	"math/rand"

	"dermascan/internal/app/domains/entity/etscan"
)

// 降级模式下的固定文案
const (
	baseDetails     = "Analysis based on visual characteristics of the lesion."
	fallbackDetails = baseDetails + " (Fallback mode)"
)

// 降级模式可产出的三个分级及其展示标签
// 注意：真实引擎只会给出 benign/malignant（即 low/high），
// medium 只可能来自这里，该不对称是刻意保留的既有行为
var fallbackTiers = []struct {
	level etscan.RiskLevel
	label string
}{
	{etscan.RiskLow, "Low Risk"},
	{etscan.RiskMedium, "Medium Risk"},
	{etscan.RiskHigh, "High Risk"},
}

// fallbackResult 生成降级模式的合成结果
// 预测引擎不可达时调用，本身无外部依赖、永不失败，
// details 带降级标记以便前端向用户披露
func fallbackResult() *etscan.Result {
	tier := fallbackTiers[rand.Intn(len(fallbackTiers))]
	confidence := float64(70 + rand.Intn(21)) // [70,90]

	return &etscan.Result{
		Prediction: tier.label,
		Confidence: confidence,
		RiskLevel:  tier.level,
		Details:    fallbackDetails,
	}
}
