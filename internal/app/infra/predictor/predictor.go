package predictor

import "context"

// Result 预测引擎返回的规范化结果
// RawRiskLevel 保留上游的二分类标签（benign/malignant）
type Result struct {
	Prediction   string  // 上游预测标签，可能为空
	RawRiskLevel string  // 上游风险标签 benign/malignant
	Confidence   float64 // 置信度 [0,100]
	Details      string  // 说明文本，可能为空
}

// Predictor 预测引擎能力接口
// 生产环境绑定 HTTP 客户端，测试绑定桩实现以确定性地触发两条分支
// 失败时必须返回 errorx.ErrPredictionUnavailable，由编排层降级处理
type Predictor interface {
	Predict(ctx context.Context, image []byte, filename string) (*Result, error)
}
