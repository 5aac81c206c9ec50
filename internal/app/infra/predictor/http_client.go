package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"dermascan/internal/app/pkg/errorx"
	"dermascan/internal/app/pkg/logger"
)

// 模型推理最长等待时间，超过即降级
const defaultTimeout = 60 * time.Second

// HTTPClient 预测引擎 HTTP 客户端
// 调用外部推理服务的 /predict 接口，只尝试一次，不重试
type HTTPClient struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

// predictResponse 推理服务响应结构
type predictResponse struct {
	Prediction string  `json:"prediction"`
	RiskLevel  string  `json:"riskLevel"`
	Confidence float64 `json:"confidence"`
	Details    string  `json:"details"`
}

// NewHTTPClient 创建预测引擎客户端
// timeout 为 0 时使用默认 60s
func NewHTTPClient(baseURL string, timeout time.Duration, log logger.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Predict 将图片以 multipart 形式发送到推理服务
// 任何失败（网络错误、超时、非 2xx、响应不可解析）统一收敛为
// errorx.ErrPredictionUnavailable，由调用方切换到降级分支
func (c *HTTPClient) Predict(ctx context.Context, image []byte, filename string) (*Result, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, c.unavailable(ctx, "build multipart failed", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, c.unavailable(ctx, "write multipart failed", err)
	}
	if err := writer.Close(); err != nil {
		return nil, c.unavailable(ctx, "close multipart failed", err)
	}

	endpoint := c.baseURL + "/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, c.unavailable(ctx, "build request failed", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.unavailable(ctx, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.unavailable(ctx, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var body predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, c.unavailable(ctx, "decode response failed", err)
	}

	return &Result{
		Prediction:   body.Prediction,
		RawRiskLevel: body.RiskLevel,
		Confidence:   body.Confidence,
		Details:      body.Details,
	}, nil
}

// unavailable 记录失败原因并收敛为统一的不可用信号
func (c *HTTPClient) unavailable(ctx context.Context, reason string, err error) error {
	if c.log != nil {
		c.log.Warnf(ctx, "prediction engine unavailable: %s: %v", reason, err)
	}
	return errorx.ErrPredictionUnavailable
}
