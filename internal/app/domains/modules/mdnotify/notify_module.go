package mdnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dermascan/internal/app/domains/entity/etscan"
	"dermascan/internal/app/infra/persistence/redis"
)

// NotifyModule 通知模块
// 职责：
// 1. 组装 Redis Pub/Sub 客户端
// 2. 约定分析完成事件的频道命名规则（scan:analyzed:{ownerID}）
type NotifyModule struct {
	redisClient *redis.PubSubClient
}

// ScanAnalyzedEvent 分析完成事件
type ScanAnalyzedEvent struct {
	ScanID     string `json:"scan_id"`
	RiskLevel  string `json:"risk_level"`
	AnalyzedAt int64  `json:"analyzed_at"`
}

// NewNotifyModule 创建通知模块实例
func NewNotifyModule(redisClient *redis.PubSubClient) *NotifyModule {
	return &NotifyModule{
		redisClient: redisClient,
	}
}

// PublishScanAnalyzed 发布分析完成事件
// 业务逻辑：频道命名规则 scan:analyzed:{ownerID}，前端可订阅实现免轮询刷新
func (m *NotifyModule) PublishScanAnalyzed(ctx context.Context, scan *etscan.Scan) error {
	event := ScanAnalyzedEvent{
		ScanID:     scan.ID,
		RiskLevel:  string(scan.Result.RiskLevel),
		AnalyzedAt: time.Now().Unix(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal scan analyzed event failed: %w", err)
	}

	channel := fmt.Sprintf("scan:analyzed:%d", scan.OwnerID)

	// 调用基础设施层
	return m.redisClient.Publish(ctx, channel, string(payload))
}
