// Package ipfs 负责把会员卡元数据写入内容寻址存储并返回 CID。
// 真实后端不可用或未配置时降级为占位符 CID，铸造流程不会因此失败。
package ipfs

import (
	"context"
	"fmt"
	"time"

	"chainclub/internal/config"

	"github.com/zeromicro/go-zero/core/logx"
)

// Publisher stores a metadata document and returns its content identifier.
type Publisher interface {
	Publish(ctx context.Context, doc interface{}) (string, error)
}

// PlaceholderCidPrefix 占位符 CID 的固定前缀，便于监控侧识别降级
const PlaceholderCidPrefix = "QmMockIPFSHashForDevelopment"

// PlaceholderCid 生成一个基于时间的占位符 CID
func PlaceholderCid() string {
	return fmt.Sprintf("%s%d", PlaceholderCidPrefix, time.Now().UnixMilli())
}

// IsPlaceholderCid reports whether a content id is a degraded-mode placeholder.
func IsPlaceholderCid(cid string) bool {
	return len(cid) >= len(PlaceholderCidPrefix) && cid[:len(PlaceholderCidPrefix)] == PlaceholderCidPrefix
}

// NewPublisher 按配置选择真实后端或占位符实现
func NewPublisher(c config.IpfsConf, serviceMode string) Publisher {
	if c.ApiUrl == "" {
		logx.Infof("IPFS 未配置，元数据将使用占位符 CID（开发模式）")
		return NewPlaceholderPublisher(serviceMode)
	}
	return NewHttpPublisher(c)
}

// PlaceholderPublisher always succeeds with a synthetic content id.
type PlaceholderPublisher struct {
	serviceMode string
}

func NewPlaceholderPublisher(serviceMode string) *PlaceholderPublisher {
	return &PlaceholderPublisher{serviceMode: serviceMode}
}

// Publish returns a time-based placeholder identifier.
// 生产模式下走到这里说明存储配置缺失，按可告警条件记录
func (p *PlaceholderPublisher) Publish(_ context.Context, _ interface{}) (string, error) {
	cid := PlaceholderCid()
	if p.serviceMode == "pro" {
		logx.Errorf("生产环境正在使用占位符 CID: %s，该元数据不可检索，请检查 IPFS 配置", cid)
	}
	return cid, nil
}
