// Package port 定义工作流层依赖的外部能力
package port

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

// ChatModelFactory 按提供商名称返回 ChatModel，name 为空时使用默认提供商
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
	// Resolve 返回实际使用的提供商名称与模型名，用于日志与指标
	Resolve(name string) (provider string, modelName string)
}
