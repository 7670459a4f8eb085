package eino

import (
	"sync"

	einocallbacks "github.com/cloudwego/eino/callbacks"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"
)

var initOnce sync.Once

// Init 注册进程级 Eino 回调：模型调用的指标与 Span，以及 Chain 级别的 Span。
// 重复调用无副作用。
func Init() {
	initOnce.Do(func() {
		models := cbtemplate.NewHandlerHelper().
			ChatModel(newChatModelCallbackHandler()).
			Handler()
		einocallbacks.AppendGlobalHandlers(models, newChainCallbackHandler())
	})
}
