// Package callback 注册 Eino ChatModel 的全局回调，为模型调用补充链路与日志
package callback

import (
	"context"
	"sync"

	einocallbacks "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"
)

var initOnce sync.Once

// Init 注册 Eino 全局 callbacks（进程级一次）。
func Init() {
	initOnce.Do(func() {
		handler := cbtemplate.NewHandlerHelper().
			ChatModel(newChatModelCallbackHandler()).
			Handler()
		einocallbacks.AppendGlobalHandlers(handler)
	})
}

// WithRunInfo 为直接调用的 ChatModel 建立回调上下文
func WithRunInfo(ctx context.Context, name, modelType string) context.Context {
	return einocallbacks.InitCallbacks(ctx, &einocallbacks.RunInfo{
		Name:      name,
		Type:      modelType,
		Component: components.ComponentOfChatModel,
	})
}
