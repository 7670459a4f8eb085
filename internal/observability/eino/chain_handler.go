package eino

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/compose"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"edu-studio/pkg/logger"
)

type chainStartKey struct{}

// newChainCallbackHandler 为整条 Chain 的一次运行创建 Span 并记录耗时，
// 其它组件的回调直接透传
func newChainCallbackHandler() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackInput) context.Context {
			if !isChain(info) {
				return ctx
			}
			ctx = context.WithValue(ctx, chainStartKey{}, time.Now())
			ctx, _ = otel.Tracer("eino").Start(ctx, "chain."+info.Name, trace.WithAttributes(
				attribute.String("eino.graph_name", info.Name),
				attribute.String("eino.workflow", WorkflowFromContext(ctx)),
			))
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackOutput) context.Context {
			if !isChain(info) {
				return ctx
			}
			logger.Debug(ctx, "eino chain finished",
				"graph", info.Name,
				"duration_ms", chainElapsed(ctx).Milliseconds(),
			)
			trace.SpanFromContext(ctx).End()
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			if !isChain(info) {
				return ctx
			}
			logger.Warn(ctx, "eino chain failed",
				"graph", info.Name,
				"duration_ms", chainElapsed(ctx).Milliseconds(),
				"error", err.Error(),
			)
			span := trace.SpanFromContext(ctx)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return ctx
		}).
		Build()
}

func isChain(info *einocb.RunInfo) bool {
	return info != nil && info.Component == compose.ComponentOfChain
}

func chainElapsed(ctx context.Context) time.Duration {
	start, ok := ctx.Value(chainStartKey{}).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}
