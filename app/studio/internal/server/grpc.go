package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	kgrpc "github.com/go-kratos/kratos/v2/transport/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/iWorld-y/report_studio/app/studio/internal/conf"
)

// NewGRPCServer 创建 gRPC 服务，对外提供健康检查与反射
func NewGRPCServer(c *conf.Server, logger log.Logger) *kgrpc.Server {
	var opts = []kgrpc.ServerOption{
		kgrpc.Middleware(
			recovery.Recovery(),
		),
		kgrpc.UnaryInterceptor(unaryLogger(logger)),
	}
	if c != nil && c.Grpc != nil {
		if c.Grpc.Addr != "" {
			opts = append(opts, kgrpc.Address(c.Grpc.Addr))
		}
		if d, err := time.ParseDuration(c.Grpc.Timeout); err == nil {
			opts = append(opts, kgrpc.Timeout(d))
		}
	}
	return kgrpc.NewServer(opts...)
}

// unaryLogger 记录每个 unary 调用的方法、状态码与耗时
func unaryLogger(logger log.Logger) grpc.UnaryServerInterceptor {
	helper := log.NewHelper(logger)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		if err != nil {
			helper.WithContext(ctx).Warnw(log.DefaultMessageKey, "grpc call failed",
				"method", info.FullMethod, "code", code.String(), "latency", time.Since(start).String(), "error", err.Error())
		} else {
			helper.WithContext(ctx).Debugw(log.DefaultMessageKey, "grpc call",
				"method", info.FullMethod, "code", code.String(), "latency", time.Since(start).String())
		}
		return resp, err
	}
}
