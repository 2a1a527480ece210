package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/pressroom/backend/internal/lifecycle"
)

// New builds the JSON-RPC server for the admin moderation console. The
// server is mounted behind the admin auth proxy; it assumes every caller is
// an authenticated admin.
func New(logger *slog.Logger, engine *lifecycle.Manager) *zenrpc.Server {
	rpcService := NewModerationService(engine)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register("moderation", rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "pressroom", nil))

	return rpcServer
}
