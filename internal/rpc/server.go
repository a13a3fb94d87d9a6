package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/municipal-portal/internal/cms"
)

func New(logger *slog.Logger, m *cms.Manager) *zenrpc.Server {
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true, AllowCORS: true})
	rpcServer.Register("public", NewPublicService(m))
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "municipal-portal", nil))

	return rpcServer
}
