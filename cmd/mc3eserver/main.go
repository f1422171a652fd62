// Command mc3eserver is a demonstration MC protocol server backed by the
// in-memory refserver.MemServer. It exists to exercise mcp.ListenAndServe end to
// end, not as a production PLC simulator (spec.md §1 and §4.7 treat demonstration
// servers as an external collaborator, outside the core library).
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"

	"github.com/mc3e/go-mcprotocol/mcp"
	"github.com/mc3e/go-mcprotocol/mcp/refserver"
	"go.uber.org/zap"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:5007", "address to listen on")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer logger.Sync()

	l, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Fatal("listen failed", zap.Error(err))
	}
	logger.Info("listening", zap.String("addr", *addr))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	svc := refserver.New()
	if err := mcp.ListenAndServe(ctx, l, svc, mcp.WithServerLogger(logger)); err != nil {
		logger.Error("server exited", zap.Error(err))
	}
}
