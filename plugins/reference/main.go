package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"moonlight/internal/modules/notify/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *rpc.Empty) (*rpc.Metadata, error) {
	return &rpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"notify"},
	}, nil
}

// Notify shells out to notify-send when the desktop has it, otherwise
// prints to stderr so the message still lands somewhere visible.
func (s *server) Notify(_ context.Context, in *rpc.NotifyRequest) (*rpc.NotifyResponse, error) {
	if path, err := exec.LookPath("notify-send"); err == nil {
		if err := exec.Command(path, in.Title, in.Body).Run(); err != nil {
			return nil, fmt.Errorf("notify-send: %w", err)
		}
		return &rpc.NotifyResponse{Delivered: true}, nil
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", in.Title, in.Body)
	return &rpc.NotifyResponse{Delivered: true}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: rpc.HandshakeConfig,
		Plugins:         rpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
