// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"

	"github.com/sitegate-io/sitegate/internal/cli"
)

// natsReadyTimeout bounds how long the embedded server may take to accept
// connections before startup is treated as failed.
const natsReadyTimeout = 10 * time.Second

// natsLifecycle adapts the embedded NATS server to the Lifecycle interface.
// Start is a no-op because setupNATSServer starts the server eagerly so the
// API server can connect during its own setup.
type natsLifecycle struct {
	server *natsserver.Server
}

var _ cli.Lifecycle = (*natsLifecycle)(nil)

func (n *natsLifecycle) Start() {}

func (n *natsLifecycle) Stop(
	_ context.Context,
) {
	n.server.Shutdown()
	n.server.WaitForShutdown()
}

// setupNATSServer starts the embedded NATS server with JetStream enabled
// and blocks until it accepts connections.
func setupNATSServer(
	_ context.Context,
	log *slog.Logger,
) *natsserver.Server {
	serverCfg := appConfig.NATS.Server

	opts := &natsserver.Options{
		Host:      serverCfg.Host,
		Port:      serverCfg.Port,
		JetStream: true,
		StoreDir:  serverCfg.StoreDir,
	}

	switch serverCfg.Auth.Type {
	case "user_pass":
		users := make([]*natsserver.User, 0, len(serverCfg.Auth.Users))
		for _, u := range serverCfg.Auth.Users {
			users = append(users, &natsserver.User{
				Username: u.Username,
				Password: u.Password,
			})
		}
		opts.Users = users
	case "nkey":
		nkeys := make([]*natsserver.NkeyUser, 0, len(serverCfg.Auth.NKeys))
		for _, k := range serverCfg.Auth.NKeys {
			nkeys = append(nkeys, &natsserver.NkeyUser{Nkey: k})
		}
		opts.Nkeys = nkeys
	}

	s, err := natsserver.NewServer(opts)
	if err != nil {
		cli.LogFatal(log, "failed to create nats server", err)
	}

	go s.Start()

	if !s.ReadyForConnections(natsReadyTimeout) {
		cli.LogFatal(log, "nats server failed to start",
			fmt.Errorf("not ready within %s", natsReadyTimeout))
	}

	log.Info("nats server ready",
		slog.String("host", serverCfg.Host),
		slog.Int("port", serverCfg.Port),
	)

	return s
}
