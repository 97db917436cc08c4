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
	"log/slog"
	"time"

	natsclient "github.com/osapi-io/nats-client/pkg/client"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sitegate-io/sitegate/internal/admission"
	"github.com/sitegate-io/sitegate/internal/api"
	"github.com/sitegate-io/sitegate/internal/audit"
	"github.com/sitegate-io/sitegate/internal/captcha"
	"github.com/sitegate-io/sitegate/internal/cli"
	"github.com/sitegate-io/sitegate/internal/config"
	contentsqlite "github.com/sitegate-io/sitegate/internal/content/sqlite"
	"github.com/sitegate-io/sitegate/internal/messaging"
	"github.com/sitegate-io/sitegate/internal/origin"
	"github.com/sitegate-io/sitegate/internal/ratelimit"
	"github.com/sitegate-io/sitegate/internal/twofactor"
)

// shutdownTimeout bounds component teardown after the server drains.
const shutdownTimeout = 10 * time.Second

// admissionMetrics counts admission outcomes in Prometheus.
type admissionMetrics struct {
	admitted *prometheus.CounterVec
	denied   *prometheus.CounterVec
}

var _ admission.Metrics = (*admissionMetrics)(nil)

func newAdmissionMetrics() *admissionMetrics {
	return &admissionMetrics{
		admitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sitegate_admission_admitted_total",
			Help: "Requests admitted by the admission pipeline.",
		}, []string{"category"}),
		denied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sitegate_admission_denied_total",
			Help: "Requests denied by the admission pipeline.",
		}, []string{"category", "reason"}),
	}
}

func (m *admissionMetrics) Admitted(
	category string,
) {
	m.admitted.WithLabelValues(category).Inc()
}

func (m *admissionMetrics) Denied(
	category string,
	reason string,
) {
	m.denied.WithLabelValues(category, reason).Inc()
}

// apiBundle holds the long-lived components created by setupAPIServer so the
// start commands can shut them down after the server drains.
type apiBundle struct {
	nc               messaging.NATSClient
	auditLogger      *audit.Logger
	sweeper          *ratelimit.Sweeper
	twoFactorSweeper *twofactor.Sweeper
	contentStore     *contentsqlite.Store
}

// shutdown stops the background components in reverse dependency order.
func (b *apiBundle) shutdown(
	ctx context.Context,
) {
	if b.twoFactorSweeper != nil {
		b.twoFactorSweeper.Stop(ctx)
	}
	if b.sweeper != nil {
		b.sweeper.Stop(ctx)
	}
	if b.auditLogger != nil {
		b.auditLogger.Stop(ctx)
	}
	if b.contentStore != nil {
		_ = b.contentStore.Close()
	}
	if b.nc != nil {
		cli.CloseNATSClient(b.nc)
	}
}

// setupAPIServer builds the content store, audit pipeline, rate limiter,
// and admission guards, then creates the API server with all of them wired.
// It is used by the standalone API server start and combined start commands.
func setupAPIServer(
	ctx context.Context,
	log *slog.Logger,
) (*api.Server, *apiBundle) {
	contentStore, err := contentsqlite.Open(appConfig.Content.DatabasePath)
	if err != nil {
		cli.LogFatal(log, "failed to open content database", err,
			"path", appConfig.Content.DatabasePath)
	}

	auditStore, nc := createAuditStore(ctx, log)

	auditOpts := []audit.LoggerOption{}
	if d, derr := time.ParseDuration(appConfig.Audit.FlushInterval); derr == nil && d > 0 {
		auditOpts = append(auditOpts, audit.WithFlushInterval(d))
	}
	if appConfig.Audit.BufferSize > 0 {
		auditOpts = append(auditOpts, audit.WithBufferSize(appConfig.Audit.BufferSize))
	}
	auditLogger := audit.NewLogger(log, auditStore, auditOpts...)
	auditLogger.Start()

	tracker := audit.NewLoginTracker(auditLogger)

	limitStore := ratelimit.NewMemoryStore()
	limiter := ratelimit.New(log, limitStore, buildRateLimitRules(appConfig.RateLimit.Categories))

	schedule := appConfig.RateLimit.SweepSchedule
	if schedule == "" {
		schedule = ratelimit.DefaultSweepSchedule
	}
	sweeper, err := ratelimit.NewSweeper(log, limitStore, schedule)
	if err != nil {
		cli.LogFatal(log, "failed to create rate limit sweeper", err,
			"schedule", schedule)
	}
	sweeper.Start()

	pipeline := admission.New(log, limiter,
		admission.WithAlerts(auditLogger),
		admission.WithMetrics(newAdmissionMetrics()),
		admission.WithAdminAllowList(appConfig.API.Server.Security.AdminAllowList),
	)

	verifier := captcha.New(log, appConfig.Turnstile.Secret, appConfig.Turnstile.FailOpen)

	twoFactorOpts := []twofactor.Option{}
	if d, derr := time.ParseDuration(appConfig.TwoFactor.TTL); derr == nil && d > 0 {
		twoFactorOpts = append(twoFactorOpts, twofactor.WithTTL(d))
	}
	twoFactor := twofactor.New(log,
		twofactor.NewMemoryStore(),
		twofactor.NewSlogSender(log),
		twoFactorOpts...,
	)

	twoFactorSweeper, err := twofactor.NewSweeper(log, twoFactor, twofactor.DefaultSweepSchedule)
	if err != nil {
		cli.LogFatal(log, "failed to create two-factor sweeper", err)
	}
	twoFactorSweeper.Start()

	sm := api.New(appConfig, log,
		api.WithContentStore(contentStore),
		api.WithAuditLogger(auditLogger),
		api.WithAuditStore(auditStore),
		api.WithLoginTracker(tracker),
		api.WithCaptcha(verifier),
		api.WithOrigin(origin.NewValidator(appConfig.API.Server.Security.AllowedOrigins)),
		api.WithTwoFactor(twoFactor),
		api.WithAuthenticator(api.NewStaticAuthenticator(
			appConfig.TwoFactor.AdminEmail,
			appConfig.TwoFactor.AdminPasswordHash,
		)),
		api.WithAdmission(pipeline),
	)

	b := &apiBundle{
		nc:               nc,
		auditLogger:      auditLogger,
		sweeper:          sweeper,
		twoFactorSweeper: twoFactorSweeper,
		contentStore:     contentStore,
	}

	return sm, b
}

// createAuditStore returns the audit store backing the security log. With a
// KV bucket configured it connects to NATS and stores entries in JetStream,
// otherwise entries go to the structured log only.
func createAuditStore(
	ctx context.Context,
	log *slog.Logger,
) (audit.Store, messaging.NATSClient) {
	if appConfig.NATS.Audit.Bucket == "" {
		return audit.NewSlogStore(log), nil
	}

	connCfg := appConfig.API.Server.NATS

	var nc messaging.NATSClient = natsclient.New(log, &natsclient.Options{
		Host: connCfg.Host,
		Port: connCfg.Port,
		Auth: cli.BuildNATSAuthOptions(connCfg.Auth),
		Name: connCfg.ClientName,
	})

	if err := nc.Connect(); err != nil {
		cli.LogFatal(log, "failed to connect to NATS", err)
	}

	auditKVConfig := cli.BuildAuditKVConfig(connCfg.Namespace, appConfig.NATS.Audit)
	auditKV, err := nc.CreateOrUpdateKVBucketWithConfig(ctx, auditKVConfig)
	if err != nil {
		cli.LogFatal(log, "failed to create audit KV bucket", err)
	}

	return audit.NewKVStore(log, auditKV), nc
}

// buildRateLimitRules converts configured category overrides into limiter
// rules. Overrides with a missing or unparseable window are ignored so a bad
// value cannot zero out a category's budget.
func buildRateLimitRules(
	categories map[string]config.RateLimitRule,
) map[ratelimit.Category]ratelimit.Rule {
	rules := make(map[ratelimit.Category]ratelimit.Rule, len(categories))

	for name, rc := range categories {
		window, err := time.ParseDuration(rc.Window)
		if err != nil || window <= 0 {
			continue
		}

		rule := ratelimit.Rule{
			MaxRequests: rc.MaxRequests,
			Window:      window,
		}
		if rc.BlockDuration != "" {
			if d, err := time.ParseDuration(rc.BlockDuration); err == nil {
				rule.BlockDuration = d
			}
		}
		rules[ratelimit.Category(name)] = rule
	}

	return rules
}
