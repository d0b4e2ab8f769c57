// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry holds the OpenTelemetry instrumentation of lint runs and
// the Prometheus textfile export of a finished report.
//
// No exporter is configured here; spans and instruments go to the global
// providers, which are no-ops unless the embedding program installs real ones.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "doclint.runner"

// Package-level tracer and meter for lint runs.
var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)
)

var (
	ruleDuration metric.Float64Histogram
	issuesTotal  metric.Int64Counter
	runsTotal    metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		ruleDuration, err = meter.Float64Histogram(
			"doclint_rule_duration_seconds",
			metric.WithDescription("Duration of a single rule run"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		issuesTotal, err = meter.Int64Counter(
			"doclint_issues_total",
			metric.WithDescription("Issues reported, by rule and severity"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runsTotal, err = meter.Int64Counter(
			"doclint_runs_total",
			metric.WithDescription("Completed lint runs, by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// StartLintSpan starts the span covering one lint run.
func StartLintSpan(ctx context.Context, entry, docsDir string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Linter."+entry,
		trace.WithAttributes(attribute.String("doclint.docs_dir", docsDir)),
	)
}

// EndLintSpan records the outcome of a lint run and ends its span.
func EndLintSpan(span trace.Span, filesChecked int, passed bool, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.Int("doclint.files_checked", filesChecked),
			attribute.Bool("doclint.passed", passed),
		)
	}
	span.End()
}

// StartRuleSpan starts a child span for one rule.
func StartRuleSpan(ctx context.Context, rule, severity string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Rule."+rule,
		trace.WithAttributes(
			attribute.String("doclint.rule", rule),
			attribute.String("doclint.severity", severity),
		),
	)
}

// EndRuleSpan records the rule outcome and ends its span.
func EndRuleSpan(span trace.Span, issues int, err error) {
	span.SetAttributes(attribute.Int("doclint.issue_count", issues))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// RecordRule records duration and issue count for one rule run.
func RecordRule(ctx context.Context, rule, severity string, d time.Duration, issues int, failed bool) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("rule", rule),
		attribute.String("severity", severity),
	)
	ruleDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("rule", rule),
		attribute.Bool("rule_error", failed),
	))
	issuesTotal.Add(ctx, int64(issues), attrs)
}

// RecordRun counts a completed lint run.
func RecordRun(ctx context.Context, entry string, passed bool) {
	if err := initMetrics(); err != nil {
		return
	}
	runsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entry", entry),
		attribute.Bool("passed", passed),
	))
}
