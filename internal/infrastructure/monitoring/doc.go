/*
Package monitoring records what each tccm invocation did.

# Overview

A CLI process is too short-lived to be scraped, so metrics live on a private
Prometheus registry and are written to a file in the text exposition format
when the command finishes. Pointing TCCM_METRICS_FILE at the node_exporter
textfile collector directory makes publish and get runs in CI visible to
Prometheus.

# Metrics

- tccm_operations_total{command,result}
- tccm_operation_duration_seconds{command}
- tccm_transfer_bytes_total{direction}
- tccm_archive_entries

# Usage

	metrics := monitoring.NewMetrics()

	timer := monitoring.NewTimer(metrics, "publish")
	err := svc.Publish(ctx)
	timer.Stop(err)

	if err := metrics.WriteTextfile(cfg.Metrics.File); err != nil {
		logger.Warn("failed to write metrics", zap.Error(err))
	}
*/
package monitoring
