package suins

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/WebHash-eth/sui-domain/internal/domain/model"
	"github.com/WebHash-eth/sui-domain/internal/metrics"
	"github.com/WebHash-eth/sui-domain/internal/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const (
	outcomeSuccess      = "success"
	outcomeFailure      = "failure"
	outcomeAborted      = "aborted"
	outcomeMissingInput = "missing_input"

	fallbackFailureMessage = "transaction failed"
)

// Submitter writes a CID into a domain's content_hash record.
type Submitter struct {
	cfg     ChainConfig
	network string
	logger  *slog.Logger
}

// NewSubmitter returns a Submitter for the deployment described by cfg.
func NewSubmitter(cfg ChainConfig, network string, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{
		cfg:     cfg,
		network: network,
		logger:  logger.With("component", "submitter"),
	}
}

// UpdateDomainRecord builds the set_user_data call for domain and hands it to
// signer. Every failure is folded into the returned result; the cid is
// expected to be validated by the caller. Not idempotent: each successful
// call produces a new transaction.
func (s *Submitter) UpdateDomainRecord(ctx context.Context, domain model.DomainRecord, cid string, signer Signer) (result model.TransactionResult) {
	submissionID := uuid.NewString()
	log := s.logger.With("submission_id", submissionID, "object_id", domain.ObjectID)

	if domain.ObjectID == "" {
		metrics.SubmissionsTotal.WithLabelValues(s.network, outcomeMissingInput).Inc()
		log.Info("record update rejected", "error", ErrMissingObjectID)
		return model.Failed(ErrMissingObjectID.Error())
	}
	if signer == nil {
		metrics.SubmissionsTotal.WithLabelValues(s.network, outcomeMissingInput).Inc()
		return model.Failed("signer is required")
	}

	ctx, span := tracing.Tracer("suins").Start(ctx, "submitter.updateDomainRecord",
		otelTrace.WithAttributes(
			attribute.String("network", s.network),
			attribute.String("object_id", domain.ObjectID),
			attribute.String("submission_id", submissionID),
		),
	)
	defer span.End()

	start := time.Now()
	aborted := false
	defer func() {
		if r := recover(); r != nil {
			log.Error("signer panicked", "panic", r)
			result = model.Failed(fmt.Sprint(r))
		}
		outcome := outcomeSuccess
		switch {
		case aborted:
			outcome = outcomeAborted
		case !result.Success:
			outcome = outcomeFailure
		}
		if !result.Success {
			span.SetStatus(codes.Error, result.Error)
		}
		metrics.SubmissionsTotal.WithLabelValues(s.network, outcome).Inc()
		metrics.SubmissionLatency.WithLabelValues(s.network).Observe(time.Since(start).Seconds())
	}()

	tx, err := BuildRecordUpdate(s.cfg, domain.ObjectID, cid)
	if err != nil {
		span.RecordError(err)
		return model.Failed(failureMessage(err))
	}

	resp, err := signer.SignAndExecute(ctx, ExecuteRequest{
		Transaction: tx,
		Options:     ExecuteOptions{ShowEffects: true},
	})
	if err != nil {
		span.RecordError(err)
		log.Warn("sign and execute failed", "error", err)
		return model.Failed(failureMessage(err))
	}
	if resp == nil || resp.Digest == "" {
		log.Warn("signer returned no digest")
		return model.Failed("signer returned no transaction digest")
	}

	span.SetAttributes(attribute.String("tx_digest", resp.Digest))
	if resp.Effects != nil && resp.Effects.Status == string(model.ExecutionStatusFailure) {
		aborted = true
		msg := fmt.Sprintf("transaction %s failed", resp.Digest)
		if resp.Effects.Error != "" {
			msg += ": " + resp.Effects.Error
		}
		log.Warn("transaction aborted on chain", "tx_digest", resp.Digest, "error", resp.Effects.Error)
		return model.Failed(msg)
	}

	log.Info("domain record updated",
		"domain", domain.DisplayName,
		"tx_digest", resp.Digest,
		"elapsed", time.Since(start),
	)
	return model.Succeeded(resp.Digest)
}

// failureMessage keeps the signer's own wording so callers can show it as is.
func failureMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackFailureMessage
}
