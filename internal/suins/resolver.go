package suins

import (
	"context"
	"log/slog"
	"time"

	"github.com/WebHash-eth/sui-domain/internal/chain/sui/rpc"
	"github.com/WebHash-eth/sui-domain/internal/domain/model"
	"github.com/WebHash-eth/sui-domain/internal/metrics"
	"github.com/WebHash-eth/sui-domain/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const domainNameField = "domain_name"

// Resolver lists the SuiNS registrations owned by an address.
type Resolver struct {
	client  rpc.RPCClient
	cfg     ChainConfig
	network string
	logger  *slog.Logger
}

// NewResolver returns a Resolver querying client for cfg.DomainType objects.
func NewResolver(client rpc.RPCClient, cfg ChainConfig, network string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		client:  client,
		cfg:     cfg,
		network: network,
		logger:  logger.With("component", "resolver"),
	}
}

// FetchDomains issues one owned-objects query filtered to the registration
// type. Records come back in service order; objects without an id are
// dropped. The slice is never nil. Query failures are returned as a
// resolution *Error rather than swallowed.
func (r *Resolver) FetchDomains(ctx context.Context, owner string) ([]model.DomainRecord, error) {
	if owner == "" {
		return []model.DomainRecord{}, newError(KindMissingInput, "fetch domains", ErrMissingOwner)
	}

	ctx, span := tracing.Tracer("suins").Start(ctx, "resolver.fetchDomains",
		otelTrace.WithAttributes(
			attribute.String("network", r.network),
			attribute.String("owner", owner),
		),
	)
	defer span.End()

	start := time.Now()
	page, err := r.client.GetOwnedObjects(ctx, owner, rpc.ObjectResponseQuery{
		Filter:  &rpc.ObjectFilter{StructType: r.cfg.DomainType},
		Options: &rpc.ObjectDataOptions{ShowContent: true, ShowDisplay: true},
	}, nil, 0)
	if err != nil {
		metrics.ResolutionErrors.WithLabelValues(r.network).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Warn("fetch domains failed", "owner", owner, "error", err)
		return []model.DomainRecord{}, newError(KindResolution, "fetch domains", err)
	}

	records, dropped := mapDomainRecords(page.Data)
	if page.HasNextPage {
		// One query per call; later pages are not followed.
		r.logger.Debug("owner has more domains than one page", "owner", owner, "returned", len(page.Data))
	}

	metrics.DomainsResolved.WithLabelValues(r.network).Add(float64(len(records)))
	if dropped > 0 {
		metrics.DomainsDropped.WithLabelValues(r.network).Add(float64(dropped))
	}
	span.SetAttributes(
		attribute.Int("domains", len(records)),
		attribute.Int("dropped", dropped),
	)
	r.logger.Debug("domains resolved",
		"owner", owner,
		"count", len(records),
		"dropped", dropped,
		"elapsed", time.Since(start),
	)
	return records, nil
}

func mapDomainRecords(objects []rpc.ObjectResponse) ([]model.DomainRecord, int) {
	records := make([]model.DomainRecord, 0, len(objects))
	dropped := 0
	for _, obj := range objects {
		rec := mapDomainRecord(obj)
		if rec.ObjectID == "" {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

func mapDomainRecord(obj rpc.ObjectResponse) model.DomainRecord {
	if obj.Data == nil {
		return model.DomainRecord{}
	}
	rec := model.DomainRecord{ObjectID: obj.Data.ObjectID}
	if obj.Data.Content == nil {
		return rec
	}
	fields := obj.Data.Content.Fields
	if name, ok := fields[domainNameField].(string); ok {
		rec.DisplayName = name
	}
	rec.Metadata = fields
	return rec
}
