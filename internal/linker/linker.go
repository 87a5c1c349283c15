// Package linker runs the link flow: check the input, confirm the domain
// belongs to the wallet, submit the record update and build the confirmation.
package linker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/WebHash-eth/sui-domain/internal/chain/sui/ptb"
	"github.com/WebHash-eth/sui-domain/internal/cid"
	"github.com/WebHash-eth/sui-domain/internal/domain/model"
	"github.com/WebHash-eth/sui-domain/internal/suins"
)

const (
	MsgSelectDomain  = "Please select a domain."
	MsgEnterCID      = "Please enter a CID."
	MsgInvalidCID    = "Invalid IPFS CID format."
	MsgCIDReadOnly   = "This link fixes the CID; it cannot be changed."
	MsgNotOwned      = "The selected domain is not owned by this wallet."
	MsgConnectWallet = "Please connect a wallet."
	MsgLoadDomains   = "Could not load your domains."
	MsgUpdateFailed  = "Failed to update domain"
)

type DomainSource interface {
	FetchDomains(ctx context.Context, owner string) ([]model.DomainRecord, error)
}

type RecordUpdater interface {
	UpdateDomainRecord(ctx context.Context, domain model.DomainRecord, cid string, signer suins.Signer) model.TransactionResult
}

// senderBound is implemented by signers that always sign as one address.
type senderBound interface {
	Sender() string
}

type LinkRequest struct {
	Owner          string `json:"owner"`
	DomainObjectID string `json:"domain_object_id"`
	CID            string `json:"cid"`
}

type Linker struct {
	domains DomainSource
	updater RecordUpdater
	signer  suins.Signer
	session Session
	network model.Network
	logger  *slog.Logger
}

func New(domains DomainSource, updater RecordUpdater, signer suins.Signer, session Session, network model.Network, logger *slog.Logger) *Linker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Linker{
		domains: domains,
		updater: updater,
		signer:  signer,
		session: session,
		network: network,
		logger:  logger.With("component", "linker"),
	}
}

func (l *Linker) Session() Session {
	return l.session
}

// ListDomains returns the owner's domains narrowed by query.
func (l *Linker) ListDomains(ctx context.Context, owner, query string) ([]model.DomainRecord, error) {
	domains, err := l.domains.FetchDomains(ctx, owner)
	if err != nil {
		return []model.DomainRecord{}, err
	}
	return FilterDomains(domains, query), nil
}

// Link points the selected domain at the CID. Input checks run in the page's
// order (domain, CID presence, CID format) before any network call.
func (l *Linker) Link(ctx context.Context, req LinkRequest) (*Confirmation, error) {
	if req.DomainObjectID == "" {
		return nil, &suins.Error{Kind: suins.KindMissingInput, Op: "link", Err: suins.ErrMissingDomain}
	}
	value, ok := l.session.ResolveCID(req.CID)
	if !ok {
		return nil, &suins.Error{Kind: suins.KindValidation, Op: "link", Err: suins.ErrCIDReadOnly}
	}
	if value == "" {
		return nil, &suins.Error{Kind: suins.KindMissingInput, Op: "link", Err: suins.ErrMissingCID}
	}
	if !cid.IsValid(value) {
		return nil, &suins.Error{Kind: suins.KindValidation, Op: "link", Err: suins.ErrInvalidCID}
	}

	owner, err := l.owner(req.Owner)
	if err != nil {
		return nil, err
	}
	owned, err := l.domains.FetchDomains(ctx, owner)
	if err != nil {
		return nil, err
	}
	domain, found := findDomain(owned, req.DomainObjectID)
	if !found {
		return nil, &suins.Error{Kind: suins.KindMissingInput, Op: "link", Err: suins.ErrDomainNotOwned}
	}

	result := l.updater.UpdateDomainRecord(ctx, domain, value, l.signer)
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = MsgUpdateFailed
		}
		l.logger.Info("link failed", "domain", domain.DisplayName, "error", msg)
		return nil, &suins.Error{Kind: suins.KindSubmission, Op: "link", Err: errors.New(msg)}
	}

	l.logger.Info("domain linked", "domain", domain.DisplayName, "tx_digest", result.TxDigest)
	return &Confirmation{
		Domain:      domain.DisplayName,
		TxDigest:    result.TxDigest,
		ExplorerURL: ExplorerURL(result.TxDigest, l.network),
		SiteURL:     SiteURL(domain),
	}, nil
}

// owner returns the address whose domains may be linked. A signer bound to
// one sender can only update that sender's domains, so any other owner is
// refused and an empty one defaults to the sender.
func (l *Linker) owner(requested string) (string, error) {
	bound, ok := l.signer.(senderBound)
	if !ok || bound.Sender() == "" {
		return requested, nil
	}
	sender := bound.Sender()
	if requested == "" {
		return sender, nil
	}
	want, err := ptb.NormalizeObjectID(sender)
	if err != nil {
		return "", &suins.Error{Kind: suins.KindMissingInput, Op: "link", Err: suins.ErrDomainNotOwned}
	}
	if got, err := ptb.NormalizeObjectID(requested); err != nil || got != want {
		l.logger.Warn("owner does not match signer", "owner", requested, "sender", sender)
		return "", &suins.Error{Kind: suins.KindMissingInput, Op: "link", Err: suins.ErrDomainNotOwned}
	}
	return requested, nil
}

func findDomain(domains []model.DomainRecord, objectID string) (model.DomainRecord, bool) {
	for _, d := range domains {
		if d.ObjectID == objectID {
			return d, true
		}
	}
	return model.DomainRecord{}, false
}

// Message maps a Link or ListDomains error to the text shown to the user.
// Submission failures keep the wallet's own wording.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, suins.ErrMissingDomain):
		return MsgSelectDomain
	case errors.Is(err, suins.ErrMissingCID):
		return MsgEnterCID
	case errors.Is(err, suins.ErrInvalidCID):
		return MsgInvalidCID
	case errors.Is(err, suins.ErrCIDReadOnly):
		return MsgCIDReadOnly
	case errors.Is(err, suins.ErrDomainNotOwned):
		return MsgNotOwned
	case errors.Is(err, suins.ErrMissingOwner):
		return MsgConnectWallet
	}

	var se *suins.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case suins.KindResolution:
			return MsgLoadDomains
		case suins.KindSubmission:
			if se.Err != nil && se.Err.Error() != "" {
				return se.Err.Error()
			}
		}
	}
	return MsgUpdateFailed
}
