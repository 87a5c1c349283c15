package linker

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	rpcmocks "github.com/WebHash-eth/sui-domain/internal/chain/sui/rpc/mocks"
	"github.com/WebHash-eth/sui-domain/internal/domain/model"
	walletsigner "github.com/WebHash-eth/sui-domain/internal/signer"
	"github.com/WebHash-eth/sui-domain/internal/suins"
	"github.com/WebHash-eth/sui-domain/internal/suins/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	owner    = "0xowner"
	aliceID  = "0xa11ce"
	validCID = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
)

type fakeDomains struct {
	records   []model.DomainRecord
	err       error
	calls     int
	lastOwner string
}

func (f *fakeDomains) FetchDomains(_ context.Context, owner string) ([]model.DomainRecord, error) {
	f.calls++
	f.lastOwner = owner
	if f.err != nil {
		return []model.DomainRecord{}, f.err
	}
	return f.records, nil
}

func ownedDomains() *fakeDomains {
	return &fakeDomains{records: []model.DomainRecord{
		{DisplayName: "alice.sui", ObjectID: aliceID},
		{DisplayName: "bob.sui", ObjectID: "0xb0b"},
	}}
}

func newLinker(t *testing.T, domains DomainSource, session Session) (*Linker, *mocks.MockSigner) {
	ctrl := gomock.NewController(t)
	signer := mocks.NewMockSigner(ctrl)
	submitter := suins.NewSubmitter(suins.MainnetChainConfig(), "mainnet", slog.Default())
	return New(domains, submitter, signer, session, model.NetworkMainnet, slog.Default()), signer
}

func TestLink_Success(t *testing.T) {
	l, signer := newLinker(t, ownedDomains(), Session{})
	signer.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Return(&suins.ExecuteResponse{Digest: "abc123"}, nil)

	conf, err := l.Link(context.Background(), LinkRequest{Owner: owner, DomainObjectID: aliceID, CID: validCID})
	require.NoError(t, err)
	assert.Equal(t, &Confirmation{
		Domain:      "alice.sui",
		TxDigest:    "abc123",
		ExplorerURL: "https://suivision.xyz/txblock/abc123?network=mainnet",
		SiteURL:     "https://alice.sui.id",
	}, conf)
}

func TestLink_InputChecksRunBeforeNetwork(t *testing.T) {
	tests := []struct {
		name    string
		req     LinkRequest
		wantErr error
		wantMsg string
	}{
		{"no domain", LinkRequest{Owner: owner, CID: validCID}, suins.ErrMissingDomain, MsgSelectDomain},
		{"no domain and no cid", LinkRequest{Owner: owner}, suins.ErrMissingDomain, MsgSelectDomain},
		{"no cid", LinkRequest{Owner: owner, DomainObjectID: aliceID}, suins.ErrMissingCID, MsgEnterCID},
		{"malformed cid", LinkRequest{Owner: owner, DomainObjectID: aliceID, CID: "not-a-cid"}, suins.ErrInvalidCID, MsgInvalidCID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domains := ownedDomains()
			l, signer := newLinker(t, domains, Session{})
			signer.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Times(0)

			conf, err := l.Link(context.Background(), tt.req)
			assert.Nil(t, conf)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMsg, Message(err))
			assert.Zero(t, domains.calls)
		})
	}
}

func TestLink_DomainNotOwned(t *testing.T) {
	l, signer := newLinker(t, ownedDomains(), Session{})
	signer.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Times(0)

	_, err := l.Link(context.Background(), LinkRequest{Owner: owner, DomainObjectID: "0xstranger", CID: validCID})
	assert.ErrorIs(t, err, suins.ErrDomainNotOwned)
	assert.Equal(t, MsgNotOwned, Message(err))
}

func TestLink_ResolutionFailure(t *testing.T) {
	domains := &fakeDomains{err: &suins.Error{Kind: suins.KindResolution, Op: "fetch domains", Err: errors.New("connection refused")}}
	l, signer := newLinker(t, domains, Session{})
	signer.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Times(0)

	_, err := l.Link(context.Background(), LinkRequest{Owner: owner, DomainObjectID: aliceID, CID: validCID})
	require.Error(t, err)
	assert.Equal(t, suins.KindResolution, suins.KindOf(err))
	assert.Equal(t, MsgLoadDomains, Message(err))
}

func TestLink_SignerRejectionKeepsWording(t *testing.T) {
	l, signer := newLinker(t, ownedDomains(), Session{})
	signer.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Return(nil, errors.New("user rejected"))

	_, err := l.Link(context.Background(), LinkRequest{Owner: owner, DomainObjectID: aliceID, CID: validCID})
	require.Error(t, err)
	assert.Equal(t, suins.KindSubmission, suins.KindOf(err))
	assert.Equal(t, "user rejected", Message(err))
}

func TestLink_PrefilledSession(t *testing.T) {
	session := Session{PrefillCID: validCID}

	t.Run("empty submission uses prefill", func(t *testing.T) {
		l, signer := newLinker(t, ownedDomains(), session)
		signer.EXPECT().
			SignAndExecute(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req suins.ExecuteRequest) (*suins.ExecuteResponse, error) {
				args, err := req.Transaction.CallInputs(0)
				require.NoError(t, err)
				v, err := args[3].PureString()
				require.NoError(t, err)
				assert.Equal(t, validCID, v)
				return &suins.ExecuteResponse{Digest: "d1"}, nil
			})

		conf, err := l.Link(context.Background(), LinkRequest{Owner: owner, DomainObjectID: aliceID})
		require.NoError(t, err)
		assert.Equal(t, "d1", conf.TxDigest)
	})

	t.Run("different cid is refused", func(t *testing.T) {
		l, signer := newLinker(t, ownedDomains(), session)
		signer.EXPECT().SignAndExecute(gomock.Any(), gomock.Any()).Times(0)

		_, err := l.Link(context.Background(), LinkRequest{
			Owner:          owner,
			DomainObjectID: aliceID,
			CID:            "bafkreigh2akiscaildcqabsyg3dfr6chu3fgpregiymsck7e7aqa4s52zy",
		})
		assert.ErrorIs(t, err, suins.ErrCIDReadOnly)
		assert.Equal(t, MsgCIDReadOnly, Message(err))
	})
}

func TestListDomains_Filters(t *testing.T) {
	l, _ := newLinker(t, ownedDomains(), Session{})

	all, err := l.ListDomains(context.Background(), owner, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := l.ListDomains(context.Background(), owner, "ALI")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice.sui", got[0].DisplayName)
}

func TestListDomains_Error(t *testing.T) {
	l, _ := newLinker(t, &fakeDomains{err: errors.New("boom")}, Session{})
	got, err := l.ListDomains(context.Background(), owner, "")
	assert.Error(t, err)
	assert.NotNil(t, got)
}

func TestMessage_Fallbacks(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, MsgUpdateFailed, Message(errors.New("something odd")))
	assert.Equal(t, MsgConnectWallet, Message(&suins.Error{Kind: suins.KindMissingInput, Err: suins.ErrMissingOwner}))
}

func TestLink_ExecutorSignsOnlyForItsSender(t *testing.T) {
	const sender = "0x00000000000000000000000000000000000000000000000000000000000000aa"

	newExecutorLinker := func(t *testing.T, domains DomainSource) (*Linker, *rpcmocks.MockRPCClient) {
		client := rpcmocks.NewMockRPCClient(gomock.NewController(t))
		auth := walletsigner.NewRemoteAuthorizer("http://127.0.0.1:1/sign", time.Second)
		exec := walletsigner.NewExecutor(client, auth, sender, 0, slog.Default())
		submitter := suins.NewSubmitter(suins.MainnetChainConfig(), "mainnet", slog.Default())
		return New(domains, submitter, exec, Session{}, model.NetworkMainnet, slog.Default()), client
	}

	t.Run("other owner is refused before any call", func(t *testing.T) {
		domains := ownedDomains()
		l, client := newExecutorLinker(t, domains)
		client.EXPECT().UnsafeMoveCall(gomock.Any(), gomock.Any()).Times(0)

		_, err := l.Link(context.Background(), LinkRequest{Owner: "0xb0b", DomainObjectID: aliceID, CID: validCID})
		require.Error(t, err)
		assert.ErrorIs(t, err, suins.ErrDomainNotOwned)
		assert.Equal(t, MsgNotOwned, Message(err))
		assert.Zero(t, domains.calls)
	})

	t.Run("sender in short form is accepted", func(t *testing.T) {
		domains := ownedDomains()
		l, client := newExecutorLinker(t, domains)
		client.EXPECT().
			UnsafeMoveCall(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("node unavailable"))

		_, err := l.Link(context.Background(), LinkRequest{Owner: "0xAA", DomainObjectID: aliceID, CID: validCID})
		require.Error(t, err)
		assert.Equal(t, suins.KindSubmission, suins.KindOf(err))
		assert.Equal(t, "0xAA", domains.lastOwner)
	})

	t.Run("empty owner defaults to sender", func(t *testing.T) {
		domains := ownedDomains()
		l, client := newExecutorLinker(t, domains)
		client.EXPECT().
			UnsafeMoveCall(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("node unavailable"))

		_, err := l.Link(context.Background(), LinkRequest{DomainObjectID: aliceID, CID: validCID})
		require.Error(t, err)
		assert.Equal(t, sender, domains.lastOwner)
	})
}
