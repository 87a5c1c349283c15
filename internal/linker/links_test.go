package linker

import (
	"testing"

	"github.com/WebHash-eth/sui-domain/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestExplorerURL(t *testing.T) {
	assert.Equal(t, "https://suivision.xyz/txblock/9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin?network=mainnet",
		ExplorerURL("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin", model.NetworkMainnet))
	assert.Equal(t, "https://suivision.xyz/txblock/abc?network=testnet", ExplorerURL("abc", model.NetworkTestnet))
}

func TestSiteURL(t *testing.T) {
	assert.Equal(t, "https://alice.sui.id", SiteURL(model.DomainRecord{DisplayName: "alice.sui"}))
	assert.Equal(t, "https://sub.alice.sui.id", SiteURL(model.DomainRecord{DisplayName: "sub.alice.sui"}))
	assert.Equal(t, "https://bare.sui.id", SiteURL(model.DomainRecord{DisplayName: "bare"}))
	assert.Equal(t, "", SiteURL(model.DomainRecord{}))
}

func TestFilterDomains(t *testing.T) {
	domains := []model.DomainRecord{
		{DisplayName: "Alice.sui", ObjectID: "1"},
		{DisplayName: "bob.sui", ObjectID: "2"},
		{DisplayName: "malice.sui", ObjectID: "3"},
	}

	got := FilterDomains(domains, "alice")
	assert.Equal(t, []model.DomainRecord{domains[0], domains[2]}, got)

	assert.Equal(t, domains, FilterDomains(domains, ""))

	none := FilterDomains(domains, "zzz")
	assert.NotNil(t, none)
	assert.Empty(t, none)

	assert.NotNil(t, FilterDomains(nil, ""))
}

func TestSession(t *testing.T) {
	open := Session{}
	assert.False(t, open.ReadOnly())
	v, ok := open.ResolveCID("anything")
	assert.True(t, ok)
	assert.Equal(t, "anything", v)

	fixed := Session{PrefillCID: "Qmfixed"}
	assert.True(t, fixed.ReadOnly())
	v, ok = fixed.ResolveCID("")
	assert.True(t, ok)
	assert.Equal(t, "Qmfixed", v)
	_, ok = fixed.ResolveCID("Qmother")
	assert.False(t, ok)
}
