package linker

import (
	"net/url"
	"strings"

	"github.com/WebHash-eth/sui-domain/internal/domain/model"
)

const (
	explorerTxBase = "https://suivision.xyz/txblock/"
	siteHostSuffix = ".sui.id"
)

// Confirmation is what the user sees after a successful update.
type Confirmation struct {
	Domain      string `json:"domain"`
	TxDigest    string `json:"tx_digest"`
	ExplorerURL string `json:"explorer_url"`
	SiteURL     string `json:"site_url,omitempty"`
}

func ExplorerURL(digest string, network model.Network) string {
	return explorerTxBase + url.PathEscape(digest) + "?network=" + url.QueryEscape(network.String())
}

// SiteURL returns the sui.id gateway address for a domain, or "" when the
// record carries no name.
func SiteURL(domain model.DomainRecord) string {
	name := domain.BareName()
	if name == "" {
		return ""
	}
	return "https://" + name + siteHostSuffix
}

// FilterDomains keeps the domains whose display name contains query, ignoring
// case. An empty query keeps everything. Order is preserved.
func FilterDomains(domains []model.DomainRecord, query string) []model.DomainRecord {
	out := make([]model.DomainRecord, 0, len(domains))
	if query == "" {
		return append(out, domains...)
	}
	q := strings.ToLower(query)
	for _, d := range domains {
		if strings.Contains(strings.ToLower(d.DisplayName), q) {
			out = append(out, d)
		}
	}
	return out
}
