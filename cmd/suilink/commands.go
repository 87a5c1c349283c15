package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/WebHash-eth/sui-domain/internal/cid"
	"github.com/WebHash-eth/sui-domain/internal/linker"
	"github.com/WebHash-eth/sui-domain/internal/suins"
	"github.com/spf13/cobra"
)

func newDomainsCmd(a *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "domains <owner>",
		Short: "List the SuiNS domains an address owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := suins.NewResolver(newRPCClient(a.cfg, a.logger), a.cfg.Chain, a.cfg.Sui.Network.String(), a.logger)
			domains, err := resolver.FetchDomains(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), linker.FilterDomains(domains, query))
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive filter on the domain name")
	return cmd
}

type cidReport struct {
	CID   string    `json:"cid"`
	Valid bool      `json:"valid"`
	Shape cid.Shape `json:"shape,omitempty"`
	Info  *cid.Info `json:"parsed,omitempty"`
	Error string    `json:"parse_error,omitempty"`
}

func newCheckCIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-cid <cid>",
		Short: "Report whether a string is accepted as an IPFS CID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := cidReport{CID: args[0], Shape: cid.Classify(args[0])}
			report.Valid = report.Shape != cid.ShapeNone
			if info, err := cid.Inspect(args[0]); err != nil {
				report.Error = err.Error()
			} else {
				report.Info = info
			}
			if err := printJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if !report.Valid {
				return fmt.Errorf("%s", linker.MsgInvalidCID)
			}
			return nil
		},
	}
}

func newPayloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "payload <domain-object-id> <cid>",
		Short: "Print the unsigned record update transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cid.IsValid(args[1]) {
				return fmt.Errorf("%s", linker.MsgInvalidCID)
			}
			tx, err := suins.BuildRecordUpdate(a.cfg.Chain, args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tx)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
