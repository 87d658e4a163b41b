package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	apiclient "github.com/donaldgifford/ssello-gateway/internal/api/client"
	domain "github.com/donaldgifford/ssello-gateway/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printItemsTable(w io.Writer, items []domain.CatalogItem) error {
	tw := newTabWriter(w)
	tw.writef("ASIN\tTITLE\tBRAND\tLIST PRICE\tCATEGORY\n")
	for i := range items {
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			items[i].ASIN,
			truncate(items[i].Title, 50),
			dash(items[i].Brand),
			money(items[i].ListPrice),
			dash(items[i].Category),
		)
	}
	return tw.finish()
}

func printBuybox(w io.Writer, b *domain.BuyboxResult) error {
	tw := newTabWriter(w)
	tw.writef("ASIN:\t%s\n", b.ASIN)
	tw.writef("Buy Box:\t%s\n", money(b.BuyboxPrice))
	tw.writef("Lowest New:\t%s\n", money(b.LowestPrice))
	tw.writef("New Offers:\t%d\n", b.OffersCount)
	return tw.finish()
}

func printStatus(w io.Writer, s *apiclient.Status) error {
	tw := newTabWriter(w)
	tw.writef("Service:\t%s\n", s.Service)
	tw.writef("Version:\t%s\n", s.Version)
	tw.writef("Server Time:\t%s\n", s.Timestamp.Format(time.RFC3339))
	tw.writef("Configured:\t%v\n", s.Configured)
	tw.writef("Refresh Token:\t%v\n", s.Credentials.HasRefreshToken)
	tw.writef("LWA App ID:\t%v\n", s.Credentials.HasAppID)
	tw.writef("LWA Client Secret:\t%v\n", s.Credentials.HasClientSecret)
	tw.writef("Seller ID:\t%v\n", s.Credentials.HasSellerID)
	return tw.finish()
}

func printQuotaTable(w io.Writer, ops []apiclient.OperationQuota) error {
	tw := newTabWriter(w)
	tw.writef("OPERATION\tUSED\tLIMIT\tREMAINING\tRESETS\n")
	for i := range ops {
		limit, remaining := "unlimited", "-"
		if ops[i].DailyLimit > 0 {
			limit = fmt.Sprintf("%d", ops[i].DailyLimit)
			remaining = fmt.Sprintf("%d", ops[i].Remaining)
		}
		tw.writef("%s\t%d\t%s\t%s\t%s\n",
			ops[i].Operation,
			ops[i].DailyUsed,
			limit,
			remaining,
			ops[i].ResetAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func money(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("$%.2f", v)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
