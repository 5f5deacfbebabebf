package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"photobooth_backend/internal/email"
	"photobooth_backend/internal/quotes/domain"
	"photobooth_backend/internal/quotes/transport"
)

// printJSON writes the estimate in the same shape the HTTP API returns.
func printJSON(w io.Writer, est domain.Estimate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(transport.NewEstimateResponse(est))
}

// printEstimate prints the breakdown as aligned text.
func printEstimate(w io.Writer, in domain.EstimateInput, est domain.Estimate) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	b := est.Breakdown

	fmt.Fprintf(tw, "Service:\t%s\n", in.ServiceType)
	if b.Total.IsPlaceholder() {
		fmt.Fprintf(tw, "Total:\t%s\n", b.Total.Placeholder)
		_ = tw.Flush()
		return
	}

	fmt.Fprintf(tw, "Duration:\t%.2f hours\n", est.DurationHours)
	fmt.Fprintf(tw, "Base price:\t%s\n", email.FormatUSD(b.BasePrice))
	fmt.Fprintf(tw, "Extra hours:\t%d (%s)\n", b.ExtraHours, email.FormatUSD(b.ExtraHoursCost))
	fmt.Fprintf(tw, "Travel fee:\t%s\t%s\n", email.FormatUSD(b.TravelFee), travelNote(est))
	fmt.Fprintf(tw, "Total:\t%s\n", email.FormatUSD(b.Total.Amount))
	_ = tw.Flush()

	if est.Warning != "" {
		fmt.Fprintf(w, "\nWarning: %s\n", est.Warning)
	}
}

func travelNote(est domain.Estimate) string {
	if est.DistanceMiles != nil {
		return fmt.Sprintf("(%s, %.1f mi)", est.TravelReason, *est.DistanceMiles)
	}
	return fmt.Sprintf("(%s)", est.TravelReason)
}
