package trade

import (
	"strings"

	"github.com/rustyeddy/tradejournal/internal/id"
)

const (
	// GeneratedPrefix marks tickets synthesized during a tabular import.
	GeneratedPrefix = "GEN-"
	// ManualPrefix marks tickets synthesized for manually entered trades.
	ManualPrefix = "MAN-"
)

// ManualTicket returns ticket unchanged when it is non-blank, otherwise a
// fresh "MAN-xxxxxxxx" ticket.
func ManualTicket(ticket string) string {
	if t := strings.TrimSpace(ticket); t != "" {
		return t
	}
	return ManualPrefix + id.Suffix(8)
}

// IsSynthetic reports whether the ticket was generated rather than taken
// from broker data.
func IsSynthetic(ticket string) bool {
	return strings.HasPrefix(ticket, GeneratedPrefix) || strings.HasPrefix(ticket, ManualPrefix)
}
