package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

// FormatTradeOrg renders a trade as an Org-mode block for pasting into a
// journal. Structured facts go in the PROPERTIES drawer; the narrative
// headings are left empty.
func FormatTradeOrg(t trade.Trade) string {
	label := strings.Join(strings.Fields(t.Symbol+" "+t.Direction.DisplayName()), " ")
	heading := fmt.Sprintf("** Trade: %s (%s)", label, shortID(t.Ticket))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TICKET: %s\n", t.Ticket))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", t.Symbol))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":SIZE: %.2f\n", t.Size))
	b.WriteString(fmt.Sprintf(":OPEN_PRICE: %.5f\n", t.OpenPrice))
	b.WriteString(fmt.Sprintf(":CLOSE_PRICE: %.5f\n", t.ClosePrice))
	b.WriteString(fmt.Sprintf(":OPEN_TIME: %s\n", orgTime(t.OpenTime)))
	b.WriteString(fmt.Sprintf(":CLOSE_TIME: %s\n", orgTime(t.CloseTime)))
	b.WriteString(fmt.Sprintf(":NET_PROFIT: %.2f\n", t.NetProfit()))
	if t.Strategy != "" {
		b.WriteString(fmt.Sprintf(":STRATEGY: %s\n", t.Strategy))
	}
	if t.Account != "" {
		b.WriteString(fmt.Sprintf(":ACCOUNT: %s\n", t.Account))
	}
	if t.Magic != 0 {
		b.WriteString(fmt.Sprintf(":MAGIC: %d\n", t.Magic))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- ")
	b.WriteString(t.Comment)
	b.WriteString("\n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []trade.Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func orgTime(t time.Time) string {
	if t.IsZero() {
		return "(open)"
	}
	// RFC3339 for copy/paste friendliness
	return t.UTC().Format(time.RFC3339)
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}

// FormatNoteOrg renders a note as an Org-mode heading with its content as
// the body.
func FormatNoteOrg(n Note) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("** Note: %s\n", n.DisplayTitle()))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", n.ID))
	b.WriteString(fmt.Sprintf(":CREATED: %s\n", orgTime(n.Created)))
	b.WriteString(fmt.Sprintf(":UPDATED: %s\n", orgTime(n.Updated)))
	b.WriteString(":END:\n")
	if content := strings.TrimSpace(n.Content); content != "" {
		b.WriteString("\n")
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String()
}
