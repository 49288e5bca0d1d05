package analytics

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/trade"
)

// Bucket is one bar of a breakdown: the net P&L and trade count for a
// fixed slot (an hour, a weekday, a month).
type Bucket struct {
	Label  string
	Profit float64
	Count  int
}

// weekdays orders breakdowns Monday first.
var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

type slotFunc func(time.Time) int

func hourSlot(t time.Time) int  { return t.Hour() }
func monthSlot(t time.Time) int { return int(t.Month()) - 1 }
func weekdaySlot(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func hourLabels() []string {
	out := make([]string, 24)
	for h := range out {
		out[h] = strconv.Itoa(h)
	}
	return out
}

func weekdayLabels() []string {
	out := make([]string, len(weekdays))
	for i, d := range weekdays {
		out[i] = d.String()[:3]
	}
	return out
}

func monthLabels() []string {
	out := make([]string, 12)
	for i := range out {
		out[i] = time.Month(i + 1).String()[:3]
	}
	return out
}

// ProfitByHour buckets closed trades by close hour (0 to 23).
func ProfitByHour(trades []trade.Trade) []Bucket {
	return profitBy(trades, hourLabels(), hourSlot)
}

// ProfitByWeekday buckets closed trades by close weekday, Monday first.
func ProfitByWeekday(trades []trade.Trade) []Bucket {
	return profitBy(trades, weekdayLabels(), weekdaySlot)
}

// ProfitByMonth buckets closed trades by close month, January first.
func ProfitByMonth(trades []trade.Trade) []Bucket {
	return profitBy(trades, monthLabels(), monthSlot)
}

// EntriesByHour counts trades by open hour. Trades without an open time
// are skipped; P&L is included for closed trades.
func EntriesByHour(trades []trade.Trade) []Bucket {
	return entriesBy(trades, hourLabels(), hourSlot)
}

func EntriesByWeekday(trades []trade.Trade) []Bucket {
	return entriesBy(trades, weekdayLabels(), weekdaySlot)
}

func EntriesByMonth(trades []trade.Trade) []Bucket {
	return entriesBy(trades, monthLabels(), monthSlot)
}

func profitBy(trades []trade.Trade, labels []string, slot slotFunc) []Bucket {
	sums := make([]decimal.Decimal, len(labels))
	counts := make([]int, len(labels))
	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		i := slot(t.CloseTime)
		sums[i] = sums[i].Add(net(t))
		counts[i]++
	}
	return buckets(labels, sums, counts)
}

func entriesBy(trades []trade.Trade, labels []string, slot slotFunc) []Bucket {
	sums := make([]decimal.Decimal, len(labels))
	counts := make([]int, len(labels))
	for _, t := range trades {
		if t.OpenTime.IsZero() {
			continue
		}
		i := slot(t.OpenTime)
		if t.IsClosed() {
			sums[i] = sums[i].Add(net(t))
		}
		counts[i]++
	}
	return buckets(labels, sums, counts)
}

func buckets(labels []string, sums []decimal.Decimal, counts []int) []Bucket {
	out := make([]Bucket, len(labels))
	for i, l := range labels {
		out[i] = Bucket{Label: l, Profit: sums[i].InexactFloat64(), Count: counts[i]}
	}
	return out
}

// Day is the P&L of the trades closing on one calendar date.
type Day struct {
	Date   time.Time
	Profit float64
	Count  int
}

// Daily groups closed trades by the calendar date of their close time,
// in the close time's own location, and returns the days in date order.
func Daily(trades []trade.Trade) []Day {
	type acc struct {
		date  time.Time
		sum   decimal.Decimal
		count int
	}
	days := map[string]*acc{}

	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		c := t.CloseTime
		key := c.Format("2006-01-02")
		a, ok := days[key]
		if !ok {
			a = &acc{date: time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, c.Location())}
			days[key] = a
		}
		a.sum = a.sum.Add(net(t))
		a.count++
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Day, 0, len(keys))
	for _, k := range keys {
		a := days[k]
		out = append(out, Day{Date: a.date, Profit: a.sum.InexactFloat64(), Count: a.count})
	}
	return out
}

// Week is the P&L total for one calendar row of a month.
type Week struct {
	Number     int
	First      time.Time
	Last       time.Time
	Profit     float64
	TradeCount int
}

// Month returns the daily calendar of the month containing cursor and
// its weekly totals. Weeks run Sunday to Saturday and are cut at the
// month boundaries, so the first and last weeks may be short.
func Month(trades []trade.Trade, cursor time.Time) ([]Day, []Week) {
	loc := cursor.Location()
	first := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)

	byDate := map[string]Day{}
	for _, d := range Daily(trades) {
		key := d.Date.Format("2006-01-02")
		byDate[key] = d
	}

	var (
		days  []Day
		weeks []Week
		week  = Week{Number: 1, First: first}
		sum   decimal.Decimal
	)
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		d, ok := byDate[day.Format("2006-01-02")]
		if !ok {
			d = Day{Date: day}
		}
		days = append(days, d)
		sum = sum.Add(decimal.NewFromFloat(d.Profit))
		week.TradeCount += d.Count

		last := day.AddDate(0, 0, 1).Equal(next)
		if day.Weekday() == time.Saturday || last {
			week.Last = day
			week.Profit = sum.InexactFloat64()
			weeks = append(weeks, week)

			week = Week{Number: week.Number + 1, First: day.AddDate(0, 0, 1)}
			sum = decimal.Zero
		}
	}
	return days, weeks
}
