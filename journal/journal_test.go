package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/trade"
)

// stores runs fn against every Journal implementation.
func stores(t *testing.T, fn func(t *testing.T, j Journal)) {
	t.Helper()

	open := map[string]func(t *testing.T) Journal{
		"memory": func(t *testing.T) Journal { return NewMemory() },
		"sqlite": func(t *testing.T) Journal {
			j, _ := newTestSQLite(t)
			return j
		},
	}

	for name, mk := range open {
		mk := mk
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			j := mk(t)
			t.Cleanup(func() { _ = j.Close() })
			fn(t, j)
		})
	}
}

func sampleTrade(ticket string) trade.Trade {
	return trade.Trade{
		Ticket:     ticket,
		Direction:  trade.Buy,
		Symbol:     "EURUSD",
		Size:       0.5,
		OpenTime:   time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC),
		CloseTime:  time.Date(2024, 3, 4, 13, 0, 0, 0, time.UTC),
		OpenPrice:  1.0850,
		ClosePrice: 1.0900,
		StopLoss:   1.0800,
		TakeProfit: 1.0950,
		Profit:     250,
		Commission: -3.5,
		Swap:       -0.25,
		Comment:    "breakout",
		Strategy:   "Trend",
		Account:    "Main",
		Magic:      42,
	}
}

// assertSameTrade compares trades with instant equality for timestamps.
func assertSameTrade(t *testing.T, want, got trade.Trade) {
	t.Helper()

	assert.True(t, want.OpenTime.Equal(got.OpenTime), "open time %v != %v", want.OpenTime, got.OpenTime)
	assert.True(t, want.CloseTime.Equal(got.CloseTime), "close time %v != %v", want.CloseTime, got.CloseTime)

	want.OpenTime, got.OpenTime = time.Time{}, time.Time{}
	want.CloseTime, got.CloseTime = time.Time{}, time.Time{}
	assert.Equal(t, want, got)
}

func TestJournalSaveAndFind(t *testing.T) {
	t.Parallel()

	stores(t, func(t *testing.T, j Journal) {
		want := sampleTrade("1001")
		require.NoError(t, j.Save(want))

		got, err := j.FindByTicket("1001")
		require.NoError(t, err)
		assertSameTrade(t, want, got)

		_, err = j.FindByTicket("missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestJournalOpenTradeRoundTrip(t *testing.T) {
	t.Parallel()

	stores(t, func(t *testing.T, j Journal) {
		open := sampleTrade("2002")
		open.CloseTime = time.Time{}
		open.ClosePrice = 0
		require.NoError(t, j.Save(open))

		got, err := j.FindByTicket("2002")
		require.NoError(t, err)
		assert.True(t, got.CloseTime.IsZero())
		assert.False(t, got.IsClosed())
	})
}

func TestJournalSaveIsUpsert(t *testing.T) {
	t.Parallel()

	stores(t, func(t *testing.T, j Journal) {
		require.NoError(t, j.Save(sampleTrade("1")))
		require.NoError(t, j.Save(sampleTrade("2")))

		updated := sampleTrade("1").WithComment("revised")
		require.NoError(t, j.Save(updated))

		all, err := j.FindAll()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "1", all[0].Ticket)
		assert.Equal(t, "revised", all[0].Comment)
		assert.Equal(t, "2", all[1].Ticket)
	})
}

func TestJournalRejectsEmptyTicket(t *testing.T) {
	t.Parallel()

	stores(t, func(t *testing.T, j Journal) {
		assert.ErrorIs(t, j.Save(sampleTrade("  ")), ErrInvalidInput)

		err := j.SaveAll([]trade.Trade{sampleTrade("ok"), sampleTrade("")})
		assert.ErrorIs(t, err, ErrInvalidInput)

		all, err := j.FindAll()
		require.NoError(t, err)
		assert.Empty(t, all, "no trade is written when any is invalid")
	})
}

func TestJournalSaveAllPreservesOrder(t *testing.T) {
	t.Parallel()

	stores(t, func(t *testing.T, j Journal) {
		batch := []trade.Trade{sampleTrade("c"), sampleTrade("a"), sampleTrade("b")}
		require.NoError(t, j.SaveAll(batch))

		all, err := j.FindAll()
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].Ticket, all[1].Ticket, all[2].Ticket})
	})
}

func TestJournalDelete(t *testing.T) {
	t.Parallel()

	stores(t, func(t *testing.T, j Journal) {
		require.NoError(t, j.SaveAll([]trade.Trade{sampleTrade("1"), sampleTrade("2")}))

		ok, err := j.Delete("1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = j.Delete("1")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, j.DeleteAll())
		all, err := j.FindAll()
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestJournalAccounts(t *testing.T) {
	t.Parallel()

	stores(t, func(t *testing.T, j Journal) {
		require.NoError(t, j.SaveAccount(Account{Name: "prop", StartingBalance: 50000}))
		require.NoError(t, j.SaveAccount(Account{Name: "Main", StartingBalance: 10000, Description: "live"}))
		require.NoError(t, j.SaveAccount(Account{Name: "main", StartingBalance: 12000, Description: "live"}))

		accts, err := j.Accounts()
		require.NoError(t, err)
		require.Len(t, accts, 2)
		assert.Equal(t, "main", accts[0].Name)
		assert.Equal(t, 12000.0, accts[0].StartingBalance)
		assert.Equal(t, "prop", accts[1].Name)

		a, err := j.FindAccount("MAIN")
		require.NoError(t, err)
		assert.Equal(t, "live", a.Description)

		_, err = j.FindAccount("nope")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, j.SaveAccount(Account{Name: " "}), ErrInvalidInput)

		ok, err := j.DeleteAccount("Prop")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = j.DeleteAccount("prop")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestJournalRenameAccountMovesTrades(t *testing.T) {
	t.Parallel()

	stores(t, func(t *testing.T, j Journal) {
		require.NoError(t, j.SaveAccount(Account{Name: "Main", StartingBalance: 1000}))
		require.NoError(t, j.SaveAccount(Account{Name: "Other"}))
		require.NoError(t, j.SaveAll([]trade.Trade{
			sampleTrade("1").WithAccount("main"),
			sampleTrade("2").WithAccount("Other"),
		}))

		assert.ErrorIs(t, j.RenameAccount("Main", "other"), ErrInvalidInput)
		assert.ErrorIs(t, j.RenameAccount("ghost", "x"), ErrNotFound)

		require.NoError(t, j.RenameAccount("Main", "Live"))

		a, err := j.FindAccount("live")
		require.NoError(t, err)
		assert.Equal(t, "Live", a.Name)
		assert.Equal(t, 1000.0, a.StartingBalance)

		moved, err := j.FindByTicket("1")
		require.NoError(t, err)
		assert.Equal(t, "Live", moved.Account)

		kept, err := j.FindByTicket("2")
		require.NoError(t, err)
		assert.Equal(t, "Other", kept.Account)
	})
}

func TestJournalStrategies(t *testing.T) {
	t.Parallel()

	stores(t, func(t *testing.T, j Journal) {
		require.NoError(t, j.AddStrategy("Trend"))
		require.NoError(t, j.AddStrategy("Breakout"))
		require.NoError(t, j.AddStrategy("Trend"))
		assert.ErrorIs(t, j.AddStrategy(""), ErrInvalidInput)

		names, err := j.Strategies()
		require.NoError(t, err)
		assert.Equal(t, []string{"Breakout", "Trend"}, names)

		require.NoError(t, j.SaveAll([]trade.Trade{
			sampleTrade("1").WithStrategy("Trend"),
			sampleTrade("2").WithStrategy("Breakout"),
		}))

		assert.ErrorIs(t, j.RenameStrategy("Trend", "Breakout"), ErrInvalidInput)
		assert.ErrorIs(t, j.RenameStrategy("Missing", "X"), ErrNotFound)
		require.NoError(t, j.RenameStrategy("Trend", "Momentum"))

		got, err := j.FindByTicket("1")
		require.NoError(t, err)
		assert.Equal(t, "Momentum", got.Strategy)

		names, err = j.Strategies()
		require.NoError(t, err)
		assert.Equal(t, []string{"Breakout", "Momentum"}, names)

		ok, err := j.DeleteStrategy("Breakout")
		require.NoError(t, err)
		assert.True(t, ok)

		// trades keep their label
		got, err = j.FindByTicket("2")
		require.NoError(t, err)
		assert.Equal(t, "Breakout", got.Strategy)
	})
}

func TestJournalImportRuns(t *testing.T) {
	t.Parallel()

	stores(t, func(t *testing.T, j Journal) {
		require.NoError(t, j.RecordImport(ImportRun{Source: "a.xlsx", Format: "xlsx", Imported: 10, Failed: 1}))
		require.NoError(t, j.RecordImport(ImportRun{Source: "b.txt", Format: "delimited", Imported: 3}))

		runs, err := j.ImportRuns()
		require.NoError(t, err)
		require.Len(t, runs, 2)

		assert.Equal(t, "a.xlsx", runs[0].Source)
		assert.Equal(t, 10, runs[0].Imported)
		assert.Equal(t, 1, runs[0].Failed)
		assert.NotEmpty(t, runs[0].ID)
		assert.False(t, runs[0].Created.IsZero())
		assert.Equal(t, "b.txt", runs[1].Source)
		assert.NotEqual(t, runs[0].ID, runs[1].ID)
	})
}

func TestOpen(t *testing.T) {
	t.Parallel()

	j, err := Open(TypeMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, j)

	path := filepath.Join(t.TempDir(), "journal.db")
	j, err = Open("SQLite", path)
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, j)
	assert.NoError(t, j.Close())

	_, err = Open("postgres", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBalances(t *testing.T) {
	t.Parallel()

	accts := []Account{
		{Name: "Main", StartingBalance: 10000.10},
		{Name: "Prop", StartingBalance: 0.20},
	}

	assert.Equal(t, 10000.30, TotalBalance(accts))
	assert.Equal(t, 0.0, TotalBalance(nil))
	assert.Equal(t, 0.20, BalanceOf(accts, "prop"))
	assert.Equal(t, 0.0, BalanceOf(accts, "missing"))
}

func TestJournalNotes(t *testing.T) {
	t.Parallel()

	stores(t, func(t *testing.T, j Journal) {
		notes, err := j.Notes()
		require.NoError(t, err)
		assert.Empty(t, notes)

		first, err := j.SaveNote(Note{Title: " Weekly review ", Content: "cut losers sooner"})
		require.NoError(t, err)
		require.Len(t, first.ID, 26)
		assert.Equal(t, "Weekly review", first.Title)
		assert.False(t, first.Created.IsZero())

		second, err := j.SaveNote(Note{Content: "no title"})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, "Untitled Note", second.DisplayTitle())

		got, err := j.FindNote(first.ID)
		require.NoError(t, err)
		assert.Equal(t, "cut losers sooner", got.Content)
		assert.True(t, got.Created.Equal(first.Created))

		got.Content = "cut losers sooner, let winners run"
		edited, err := j.SaveNote(Note{ID: got.ID, Title: got.Title, Content: got.Content})
		require.NoError(t, err)
		assert.True(t, edited.Created.Equal(first.Created), "update keeps creation time")
		assert.False(t, edited.Updated.Before(first.Updated))

		notes, err = j.Notes()
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, first.ID, notes[0].ID, "most recently updated first")
		assert.Equal(t, "cut losers sooner, let winners run", notes[0].Content)

		ok, err := j.DeleteNote(second.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = j.DeleteNote(second.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = j.FindNote(second.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
