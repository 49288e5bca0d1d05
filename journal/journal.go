// Package journal persists trades and the user-curated data around them:
// accounts, strategy labels and the history of imports.
package journal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/trade"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Store is the trade store contract. Saves are upserts keyed by ticket
// and the last writer wins.
type Store interface {
	FindAll() ([]trade.Trade, error)
	// FindByTicket returns ErrNotFound when no trade has ticket.
	FindByTicket(ticket string) (trade.Trade, error)
	Save(t trade.Trade) error
	SaveAll(trades []trade.Trade) error
	// Delete reports whether a trade was removed.
	Delete(ticket string) (bool, error)
	DeleteAll() error
	Close() error
}

// Account is a trading account trades can be assigned to. Names are
// unique case-insensitively.
type Account struct {
	Name            string
	StartingBalance float64
	Description     string
}

// ImportRun records one completed import.
type ImportRun struct {
	ID       string
	Source   string
	Format   string
	Imported int
	Failed   int
	Created  time.Time
}

// Journal is a Store that also keeps accounts, strategies, import
// history and notes.
type Journal interface {
	Store

	// Accounts are sorted by name, case-insensitively.
	Accounts() ([]Account, error)
	FindAccount(name string) (Account, error)
	// SaveAccount adds a, replacing any account with the same name.
	SaveAccount(a Account) error
	DeleteAccount(name string) (bool, error)
	// RenameAccount fails with ErrInvalidInput when newName is taken and
	// moves every trade of oldName to newName.
	RenameAccount(oldName, newName string) error

	// Strategies are sorted.
	Strategies() ([]string, error)
	AddStrategy(name string) error
	DeleteStrategy(name string) (bool, error)
	// RenameStrategy relabels the strategy and every trade carrying it.
	RenameStrategy(oldName, newName string) error

	RecordImport(run ImportRun) error
	// ImportRuns are ordered oldest first.
	ImportRuns() ([]ImportRun, error)

	// Notes are ordered most recently updated first.
	Notes() ([]Note, error)
	FindNote(id string) (Note, error)
	// SaveNote adds n, or replaces the note with the same ID, and returns
	// it with its ID and timestamps set.
	SaveNote(n Note) (Note, error)
	DeleteNote(id string) (bool, error)
}

const (
	TypeSQLite = "sqlite"
	TypeMemory = "memory"
)

// Open returns a Journal of the given type. path is ignored for memory
// journals.
func Open(kind, path string) (Journal, error) {
	switch strings.ToLower(kind) {
	case TypeSQLite, "":
		return NewSQLite(path)
	case TypeMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("%w: unknown journal type %q", ErrInvalidInput, kind)
}

// TotalBalance sums the starting balances of accounts. It is the balance
// used when a view spans every account.
func TotalBalance(accounts []Account) float64 {
	sum := decimal.Zero
	for _, a := range accounts {
		sum = sum.Add(decimal.NewFromFloat(a.StartingBalance))
	}
	return sum.InexactFloat64()
}

// BalanceOf returns the starting balance of the named account, or 0.
func BalanceOf(accounts []Account, name string) float64 {
	for _, a := range accounts {
		if strings.EqualFold(a.Name, name) {
			return a.StartingBalance
		}
	}
	return 0
}

func validTicket(t trade.Trade) error {
	if strings.TrimSpace(t.Ticket) == "" {
		return fmt.Errorf("%w: trade without ticket", ErrInvalidInput)
	}
	return nil
}

func validName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty %s name", ErrInvalidInput, kind)
	}
	return name, nil
}

func sortAccounts(accts []Account) {
	sort.Slice(accts, func(i, j int) bool {
		return strings.ToLower(accts[i].Name) < strings.ToLower(accts[j].Name)
	})
}
