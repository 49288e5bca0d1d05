package journal

import (
	"database/sql"
	"errors"
	"fmt"
)

func (j *SQLite) Accounts() ([]Account, error) {
	rows, err := j.db.Query(`
		SELECT name, starting_balance, description
		FROM accounts
		ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.Name, &a.StartingBalance, &a.Description); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) FindAccount(name string) (Account, error) {
	var a Account
	err := j.db.QueryRow(`
		SELECT name, starting_balance, description
		FROM accounts
		WHERE name = ?`, name).Scan(&a.Name, &a.StartingBalance, &a.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, fmt.Errorf("account %q: %w", name, ErrNotFound)
		}
		return Account{}, err
	}
	return a, nil
}

func (j *SQLite) SaveAccount(a Account) error {
	name, err := validName("account", a.Name)
	if err != nil {
		return err
	}
	_, err = j.db.Exec(`
		INSERT INTO accounts (name, starting_balance, description)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			name = excluded.name,
			starting_balance = excluded.starting_balance,
			description = excluded.description`,
		name, a.StartingBalance, a.Description)
	return err
}

func (j *SQLite) DeleteAccount(name string) (bool, error) {
	return j.deleteOne(`DELETE FROM accounts WHERE name = ?`, name)
}

// RenameAccount renames the account and moves its trades in one
// transaction.
func (j *SQLite) RenameAccount(oldName, newName string) error {
	newName, err := validName("account", newName)
	if err != nil {
		return err
	}

	return j.inTx(func(tx *sql.Tx) error {
		var taken int
		err := tx.QueryRow(`
			SELECT COUNT(*) FROM accounts
			WHERE name = ? AND name <> ?`, newName, oldName).Scan(&taken)
		if err != nil {
			return err
		}
		if taken > 0 {
			return fmt.Errorf("%w: account %q already exists", ErrInvalidInput, newName)
		}

		res, err := tx.Exec(`UPDATE accounts SET name = ? WHERE name = ?`, newName, oldName)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("account %q: %w", oldName, ErrNotFound)
		}

		_, err = tx.Exec(`UPDATE trades SET account = ? WHERE account = ? COLLATE NOCASE`, newName, oldName)
		return err
	})
}

func (j *SQLite) Strategies() ([]string, error) {
	rows, err := j.db.Query(`SELECT name FROM strategies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) AddStrategy(name string) error {
	name, err := validName("strategy", name)
	if err != nil {
		return err
	}
	_, err = j.db.Exec(`INSERT INTO strategies (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name)
	return err
}

func (j *SQLite) DeleteStrategy(name string) (bool, error) {
	return j.deleteOne(`DELETE FROM strategies WHERE name = ?`, name)
}

func (j *SQLite) RenameStrategy(oldName, newName string) error {
	newName, err := validName("strategy", newName)
	if err != nil {
		return err
	}

	return j.inTx(func(tx *sql.Tx) error {
		var taken int
		err := tx.QueryRow(`
			SELECT COUNT(*) FROM strategies
			WHERE name = ? AND name <> ?`, newName, oldName).Scan(&taken)
		if err != nil {
			return err
		}
		if taken > 0 {
			return fmt.Errorf("%w: strategy %q already exists", ErrInvalidInput, newName)
		}

		res, err := tx.Exec(`UPDATE strategies SET name = ? WHERE name = ?`, newName, oldName)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("strategy %q: %w", oldName, ErrNotFound)
		}

		_, err = tx.Exec(`UPDATE trades SET strategy = ? WHERE strategy = ?`, newName, oldName)
		return err
	})
}

func (j *SQLite) RecordImport(run ImportRun) error {
	run = stampRun(run)
	_, err := j.db.Exec(`
		INSERT INTO imports (id, source, format, imported, failed, created)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Format, run.Imported, run.Failed, run.Created)
	return err
}

func (j *SQLite) ImportRuns() ([]ImportRun, error) {
	rows, err := j.db.Query(`
		SELECT id, source, format, imported, failed, created
		FROM imports
		ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(&r.ID, &r.Source, &r.Format, &r.Imported, &r.Failed, &r.Created); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) deleteOne(query string, arg any) (bool, error) {
	res, err := j.db.Exec(query, arg)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (j *SQLite) inTx(fn func(*sql.Tx) error) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
