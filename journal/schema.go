package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	ticket TEXT PRIMARY KEY,
	direction TEXT NOT NULL DEFAULT '',
	symbol TEXT NOT NULL DEFAULT '',
	size REAL NOT NULL DEFAULT 0,
	open_time DATETIME,
	close_time DATETIME,
	open_price REAL NOT NULL DEFAULT 0,
	close_price REAL NOT NULL DEFAULT 0,
	stop_loss REAL NOT NULL DEFAULT 0,
	take_profit REAL NOT NULL DEFAULT 0,
	profit REAL NOT NULL DEFAULT 0,
	commission REAL NOT NULL DEFAULT 0,
	swap REAL NOT NULL DEFAULT 0,
	comment TEXT NOT NULL DEFAULT '',
	strategy TEXT NOT NULL DEFAULT '',
	account TEXT NOT NULL DEFAULT '',
	magic INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_trades_close_time ON trades(close_time);

CREATE TABLE IF NOT EXISTS accounts (
	name TEXT PRIMARY KEY COLLATE NOCASE,
	starting_balance REAL NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS strategies (
	name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS imports (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	format TEXT NOT NULL,
	imported INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	created DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	created DATETIME NOT NULL,
	updated DATETIME NOT NULL
);
`
