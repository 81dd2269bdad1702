package journal

const Schema = `
CREATE TABLE IF NOT EXISTS prices (
	symbol TEXT NOT NULL,
	date TEXT NOT NULL,
	open REAL,
	high REAL,
	low REAL,
	close REAL,
	volume REAL,
	PRIMARY KEY (symbol, date)
);

CREATE TABLE IF NOT EXISTS price_fetches (
	symbol TEXT PRIMARY KEY,
	fields TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS summaries (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	as_of TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	source TEXT NOT NULL,
	bars INTEGER NOT NULL,
	payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_summaries_symbol ON summaries(symbol, id);
`
