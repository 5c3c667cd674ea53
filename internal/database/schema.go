package database

// schema contains all table definitions. Each statement is idempotent (CREATE IF NOT EXISTS).
const schema = `
CREATE TABLE IF NOT EXISTS peer_history (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    config     TEXT    NOT NULL,
    public_key TEXT    NOT NULL,
    timestamp  INTEGER NOT NULL,
    rx_bytes   INTEGER NOT NULL DEFAULT 0,
    tx_bytes   INTEGER NOT NULL DEFAULT 0,
    handshake  INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_peer_history_config_ts
    ON peer_history (config, timestamp);
`
