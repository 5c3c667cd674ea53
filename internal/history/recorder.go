// Package history records peer status samples into SQLite so the GUI can
// chart transfer and handshake activity over time. The recorder runs outside
// the parser/serializer core and never blocks it.
package history

import (
	"database/sql"
	"log"
	"strconv"
	"time"

	"wiredeck/internal/wgctl"
)

// configLister names the configs worth polling.
type configLister interface {
	List() ([]string, error)
}

// statusClient exposes the wgctl operations the recorder needs.
type statusClient interface {
	InterfaceUp(name string) bool
	Status(name string) ([]wgctl.PeerStatus, error)
}

// Sample is one recorded peer status row.
type Sample struct {
	Config    string    `json:"config"`
	PublicKey string    `json:"publicKey"`
	Timestamp time.Time `json:"timestamp"`
	RxBytes   int64     `json:"rxBytes"`
	TxBytes   int64     `json:"txBytes"`
	Handshake int64     `json:"handshake"`
}

// Recorder polls running interfaces and persists their peer status.
type Recorder struct {
	db       *sql.DB
	configs  configLister
	client   statusClient
	interval time.Duration

	now func() time.Time
}

// NewRecorder creates a recorder polling every interval.
func NewRecorder(db *sql.DB, configs configLister, client statusClient, interval time.Duration) *Recorder {
	return &Recorder{
		db:       db,
		configs:  configs,
		client:   client,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the polling loop. It returns when stop is closed.
func (r *Recorder) Start(stop <-chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	r.poll()
	for {
		select {
		case <-ticker.C:
			r.poll()
		case <-stop:
			return
		}
	}
}

// poll records one round of samples. Errors are logged, not fatal; a config
// that is down or unreadable is skipped this round.
func (r *Recorder) poll() {
	names, err := r.configs.List()
	if err != nil {
		log.Printf("history: config listing failed: %v", err)
		return
	}
	now := r.now().UTC()
	for _, name := range names {
		if !r.client.InterfaceUp(name) {
			continue
		}
		statuses, err := r.client.Status(name)
		if err != nil {
			log.Printf("history: status for %s failed: %v", name, err)
			continue
		}
		if err := r.record(name, now, statuses); err != nil {
			log.Printf("history: recording %s failed: %v", name, err)
		}
	}
}

func (r *Recorder) record(config string, now time.Time, statuses []wgctl.PeerStatus) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO peer_history (config, public_key, timestamp, rx_bytes, tx_bytes, handshake)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, status := range statuses {
		rxBytes := parseInt64(status.TransferRx)
		txBytes := parseInt64(status.TransferTx)
		handshake := parseInt64(status.LatestHandshake)
		if _, err := stmt.Exec(config, status.PublicKey, now.Unix(), rxBytes, txBytes, handshake); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func parseInt64(value *string) int64 {
	if value == nil {
		return 0
	}
	parsed, err := strconv.ParseInt(*value, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// Samples returns recorded rows for a config, oldest first, newer than since.
func (r *Recorder) Samples(config string, since time.Time) ([]Sample, error) {
	rows, err := r.db.Query(`
		SELECT config, public_key, timestamp, rx_bytes, tx_bytes, handshake
		FROM peer_history
		WHERE config = ? AND timestamp >= ?
		ORDER BY timestamp ASC, id ASC
	`, config, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samples := []Sample{}
	for rows.Next() {
		var sample Sample
		var ts int64
		if err := rows.Scan(&sample.Config, &sample.PublicKey, &ts, &sample.RxBytes, &sample.TxBytes, &sample.Handshake); err != nil {
			return nil, err
		}
		sample.Timestamp = time.Unix(ts, 0).UTC()
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}
