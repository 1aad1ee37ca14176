// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package sqlite

import (
	"database/sql"
	"time"

	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		address BLOB PRIMARY KEY,
		owner   BLOB NOT NULL,
		balance INTEGER NOT NULL,
		data    BLOB NOT NULL,
		version INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS metadata (
		id           INTEGER PRIMARY KEY CHECK (id = 0),
		block_height INTEGER NOT NULL
	)`,
	`INSERT OR IGNORE INTO metadata (id, block_height) VALUES (0, 0)`,
}

type metrics struct {
	numberOfAccounts *metric.Gauge
	writeTime        *metric.Histogram
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		numberOfAccounts: m.NewGauge("StateStoragePersistence.TotalNumberOfAccounts.Count"),
		writeTime:        m.NewLatency("StateStoragePersistence.WriteTime.Millis", 5*time.Second),
	}
}

type StatePersistence struct {
	db      *sql.DB
	metrics *metrics
}

// NewStatePersistence opens (creating if needed) the database file at path
func NewStatePersistence(path string, metricFactory metric.Factory) (*StatePersistence, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open state database %s", path)
	}
	// in-memory databases exist per connection
	db.SetMaxOpenConns(1)

	for _, statement := range schema {
		if _, err := db.Exec(statement); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "failed to create state schema")
		}
	}

	sp := &StatePersistence{db: db, metrics: newMetrics(metricFactory)}
	if err := sp.reportSize(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sp, nil
}

func (sp *StatePersistence) Close() error {
	return sp.db.Close()
}

func (sp *StatePersistence) Write(height primitives.BlockHeight, accounts []*protocol.Account) error {
	start := time.Now()
	defer sp.metrics.writeTime.RecordSince(start)

	tx, err := sp.db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin state write")
	}
	defer tx.Rollback()

	for _, account := range accounts {
		if err := writeAccount(tx, account); err != nil {
			return errors.Wrapf(err, "failed to write account %s", account.Address)
		}
	}

	if _, err := tx.Exec(`UPDATE metadata SET block_height = ? WHERE id = 0`, int64(height)); err != nil {
		return errors.Wrap(err, "failed to write block height")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit state write")
	}

	return sp.reportSize()
}

func writeAccount(tx *sql.Tx, account *protocol.Account) error {
	if account.IsEmpty() {
		_, err := tx.Exec(`DELETE FROM accounts WHERE address = ?`, account.Address.Bytes())
		return err
	}

	data := account.Data
	if data == nil {
		data = []byte{}
	}

	// uint64 columns are stored as their int64 bit pattern
	_, err := tx.Exec(`INSERT INTO accounts (address, owner, balance, data, version) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (address) DO UPDATE SET owner = excluded.owner, balance = excluded.balance, data = excluded.data, version = excluded.version`,
		account.Address.Bytes(), account.Owner.Bytes(), int64(account.Balance), data, int64(account.Version))
	return err
}

func (sp *StatePersistence) Read(address protocol.Address) (*protocol.Account, bool, error) {
	var owner, data []byte
	var balance, version int64

	err := sp.db.QueryRow(`SELECT owner, balance, data, version FROM accounts WHERE address = ?`, address.Bytes()).Scan(&owner, &balance, &data, &version)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read account %s", address)
	}

	ownerAddress, err := protocol.AddressFromBytes(owner)
	if err != nil {
		return nil, false, errors.Wrapf(err, "corrupt owner for account %s", address)
	}

	return &protocol.Account{
		Address: address,
		Owner:   ownerAddress,
		Balance: uint64(balance),
		Data:    data,
		Version: uint64(version),
	}, true, nil
}

func (sp *StatePersistence) ReadMetadata() (primitives.BlockHeight, error) {
	var height int64
	if err := sp.db.QueryRow(`SELECT block_height FROM metadata WHERE id = 0`).Scan(&height); err != nil {
		return 0, errors.Wrap(err, "failed to read block height")
	}
	return primitives.BlockHeight(height), nil
}

func (sp *StatePersistence) reportSize() error {
	var count int64
	if err := sp.db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return errors.Wrap(err, "failed to count accounts")
	}
	sp.metrics.numberOfAccounts.Update(count)
	return nil
}
