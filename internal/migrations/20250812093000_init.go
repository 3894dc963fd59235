package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upInit, downInit)
}

func upInit(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE brand_profiles (
		chat_id BIGINT PRIMARY KEY,
		profile JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE content_slots (
		chat_id BIGINT NOT NULL,
		slot VARCHAR(32) NOT NULL,
		content JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (chat_id, slot)
	);

	CREATE TABLE library_items (
		seq BIGSERIAL,
		id VARCHAR(64) NOT NULL,
		chat_id BIGINT NOT NULL,
		item JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (chat_id, id)
	);

	CREATE INDEX library_items_chat_seq_idx ON library_items (chat_id, seq);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downInit(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE library_items;
	DROP TABLE content_slots;
	DROP TABLE brand_profiles;
	`)
	if err != nil {
		return err
	}
	return nil
}
