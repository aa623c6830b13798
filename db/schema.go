package db

import (
	"database/sql"
	"fmt"
)

const Schema = `
-- Create squads table
CREATE TABLE IF NOT EXISTS squads (
    id UUID PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    leader_name VARCHAR(100) NOT NULL,
    date VARCHAR(10) NOT NULL,
    time VARCHAR(8) NOT NULL,
    location VARCHAR(255) NOT NULL,
    discipline VARCHAR(50) NOT NULL,
    capacity INTEGER NOT NULL CHECK (capacity >= 1),
    message TEXT,
    contact_type VARCHAR(20) NOT NULL,
    contact_value VARCHAR(255) NOT NULL,
    leader_pin CHAR(6) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    created_by VARCHAR(255)
);

-- Create members table
CREATE TABLE IF NOT EXISTS members (
    id SERIAL PRIMARY KEY,
    squad_id UUID NOT NULL,
    name VARCHAR(100) NOT NULL,
    note TEXT,
    joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    FOREIGN KEY (squad_id) REFERENCES squads(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_members_squad_id ON members(squad_id);

-- Notify listeners on any row change in either table. The payload carries
-- the table name and operation so a single channel serves both.
CREATE OR REPLACE FUNCTION notify_squad_change() RETURNS trigger AS $$
BEGIN
    PERFORM pg_notify('` + ChangeChannel + `', TG_TABLE_NAME || ':' || TG_OP);
    RETURN NULL;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS squads_notify ON squads;
CREATE TRIGGER squads_notify
    AFTER INSERT OR UPDATE OR DELETE ON squads
    FOR EACH STATEMENT EXECUTE FUNCTION notify_squad_change();

DROP TRIGGER IF EXISTS members_notify ON members;
CREATE TRIGGER members_notify
    AFTER INSERT OR UPDATE OR DELETE ON members
    FOR EACH STATEMENT EXECUTE FUNCTION notify_squad_change();
`

// InitSchema creates the database schema if it doesn't exist
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("error initializing schema: %w", err)
	}
	return nil
}
