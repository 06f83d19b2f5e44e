package persistence

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/petrijr/tweentrain/pkg/api"
)

// SQLiteEventStore stores train events in SQLite.
type SQLiteEventStore struct {
	db *sql.DB
}

// Ensure SQLiteEventStore implements the interfaces.
var _ EventStore = (*SQLiteEventStore)(nil)

// NewSQLiteEventStore returns a store backed by db, creating the schema if
// missing. Databases written before runs were recorded gain an empty run
// column.
func NewSQLiteEventStore(db *sql.DB) (*SQLiteEventStore, error) {
	s := &SQLiteEventStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteEventStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS train_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run TEXT NOT NULL DEFAULT '',
			train_id INTEGER NOT NULL,
			owner TEXT NOT NULL DEFAULT '',
			at INTEGER NOT NULL,
			type TEXT NOT NULL,
			step TEXT NOT NULL DEFAULT '',
			seq INTEGER NOT NULL DEFAULT 0,
			detail TEXT NOT NULL DEFAULT ''
		);
	`)
	if err != nil {
		return err
	}
	if err := s.ensureRunColumn(); err != nil {
		return err
	}
	_, err = s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_train_events_run ON train_events(run, train_id, id);
		CREATE INDEX IF NOT EXISTS idx_train_events_owner ON train_events(owner, id);
	`)
	return err
}

func (s *SQLiteEventStore) ensureRunColumn() error {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info('train_events')`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == "run" {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	_, err = s.db.Exec(`ALTER TABLE train_events ADD COLUMN run TEXT NOT NULL DEFAULT ''`)
	return err
}

func (s *SQLiteEventStore) AppendEvent(ctx context.Context, ev api.TrainEvent) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO train_events (run, train_id, owner, at, type, step, seq, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Run,
		int64(ev.TrainID),
		ev.Owner,
		at.UnixNano(),
		string(ev.Type),
		string(ev.Step),
		ev.Seq,
		ev.Detail,
	)
	return err
}

func (s *SQLiteEventStore) ListEvents(ctx context.Context, run string, trainID uint64) ([]api.TrainEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run, train_id, owner, at, type, step, seq, detail
		FROM train_events
		WHERE run = ? AND train_id = ?
		ORDER BY id ASC`, run, int64(trainID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrTrainNotFound
	}
	return out, nil
}

func (s *SQLiteEventStore) QueryEvents(ctx context.Context, filter EventFilter) ([]api.TrainEvent, error) {
	var (
		where []string
		args  []any
	)
	if filter.Run != "" {
		where = append(where, "run = ?")
		args = append(args, filter.Run)
	}
	if filter.Owner != "" {
		where = append(where, "owner = ?")
		args = append(args, filter.Owner)
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}

	query := `SELECT run, train_id, owner, at, type, step, seq, detail FROM train_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]api.TrainEvent, error) {
	var out []api.TrainEvent
	for rows.Next() {
		var (
			run    string
			id     int64
			owner  string
			atN    int64
			typ    string
			step   string
			seq    int
			detail string
		)
		if err := rows.Scan(&run, &id, &owner, &atN, &typ, &step, &seq, &detail); err != nil {
			return nil, err
		}
		out = append(out, api.TrainEvent{
			Run:     run,
			TrainID: uint64(id),
			Owner:   owner,
			At:      time.Unix(0, atN),
			Type:    api.EventType(typ),
			Step:    api.StepKind(step),
			Seq:     seq,
			Detail:  detail,
		})
	}
	return out, rows.Err()
}
