// Package bunstore persists widget instances in a SQL table through Bun.
package bunstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-widgetform/internal/logging"
	"github.com/goliatone/go-widgetform/pkg/interfaces"
	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/store"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

type instanceModel struct {
	bun.BaseModel `bun:"table:widget_instances,alias:wi"`

	IDBase    string    `bun:"id_base,pk"`
	Number    string    `bun:"number,pk"`
	Payload   string    `bun:"payload,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Store is a Bun-backed instance store.
type Store struct {
	db     *bun.DB
	logger interfaces.Logger
	now    func() time.Time
}

var _ store.Store = (*Store)(nil)

// Option customises the store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open connects to a SQLite database using the modernc driver.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "open sqlite database").
			WithTextCode("STORE_OPEN_FAILED")
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// New constructs a store over db.
func New(db *bun.DB, options ...Option) *Store {
	s := &Store{
		db:     db,
		logger: logging.NoOp(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateSchema creates the instance table when missing.
func (s *Store) CreateSchema(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.db.NewCreateTable().Model((*instanceModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return wrapQuery(err, "create instance table")
	}
	return nil
}

func (s *Store) Get(ctx context.Context, idBase, number string) (model.Instance, error) {
	if err := s.ready(); err != nil {
		return model.Instance{}, err
	}

	var row instanceModel
	err := s.db.NewSelect().
		Model(&row).
		Where("id_base = ?", idBase).
		Where("number = ?", number).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Instance{}, store.ErrInstanceNotFound
		}
		return model.Instance{}, wrapQuery(err, "select widget instance")
	}

	instance := model.NewInstance()
	if err := json.Unmarshal([]byte(row.Payload), &instance); err != nil {
		return model.Instance{}, goerrors.Wrap(err, goerrors.CategoryInternal, "decode widget instance").
			WithTextCode("STORE_DECODE_FAILED").
			WithMetadata(map[string]any{"id_base": idBase, "number": number})
	}
	return instance, nil
}

func (s *Store) Save(ctx context.Context, idBase, number string, instance model.Instance) error {
	if err := s.ready(); err != nil {
		return err
	}

	payload, err := json.Marshal(instance)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "encode widget instance").
			WithTextCode("STORE_ENCODE_FAILED")
	}

	now := s.now()
	row := instanceModel{
		IDBase:    idBase,
		Number:    number,
		Payload:   string(payload),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*instanceModel)(nil)).
			Where("id_base = ?", idBase).
			Where("number = ?", number).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			_, err = tx.NewInsert().Model(&row).Exec(ctx)
			return err
		}
		_, err = tx.NewUpdate().
			Model(&row).
			Column("payload", "updated_at").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return wrapQuery(err, "save widget instance")
	}

	s.logger.Debug("bunstore.save", "widget", idBase, "number", number)
	return nil
}

func (s *Store) Delete(ctx context.Context, idBase, number string) error {
	if err := s.ready(); err != nil {
		return err
	}

	res, err := s.db.NewDelete().
		Model((*instanceModel)(nil)).
		Where("id_base = ?", idBase).
		Where("number = ?", number).
		Exec(ctx)
	if err != nil {
		return wrapQuery(err, "delete widget instance")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return store.ErrInstanceNotFound
	}

	s.logger.Debug("bunstore.delete", "widget", idBase, "number", number)
	return nil
}

func (s *Store) List(ctx context.Context, idBase string) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var numbers []string
	err := s.db.NewSelect().
		Model((*instanceModel)(nil)).
		Column("number").
		Where("id_base = ?", idBase).
		Order("number ASC").
		Scan(ctx, &numbers)
	if err != nil {
		return nil, wrapQuery(err, "list widget instances")
	}
	if numbers == nil {
		numbers = []string{}
	}
	return numbers, nil
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return goerrors.New("bun store requires a database", goerrors.CategoryInternal).
			WithTextCode("STORE_NOT_CONFIGURED")
	}
	return nil
}

func wrapQuery(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, message).
		WithTextCode("STORE_QUERY_FAILED")
}
