package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MariaRunRepo реализует RunRepo для базы данных MariaDB/MySQL.
// Использует таблицу export_runs для хранения журнала запусков.
type MariaRunRepo struct {
	db *sql.DB
}

// NewMariaRunRepo создает новый журнал запусков для MariaDB.
// Автоматически создает таблицу, если она не существует.
//
// Параметры:
//
//	dsn - строка подключения к базе данных (user:pass@tcp(host:port)/dbname)
func NewMariaRunRepo(dsn string) (*MariaRunRepo, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к MariaDB: %w", err)
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось проверить соединение с MariaDB: %w", err)
	}

	repo := &MariaRunRepo{db: db}

	if err := repo.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось создать таблицу: %w", err)
	}

	return repo, nil
}

// createTable создает таблицу export_runs, если она не существует.
func (r *MariaRunRepo) createTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS export_runs (
			id           CHAR(36)     PRIMARY KEY,
			world        VARCHAR(255) NOT NULL,
			spoiler      BOOLEAN      NOT NULL DEFAULT FALSE,
			elevations   TEXT         NOT NULL,
			artifact_dir VARCHAR(512) NOT NULL,
			workbook     VARCHAR(512) NOT NULL DEFAULT '',
			started_at   TIMESTAMP    NOT NULL,
			duration_ms  BIGINT       NOT NULL DEFAULT 0,
			error        TEXT,
			INDEX idx_started_at (started_at)
		) ENGINE=InnoDB
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("ошибка создания таблицы export_runs: %w", err)
	}

	return nil
}

// Save сохраняет запись о запуске в базе данных.
func (r *MariaRunRepo) Save(ctx context.Context, run *ExportRun) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("недействительная запись запуска")
	}

	elevations, err := json.Marshal(run.Elevations)
	if err != nil {
		return fmt.Errorf("ошибка сериализации высот: %w", err)
	}

	query := `
		INSERT INTO export_runs (id, world, spoiler, elevations, artifact_dir, workbook, started_at, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			elevations  = VALUES(elevations),
			workbook    = VALUES(workbook),
			duration_ms = VALUES(duration_ms),
			error       = VALUES(error)
	`

	_, err = r.db.ExecContext(ctx, query,
		run.ID, run.World, run.Spoiler, string(elevations), run.ArtifactDir,
		run.Workbook, run.StartedAt.UTC(), run.Duration.Milliseconds(), run.Error)
	if err != nil {
		return fmt.Errorf("ошибка сохранения запуска %s: %w", run.ID, err)
	}

	return nil
}

// Get возвращает запуск по ID.
func (r *MariaRunRepo) Get(ctx context.Context, id string) (*ExportRun, bool, error) {
	if id == "" {
		return nil, false, fmt.Errorf("пустой ID запуска")
	}

	query := `
		SELECT id, world, spoiler, elevations, artifact_dir, workbook, started_at, duration_ms, error
		FROM export_runs WHERE id = ?
	`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка загрузки запуска %s: %w", id, err)
	}

	return run, true, nil
}

// List возвращает последние запуски, новые первыми.
func (r *MariaRunRepo) List(ctx context.Context, limit int) ([]*ExportRun, error) {
	query := `
		SELECT id, world, spoiler, elevations, artifact_dir, workbook, started_at, duration_ms, error
		FROM export_runs ORDER BY started_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки запусков: %w", err)
	}
	defer rows.Close()

	var runs []*ExportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки запуска: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Close закрывает соединение с базой данных.
func (r *MariaRunRepo) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// rowScanner покрывает и *sql.Row, и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRun читает одну строку export_runs
func scanRun(row rowScanner) (*ExportRun, error) {
	var run ExportRun
	var elevations string
	var durationMs int64
	var errText sql.NullString

	err := row.Scan(&run.ID, &run.World, &run.Spoiler, &elevations, &run.ArtifactDir,
		&run.Workbook, &run.StartedAt, &durationMs, &errText)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(elevations), &run.Elevations); err != nil {
		return nil, fmt.Errorf("ошибка десериализации высот: %w", err)
	}

	run.Duration = time.Duration(durationMs) * time.Millisecond
	if errText.Valid {
		run.Error = errText.String
	}

	return &run, nil
}
