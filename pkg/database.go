package disp

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	_ "modernc.org/sqlite"
)

type DatabaseConfig struct {
	Driver string
	Host   string
	User   string
	Passwd string
	DBName string
	// Path is the database file for the sqlite driver.
	Path string
}

// ConnectToDatabase opens the training registry database. The mysql driver
// uses host/user/password/dbname, the sqlite driver uses Path.
func ConnectToDatabase(cfg DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case "mysql", "":
		port := "3306"
		dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", cfg.User, cfg.Passwd, cfg.Host, port, cfg.DBName)
		return sqlx.Connect("mysql", dbURI)
	case "sqlite":
		return sqlx.Connect("sqlite", cfg.Path)
	default:
		return nil, fmt.Errorf("%w: unsupported database driver %q", ErrConfiguration, cfg.Driver)
	}
}

const createTrainingRunsTable = `CREATE TABLE IF NOT EXISTS TrainingRuns (
	RunID VARCHAR(36) NOT NULL,
	Target VARCHAR(32) NOT NULL,
	TelType BIGINT NOT NULL,
	Entries BIGINT NOT NULL,
	NTrain BIGINT NOT NULL,
	NTest BIGINT NOT NULL,
	ArtifactDir VARCHAR(1024) NOT NULL,
	Status VARCHAR(16) NOT NULL,
	Message TEXT NOT NULL,
	CreatedAt BIGINT NOT NULL
)`

// TrainingEntry is one row of the registry: the outcome of the training of
// one telescope type within a run.
type TrainingEntry struct {
	RunID       string `db:"RunID"`
	Target      string `db:"Target"`
	TelType     int64  `db:"TelType"`
	Entries     int64  `db:"Entries"`
	NTrain      int64  `db:"NTrain"`
	NTest       int64  `db:"NTest"`
	ArtifactDir string `db:"ArtifactDir"`
	Status      string `db:"Status"`
	Message     string `db:"Message"`
	CreatedAt   int64  `db:"CreatedAt"`
}

// Registry records trained models in a database, one row per telescope type.
type Registry struct {
	db    *sqlx.DB
	RunID string
}

func NewRegistry(db *sqlx.DB) (*Registry, error) {
	if _, err := db.Exec(createTrainingRunsTable); err != nil {
		return nil, fmt.Errorf("error creating registry table: %w", err)
	}
	return &Registry{db: db, RunID: uuid.NewString()}, nil
}

func (r *Registry) Record(job TrainingJob, report *TrainingReport, trainErr error) error {
	entry := TrainingEntry{
		RunID:       r.RunID,
		Target:      job.Target.String(),
		TelType:     int64(job.TelType),
		Entries:     int64(job.Split.Entries),
		NTrain:      int64(job.Split.DampedTrain),
		NTest:       int64(job.Split.DampedTest),
		ArtifactDir: job.OutputDir,
		Status:      StatusFailed,
		CreatedAt:   time.Now().Unix(),
	}
	if report != nil && trainErr == nil {
		entry.Status = report.Status
	}
	if trainErr != nil {
		entry.Message = trainErr.Error()
	}
	query := `INSERT INTO TrainingRuns
		(RunID, Target, TelType, Entries, NTrain, NTest, ArtifactDir, Status, Message, CreatedAt)
		VALUES (:RunID, :Target, :TelType, :Entries, :NTrain, :NTest, :ArtifactDir, :Status, :Message, :CreatedAt)`
	if _, err := r.db.NamedExec(query, entry); err != nil {
		return fmt.Errorf("error inserting registry entry: %w", err)
	}
	return nil
}

// Entries returns the registry rows of one run ordered by telescope type.
func (r *Registry) Entries(runID string) ([]TrainingEntry, error) {
	var entries []TrainingEntry
	query := r.db.Rebind("SELECT * FROM TrainingRuns WHERE RunID = ? ORDER BY TelType")
	if err := r.db.Select(&entries, query, runID); err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	return entries, nil
}
