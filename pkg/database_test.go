package disp

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectToDatabaseUnknownDriver(t *testing.T) {
	_, err := ConnectToDatabase(DatabaseConfig{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRegistrySqliteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")
	db, err := ConnectToDatabase(DatabaseConfig{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	defer db.Close()

	registry, err := NewRegistry(db)
	require.NoError(t, err)
	_, err = uuid.Parse(registry.RunID)
	require.NoError(t, err)

	job := testJob(t, AngleDisp)
	report := &TrainingReport{TelType: job.TelType, Status: StatusManifestOnly}
	require.NoError(t, registry.Record(job, report, nil))

	// a second registry on the same database gets its own run
	other, err := NewRegistry(db)
	require.NoError(t, err)
	require.NoError(t, other.Record(job, nil, errors.New("no trainer")))

	entries, err := registry.Entries(registry.RunID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "BDTDisp", e.Target)
	assert.Equal(t, int64(201511619), e.TelType)
	assert.Equal(t, int64(1000), e.Entries)
	assert.Equal(t, int64(400), e.NTrain)
	assert.Equal(t, StatusManifestOnly, e.Status)
	assert.Equal(t, job.OutputDir, e.ArtifactDir)

	entries, err = other.Entries(other.RunID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, StatusFailed, entries[0].Status)
	assert.Equal(t, "no trainer", entries[0].Message)
}
