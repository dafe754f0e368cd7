package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/types"
)

func TestIndexCommand(t *testing.T) {
	corpusPath := writeCorpus(t, "jobs.csv", testCorpusCSV)

	stdout, _, err := executeCommand(t, "index", "--corpus", corpusPath, "--top", "3")
	require.NoError(t, err)

	var stats types.CorpusStats
	require.NoError(t, json.Unmarshal([]byte(stdout), &stats))
	assert.Equal(t, 4, stats.TotalJobs)
	assert.Len(t, stats.TopSkills, 3)
	assert.Len(t, stats.Version, 12)
}

func TestIndexCommand_Validate(t *testing.T) {
	good := writeCorpus(t, "jobs.json", testCorpusJSON)
	_, stderr, err := executeCommand(t, "index", "--corpus", good, "--validate")
	require.NoError(t, err)
	assert.Contains(t, stderr, "matches")

	bad := writeCorpus(t, "bad.json", `[{"skills": ["go"]}]`)
	_, stderr, err = executeCommand(t, "index", "--corpus", bad, "--validate")
	require.NoError(t, err, "schema problems are warnings")
	assert.Contains(t, stderr, "Warning")

	csvPath := writeCorpus(t, "jobs.csv", testCorpusCSV)
	_, _, err = executeCommand(t, "index", "--corpus", csvPath, "--validate")
	assert.Error(t, err)
}

func TestIndexCommand_Verbose(t *testing.T) {
	corpusPath := writeCorpus(t, "jobs.csv", testCorpusCSV)

	stdout, _, err := executeCommand(t, "index", "--corpus", corpusPath, "-v")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sql")
}
