package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	// Execute calls os.Exit on error, so only check it exists
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsVariables(t *testing.T) {
	assert.Equal(t, "godatagen.yaml", cfgFile, "cfgFile should default to godatagen.yaml")
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFormat)

	assert.Equal(t, int64(0), seed)
	assert.Equal(t, 0, customers)
	assert.Equal(t, 0, addresses)
	assert.Equal(t, 0, jobs)
	assert.Equal(t, 0, transactions)
	assert.Equal(t, 0, batchSize)

	assert.False(t, noColor)
	assert.False(t, generateExport)
	assert.Equal(t, "", generateOut)
	assert.False(t, loadDrop)
	assert.Equal(t, "", loadFrom)
	assert.Equal(t, "", loadVerify)
	assert.False(t, initForce)
}

// useTestEnv points the CLI at a config file in a temp dir, captures output
// and restores every package variable the commands read.
func useTestEnv(t *testing.T, configYAML string) (dir string, out *bytes.Buffer) {
	t.Helper()

	origCfgFile, origLogLevel, origLogFormat := cfgFile, logLevel, logFormat
	origSeed := seed
	origCustomers, origAddresses, origJobs, origTransactions, origBatchSize := customers, addresses, jobs, transactions, batchSize
	origExport, origOut := generateExport, generateOut
	origDrop, origFrom, origVerify := loadDrop, loadFrom, loadVerify
	origForce, origSkipTarget := initForce, validateSkipTarget
	origColor := color.Enable
	t.Cleanup(func() {
		cfgFile, logLevel, logFormat = origCfgFile, origLogLevel, origLogFormat
		seed = origSeed
		customers, addresses, jobs, transactions, batchSize = origCustomers, origAddresses, origJobs, origTransactions, origBatchSize
		generateExport, generateOut = origExport, origOut
		loadDrop, loadFrom, loadVerify = origDrop, origFrom, origVerify
		initForce, validateSkipTarget = origForce, origSkipTarget
		color.Enable = origColor
		resetOutputWriter()
	})

	dir = t.TempDir()
	cfgFile = filepath.Join(dir, "godatagen.yaml")
	if configYAML != "" {
		require.NoError(t, os.WriteFile(cfgFile, []byte(configYAML), 0o644))
	}

	color.Enable = false
	out = &bytes.Buffer{}
	setOutputWriter(out)
	return dir, out
}

// useSmallConfig is useTestEnv with smallConfig written to the config file.
func useSmallConfig(t *testing.T) (dir string, out *bytes.Buffer) {
	t.Helper()
	dir, out = useTestEnv(t, "")
	require.NoError(t, os.WriteFile(cfgFile, []byte(smallConfig(dir)), 0o644))
	return dir, out
}

// smallConfig returns a config with a sqlite target in dir and small counts.
func smallConfig(dir string) string {
	return `target:
  driver: sqlite
  path: ` + filepath.Join(dir, "data.db") + `
generation:
  customers: 6
  addresses: 4
  jobs: 3
  transactions: 10
  seed: 42
load:
  batch_size: 4
export:
  directory: ` + filepath.Join(dir, "out") + `
logging:
  level: error
  format: json
`
}
