package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handy-recon/internal/domain"
)

type fakeInvestigator struct {
	calls []string
	fail  map[string]error
}

func (f *fakeInvestigator) Investigate(_ context.Context, name string) (*domain.InvestigationReport, error) {
	f.calls = append(f.calls, name)
	if err := f.fail[name]; err != nil {
		return nil, err
	}
	return &domain.InvestigationReport{
		OperationID: "op_1_" + name,
		Username:    name,
		Scan:        domain.ScanReport{Username: name, Outcomes: map[string]domain.ProbeOutcome{}},
		Risk:        domain.RiskAssessment{Score: 0.5, Level: domain.RiskMedium},
	}, nil
}

type harness struct {
	fake   *fakeInvestigator
	dir    string
	stdout bytes.Buffer
	stderr bytes.Buffer
	closed bool
}

func newHarness(t *testing.T) *harness {
	return &harness{
		fake: &fakeInvestigator{fail: map[string]error{}},
		dir:  filepath.Join(t.TempDir(), "results"),
	}
}

func (h *harness) run(stdin string, args ...string) error {
	load := func(bool) (*environment, error) {
		return &environment{
			investigator: h.fake,
			resultsDir:   h.dir,
			close:        func() { h.closed = true },
		}, nil
	}
	cmd := newRootCommand(strings.NewReader(stdin), &h.stdout, &h.stderr, load)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestSingle_JSON(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("", "john_doe"))

	var rep domain.InvestigationReport
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &rep))
	assert.Equal(t, "john_doe", rep.Username)
	assert.True(t, h.closed)

	_, err := os.Stat(h.dir)
	assert.True(t, os.IsNotExist(err), "nothing should be saved without --save")
}

func TestSingle_TextAndSave(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("", "john_doe", "--output", "text", "--save"))

	assert.Contains(t, h.stdout.String(), "Investigation: john_doe")
	assert.NotContains(t, h.stdout.String(), "\033[")
	assert.FileExists(t, filepath.Join(h.dir, "john_doe_op_1_john_doe.json"))
	assert.Contains(t, h.stderr.String(), "saved ")
}

func TestSingle_StageFailure(t *testing.T) {
	h := newHarness(t)
	h.fake.fail["john_doe"] = domain.WrapStage(domain.StageIntelligenceGathering, domain.ErrProviderUnavailable)

	err := h.run("", "john_doe")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "intelligence_gathering")
	assert.Empty(t, h.stdout.String())
}

func TestInvalidFlags(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("", "john_doe", "--output", "yaml"))
	assert.Error(t, h.run("", "john_doe", "--batch", "file.txt"))
	assert.Error(t, h.run("", "a", "b"))
	assert.Empty(t, h.fake.calls)
}

func TestBatch(t *testing.T) {
	h := newHarness(t)
	h.fake.fail["admin123"] = domain.WrapStage(domain.StageCorrelation, domain.ErrProviderUnavailable)

	list := filepath.Join(t.TempDir(), "users.txt")
	require.NoError(t, os.WriteFile(list, []byte("# targets\ntest_user\n\nadmin123\njohn_doe\n"), 0o600))

	err := h.run("", "--batch", list)
	require.Error(t, err)
	assert.EqualError(t, err, "1 of 3 investigations failed")

	assert.Equal(t, []string{"test_user", "admin123", "john_doe"}, h.fake.calls)
	assert.Contains(t, h.stdout.String(), "test_user: medium risk")
	assert.Contains(t, h.stdout.String(), "john_doe: medium risk")
	assert.Contains(t, h.stderr.String(), "admin123: investigation failed")
	assert.Contains(t, h.stderr.String(), "2/3 investigations completed")
	assert.FileExists(t, filepath.Join(h.dir, "test_user_op_1_test_user.json"))
	assert.NoFileExists(t, filepath.Join(h.dir, "admin123_op_1_admin123.json"))
}

func TestBatch_AllSucceed(t *testing.T) {
	h := newHarness(t)

	list := filepath.Join(t.TempDir(), "users.txt")
	require.NoError(t, os.WriteFile(list, []byte("alice\nbob\n"), 0o600))

	require.NoError(t, h.run("", "--batch", list))
	assert.Contains(t, h.stderr.String(), "2/2 investigations completed")
}

func TestBatch_MissingFile(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("", "--batch", filepath.Join(t.TempDir(), "missing.txt")))
}

func TestInteractive(t *testing.T) {
	h := newHarness(t)
	h.fake.fail["bad"] = domain.WrapStage(domain.StagePatternAnalysis, domain.ErrInvalidUsername)

	require.NoError(t, h.run("alice\n\nbad\nbob\nquit\ncarol\n"))

	assert.Equal(t, []string{"alice", "bad", "bob"}, h.fake.calls)
	assert.Contains(t, h.stdout.String(), "Investigation: alice")
	assert.Contains(t, h.stdout.String(), "Investigation: bob")
	assert.Contains(t, h.stderr.String(), "bad: investigation failed")
	assert.NotContains(t, h.stdout.String(), "username>")
}

func TestInteractive_EOF(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("alice"))
	assert.Equal(t, []string{"alice"}, h.fake.calls)
}
