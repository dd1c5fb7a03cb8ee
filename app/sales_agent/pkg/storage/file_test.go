package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/config"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	return s, dir
}

func TestReportsRoundTrip(t *testing.T) {
	ctx := context.Background()
	cases := map[string][]model.Report{
		"empty": {},
		"one":   {{CompanyName: "Acme", ReportContent: "1. Company Strategy\n- cloud"}},
		"unicode and duplicates": {
			{CompanyName: "Müller GmbH", ReportContent: "Straße — “quoted” 日本語 🚀"},
			{CompanyName: "Müller GmbH", ReportContent: ""},
			{CompanyName: "Beta", ReportContent: "line\n\nline"},
		},
	}
	for name, reports := range cases {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestStore(t)
			require.NoError(t, s.SaveReports(ctx, reports))
			got, err := s.LoadReports(ctx)
			require.NoError(t, err)
			assert.Equal(t, reports, got)
		})
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	for i := 0; i < 3; i++ {
		reports, err := s.LoadReports(ctx)
		require.NoError(t, err)
		assert.NotNil(t, reports)
		assert.Empty(t, reports)

		keywords, err := s.LoadKeywords(ctx)
		require.NoError(t, err)
		assert.NotNil(t, keywords)
		assert.Empty(t, keywords)
	}
}

func TestKeywordsTrimmedOnSave(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.SaveKeywords(ctx, []string{"  Acme  ", "", "Beta"}))
	got, err := s.LoadKeywords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Beta"}, got)
}

func TestSnapshotFormat(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t)

	require.NoError(t, s.SaveReports(ctx, []model.Report{{CompanyName: "Acme", ReportContent: "x"}}))
	data, err := os.ReadFile(filepath.Join(dir, ReportsFile))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"company_name":"Acme","report_content":"x"}]`, string(data))

	require.NoError(t, s.SaveReports(ctx, nil))
	data, err = os.ReadFile(filepath.Join(dir, ReportsFile))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestMalformedFileFailsLoudly(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ReportsFile), []byte(`[{"company_name":`), 0o644))
	_, err := s.LoadReports(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))

	require.NoError(t, os.WriteFile(filepath.Join(dir, AlertsFile), []byte(`{"not":"a list"}`), 0o644))
	_, err = s.LoadKeywords(ctx)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestNullFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	s, dir := newTestStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, AlertsFile), []byte(`null`), 0o644))
	got, err := s.LoadKeywords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestNew(t *testing.T) {
	s, err := New(config.StorageConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = New(config.StorageConfig{Driver: "postgres"})
	assert.Error(t, err)

	_, err = New(config.StorageConfig{Driver: "redis"})
	assert.Error(t, err)
}
