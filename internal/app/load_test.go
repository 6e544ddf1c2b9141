package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apt-sources/internal/adapters"
	"apt-sources/internal/types"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	service := NewService()
	service.SourceFile = adapters.NewSourcesFileAdapter(filepath.Join(t.TempDir(), "apt-sources.lock"), true)
	return service
}

func writeSources(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestLoadAllIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, map[string]string{
		"a.sources": "Types: deb\nURIs: http://example.com\n",
		"b.sources": "",
		"c.sources": "Types: deb\nthis is not a field\n",
		"d.sources": "# comments only\n",
		"notes.txt": "ignored",
		"e.Sources": "Types: deb\n",
		"z.sources": "Types: deb-src\nSuites: noble\n\nTypes: deb\n",
	})

	service := newTestService(t)
	result, err := service.LoadAll(t.Context(), LoadAllRequest{Dir: dir})
	require.NoError(t, err)
	require.Len(t, result.Results, 5)

	records := result.Records()
	require.Len(t, records, 2)
	assert.Equal(t, filepath.Join(dir, "a.sources"), records[0].Path)
	want := []types.SourceEntry{
		{Field: types.FieldTypes, Label: "Types", Value: "deb"},
		{Field: types.FieldURIs, Label: "URIs", Value: "http://example.com"},
	}
	if diff := cmp.Diff(want, records[0].Entries()); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
	value, _ := records[1].Get(types.FieldTypes)
	assert.Equal(t, "deb-src", value)

	failures := result.Failures()
	require.Len(t, failures, 3)
	got := map[string]types.LoadFailureKind{}
	for _, failure := range failures {
		require.Error(t, failure.Err)
		assert.Nil(t, failure.Record)
		got[filepath.Base(failure.Path)] = failure.Kind
	}
	wantKinds := map[string]types.LoadFailureKind{
		"b.sources": types.LoadFailureEmpty,
		"c.sources": types.LoadFailureParse,
		"d.sources": types.LoadFailureEmpty,
	}
	if diff := cmp.Diff(wantKinds, got); diff != "" {
		t.Fatalf("unexpected failure kinds (-want +got):\n%s", diff)
	}
}

func TestLoadAllEmptyFileDoesNotAbortScan(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, map[string]string{
		"a.sources": "Types: deb\nURIs: http://example.com\n",
		"b.sources": "",
	})

	result, err := newTestService(t).LoadAll(t.Context(), LoadAllRequest{Dir: dir})
	require.NoError(t, err)
	require.Len(t, result.Records(), 1)
	require.Len(t, result.Failures(), 1)
	failure := result.Failures()[0]
	assert.Equal(t, filepath.Join(dir, "b.sources"), failure.Path)
	if diff := cmp.Diff(errbuilder.CodeNotFound, errbuilder.CodeOf(failure.Err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
}

func TestLoadAllDirectoryErrors(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		wantCode errbuilder.ErrCode
	}{
		{name: "empty", dir: "", wantCode: errbuilder.CodeInvalidArgument},
		{name: "missing", dir: filepath.Join(os.TempDir(), "apt-sources-missing-dir", "x"), wantCode: errbuilder.CodeNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(t).LoadAll(t.Context(), LoadAllRequest{Dir: tt.dir})
			require.Error(t, err)
			if diff := cmp.Diff(tt.wantCode, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, map[string]string{
		"a.sources": "Suites: noble\nSuites: jammy\nX-Custom: 1\n",
		"b.sources": "",
	})
	service := newTestService(t)

	record, err := service.Load(t.Context(), LoadRequest{Path: filepath.Join(dir, "a.sources")})
	require.NoError(t, err)
	value, ok := record.Get(types.FieldSuites)
	require.True(t, ok)
	assert.Equal(t, "noble", value)
	assert.Equal(t, 1, record.Len())

	_, err = service.Load(t.Context(), LoadRequest{Path: filepath.Join(dir, "b.sources")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	_, err = service.Load(t.Context(), LoadRequest{Path: " "})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
