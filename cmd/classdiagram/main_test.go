package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
	"github.com/dd0wney/cluso-classdiagram/pkg/workbench"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "classdiagram.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_StartupFailureIsLogged(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	logPath := filepath.Join(t.TempDir(), "classdiagram.log")
	cfgPath := writeConfig(t, `
seed:
  - name: Broken
    attributes:
      - {visibility: "+", name: x, type: int}
      - {visibility: "-", name: x, type: string}
`)

	err := run(context.Background(), options{configPath: cfgPath, logPath: logPath})
	require.Error(t, err)
	assert.ErrorIs(t, err, uml.ErrDuplicateName)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"startup failed"`)
}

func TestRun_BadFlagsReturnErrors(t *testing.T) {
	ctx := context.Background()

	err := run(ctx, options{configPath: filepath.Join(t.TempDir(), "missing.yaml"), dump: true})
	assert.Error(t, err)

	err = run(ctx, options{history: "xml", dump: true})
	assert.Error(t, err)

	err = run(ctx, options{query: `{ nosuchfield }`})
	assert.Error(t, err)
}

func newWorkbench(t *testing.T) *workbench.Workbench {
	t.Helper()
	wb, err := workbench.New(nil)
	require.NoError(t, err)
	t.Cleanup(wb.Close)
	return wb
}

func TestDumpModel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dumpModel(&buf, newWorkbench(t)))

	var out struct {
		Class         string            `json:"class"`
		NodeDataArray []json.RawMessage `json:"nodeDataArray"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "GraphLinksModel", out.Class)
	assert.Len(t, out.NodeDataArray, 1)
}

func TestRunQuery(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runQuery(context.Background(), &buf, newWorkbench(t), `{ classes { name } }`))

	var out struct {
		Data struct {
			Classes []struct {
				Name string `json:"name"`
			} `json:"classes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Data.Classes, 1)
	assert.Equal(t, "Example", out.Data.Classes[0].Name)
}
