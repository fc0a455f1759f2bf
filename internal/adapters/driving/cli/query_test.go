package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryAdd_AndList(t *testing.T) {
	buf, _ := setupTestCLI(t)

	require.NoError(t, execute("query", "add", "release date", "--user", "alice"))
	assert.Contains(t, buf.String(), `Watching "release date" for alice.`)

	buf.Reset()
	require.NoError(t, execute("query", "list", "--user", "alice"))
	assert.Contains(t, buf.String(), `"release date"`)
	assert.Contains(t, buf.String(), "Total: 1")
}

func TestQueryAdd_RequiresUser(t *testing.T) {
	setupTestCLI(t)

	err := execute("query", "add", "release")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user given")
}

func TestQueryAdd_RejectsEmptyText(t *testing.T) {
	setupTestCLI(t)

	err := execute("query", "add", "   ", "--user", "alice")
	assert.Error(t, err)
}

func TestQueryAdd_RejectsDuplicate(t *testing.T) {
	setupTestCLI(t)

	require.NoError(t, execute("query", "add", "release", "--user", "alice"))
	err := execute("query", "add", "release", "--user", "alice")
	assert.Error(t, err)
}

func TestQueryRemove(t *testing.T) {
	buf, _ := setupTestCLI(t)

	require.NoError(t, execute("query", "add", "release", "--user", "alice"))
	buf.Reset()

	require.NoError(t, execute("query", "remove", "release", "--user", "alice"))
	assert.Contains(t, buf.String(), `Stopped watching "release" for alice.`)

	buf.Reset()
	require.NoError(t, execute("query", "list", "--user", "alice"))
	assert.Contains(t, buf.String(), "No queries for alice.")
}

func TestQueryRemove_NotFound(t *testing.T) {
	setupTestCLI(t)

	err := execute("query", "remove", "never added", "--user", "alice")
	assert.Error(t, err)
}

func TestQueryUsers(t *testing.T) {
	buf, _ := setupTestCLI(t)

	require.NoError(t, execute("query", "add", "release", "--user", "alice"))
	require.NoError(t, execute("query", "add", "deadline", "--user", "bob"))
	buf.Reset()

	require.NoError(t, execute("query", "users"))
	assert.Contains(t, buf.String(), "alice")
	assert.Contains(t, buf.String(), "bob")
}

func TestQueryUsers_Empty(t *testing.T) {
	buf, _ := setupTestCLI(t)

	require.NoError(t, execute("query", "users"))
	assert.Contains(t, buf.String(), "No users are watching anything.")
}

func TestQueryCmds_NotConfigured(t *testing.T) {
	_, _ = setupTestCLI(t)
	clearDependencies()

	err := execute("query", "add", "release", "--user", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query service not configured")
}
