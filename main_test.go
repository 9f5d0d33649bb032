package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

const lesson = "page/testdata/lesson.html"

func executeCommand(t *testing.T, cmd string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, strings.Fields(cmd))
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func TestTreeCmd(t *testing.T) {
	out, err := executeCommand(t, "tree "+lesson)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "#document\n| <html>\n|   <head>\n|     <title>\n"))
	assert.Contains(t, out, `id="signup"`)

	_, err = executeCommand(t, "tree testdata/missing.html")
	assert.ErrorContains(t, err, "can't open page")
}

func TestDispatchCmdTable(t *testing.T) {
	out, err := executeCommand(t, "dispatch "+lesson+" --target home --base-url https://example.com/")
	require.NoError(t, err)

	assert.Contains(t, out, "EVENT: click at a#home\n")
	assert.Contains(t, out, "STATE: completed\n")
	assert.Contains(t, out, "DEFAULT PREVENTED: false\n")
	assert.Regexp(t, `NODE\s+PHASE\s+HANDLER\s+ERROR`, out)
	assert.Regexp(t, `nav#menu\s+bubbling\s+onclick`, out)
	assert.Regexp(t, `body\s+bubbling\s+onclick`, out)
	assert.Contains(t, out, "NAVIGATED: https://example.com/home")
}

func TestDispatchCmdJSON(t *testing.T) {
	out, err := executeCommand(t, "dispatch "+lesson+" --target blocked -o json")
	require.NoError(t, err)

	var r dispatchReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "a#blocked", r.Target)
	assert.True(t, r.DefaultPrevented)
	assert.False(t, r.DefaultPerformed)
	assert.Empty(t, r.Navigations)
	require.Len(t, r.Trace, 3)
	assert.Equal(t, traceEntry{Node: "a#blocked", Phase: "at-target", Handler: "onclick"}, r.Trace[0])
}

func TestDispatchCmdYAML(t *testing.T) {
	out, err := executeCommand(t, "dispatch "+lesson+" --target send -o yaml")
	require.NoError(t, err)

	var r dispatchReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.Equal(t, "button#send", r.Target)
	assert.Equal(t, "completed", r.State)
	assert.Empty(t, r.Submissions)
}

func TestDispatchCmdConfig(t *testing.T) {
	out, err := executeCommand(t, "dispatch "+lesson+" --target blocked -o json --config testdata/config.yml")
	require.NoError(t, err)

	var r dispatchReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Empty(t, r.Trace, "scripts are disabled")
	assert.Equal(t, []string{"/blocked"}, r.Navigations)
}

func TestDispatchCmdMetrics(t *testing.T) {
	out, err := executeCommand(t, "dispatch "+lesson+" --target stay --metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "STATE: aborted")
	assert.Contains(t, out, `dom_events_dispatched_total{kind="click",outcome="aborted"} 1`)
	assert.Contains(t, out, `dom_events_default_actions_total{decision="allowed",kind="click"} 1`)
}

func TestDispatchCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		err  string
	}{
		{"unknown target", "dispatch " + lesson + " --target nope", `no element with id "nope"`},
		{"missing target flag", "dispatch " + lesson, `required flag(s) "target" not set`},
		{"bad output", "dispatch " + lesson + " --target home -o xml", `unknown output format "xml"`},
		{"missing config", "dispatch " + lesson + " --target home --config testdata/nope.yml", "can't open file"},
		{"no page", "dispatch", "accepts 1 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.cmd)
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestDispatchCmdNested(t *testing.T) {
	out, err := executeCommand(t, "dispatch testdata/failing-submit.html --target go -o json")
	require.NoError(t, err)

	var r dispatchReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.True(t, r.DefaultPerformed)
	require.Len(t, r.Nested, 1)
	assert.Equal(t, "submit", r.Nested[0].Kind)
	assert.Equal(t, "form#search", r.Nested[0].Target)
	require.Len(t, r.Nested[0].Trace, 1)
	assert.Contains(t, r.Nested[0].Trace[0].Error, "nope")
	require.Len(t, r.Submissions, 1)
	assert.Equal(t, "/find", r.Submissions[0].Action)

	out, err = executeCommand(t, "dispatch testdata/failing-submit.html --target go")
	require.NoError(t, err)
	assert.Contains(t, out, "NESTED EVENT: submit at form#search")
	assert.Regexp(t, `form#search\s+at-target\s+onsubmit\s+.*nope`, out)
}

func TestTreeCmdGlobalFlags(t *testing.T) {
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, []string{"tree", lesson, "--debug"})
	root.SetErr(&errOut)
	require.NoError(t, root.Execute())
	assert.Contains(t, errOut.String(), "loaded page")
	assert.True(t, strings.HasPrefix(out.String(), "#document\n"))

	_, err := executeCommand(t, "tree "+lesson+" --config testdata/bad-config.yml")
	assert.ErrorContains(t, err, "invalid log_level")

	_, err = executeCommand(t, "tree "+lesson+" --config testdata/nope.yml")
	assert.ErrorContains(t, err, "can't open file")
}
