package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const cells = `{"type":"short","value":12}
{"type":"bigdecimal","value":"1234.500"}

{"type":"exp","url":"http://host/rule.groovy","cache":true}
{"value":null}
`

func TestEncode(t *testing.T) {
	out, err := run(t, cells, "encode")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.JSONEq(t, `{"value":"12","type":"short","isUrl":false,"isCached":false}`, lines[0])
	assert.JSONEq(t, `{"value":"1234.5","type":"bigdecimal","isUrl":false,"isCached":false}`, lines[1])
	assert.JSONEq(t, `{"value":"http://host/rule.groovy","type":"exp","isUrl":true,"isCached":true}`, lines[2])
	assert.JSONEq(t, `{"value":null,"type":null,"isUrl":false,"isCached":false}`, lines[3])
}

func TestEncode_Collapse(t *testing.T) {
	out, err := run(t, `{"type":"short","value":12}`, "encode", "--collapse")
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"12","type":"long","isUrl":false,"isCached":false}`, out)
}

func TestDecode(t *testing.T) {
	out, err := run(t, cells, "decode")
	require.NoError(t, err)
	assert.Equal(t, "short\t12\nbigdecimal\t1,234.5\nexp\thttp://host/rule.groovy\nnull\tDefault\n", out)
}

func TestDecode_ReportsLine(t *testing.T) {
	_, err := run(t, "{\"type\":\"long\",\"value\":1}\n{\"type\":\"latlon\",\"value\":\"45.0\"}\n", "decode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestDisplayAndEdit(t *testing.T) {
	out, err := run(t, "", "display", "--type", "double", "1234567.25")
	require.NoError(t, err)
	assert.Equal(t, "1,234,567.25\n", out)

	out, err = run(t, "", "edit", "--type", "double", "1234567.25")
	require.NoError(t, err)
	assert.Equal(t, "1234567.25\n", out)

	_, err = run(t, "", "display", "--type", "boolean", "yes")
	assert.Error(t, err)
}

func TestStreamRoundTrip(t *testing.T) {
	frames, err := run(t, cells, "stream", "write")
	require.NoError(t, err)
	assert.Contains(t, frames, "@cell{v=1 seq=0 type=short len=2 crc=")

	out, err := run(t, frames, "stream", "read", "--values")
	require.NoError(t, err)
	assert.Equal(t, "12\n1,234.5\nhttp://host/rule.groovy\nDefault\n", out)

	out, err = run(t, frames, "stream", "read")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
}

func TestTemplateCommands(t *testing.T) {
	body := `<r xmlns="urn:r"><gsp:expression>$rates[state:input.state]</gsp:expression>${input.zip}</r>`

	out, err := run(t, body, "template", "scan")
	require.NoError(t, err)
	assert.Equal(t, "cubes: rates\nscope: state zip\n", out)

	out, err = run(t, body, "template", "rewrite")
	require.NoError(t, err)
	assert.Equal(t, `<r xmlns="urn:r"><gsp:expression>getFixedCubeCell('rates',[state:input.state])</gsp:expression>${input.zip}</r>`, out)

	out, err = run(t, body, "template", "assemble")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<r xmlns="urn:r"><gsp:scriptlet>`))
}

func TestTypesAndVersion(t *testing.T) {
	out, err := run(t, "", "types")
	require.NoError(t, err)
	assert.Contains(t, out, "integer")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 19)

	out, err = run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "cellc "+libVersion+"\n", out)
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "version")
	assert.Error(t, err)
}
