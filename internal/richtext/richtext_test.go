package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMarkdown_List(t *testing.T) {
	html, err := FromMarkdown("- eggs\n- milk")
	require.NoError(t, err)

	assert.Contains(t, html, "<ul>")
	assert.Contains(t, html, "<li>eggs</li>")
	assert.Contains(t, html, "<li>milk</li>")
}

func TestFromMarkdown_Empty(t *testing.T) {
	html, err := FromMarkdown("  \n")
	require.NoError(t, err)
	assert.Equal(t, "", html)
}

func TestFromMarkdown_DropsRawHTML(t *testing.T) {
	html, err := FromMarkdown(`<script>alert(1)</script>`)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestLines(t *testing.T) {
	lines := Lines(`Warm up<ul><li>squats</li><li>push <b>ups</b></li></ul><p>stretch</p>`)

	assert.Equal(t, []string{"Warm up", "• squats", "• push ups", "stretch"}, lines)
}

func TestLines_Nested(t *testing.T) {
	lines := Lines(`<ul><li>a<ul><li>b</li></ul></li><li>c</li></ul>`)

	assert.Equal(t, []string{"• a", "  • b", "• c"}, lines)
}

func TestLines_BreaksAndEmpty(t *testing.T) {
	assert.Equal(t, []string{"one", "two"}, Lines("one<br>two"))
	assert.Nil(t, Lines(""))
	assert.Nil(t, Lines("<ul><li><br></li></ul>"))
}

func TestToMarkdown_RoundTrip(t *testing.T) {
	html, err := FromMarkdown("- eggs\n- milk")
	require.NoError(t, err)

	assert.Equal(t, "- eggs\n- milk", ToMarkdown(html))
}

func TestSanitize(t *testing.T) {
	out := Sanitize(`<ul><li onclick="steal()">ok</li></ul><script>alert(1)</script><img src=x onerror=alert(1)>`)

	assert.Contains(t, out, "<li>ok</li>")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "onerror")
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "• a\n• b", PlainText("<ul><li>a</li><li>b</li></ul>"))
}
