package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/SyrineLarbi/Daily-planner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func board() []model.Task {
	return []model.Task{
		{Title: "Gym", Start: "07:00", End: "08:00", Color: "#ff0000", Image: model.PlaceholderImage},
		{Title: "Shopping", Description: "<ul><li>eggs</li><li>milk</li></ul>", Color: "#0f0", Completed: true},
	}
}

func TestExport_JSON(t *testing.T) {
	out, err := NewExporter("Today", board()).Export("json")
	require.NoError(t, err)

	var tasks []model.Task
	require.NoError(t, json.Unmarshal(out, &tasks))
	assert.Equal(t, board(), tasks)
}

func TestExport_Markdown(t *testing.T) {
	out, err := NewExporter("Today", board()).Export("markdown")
	require.NoError(t, err)

	want := "# Today\n" +
		"\n- [ ] **Gym** (07:00 – 08:00)\n" +
		"\n- [x] **Shopping**\n" +
		"  - eggs\n" +
		"  - milk\n"
	assert.Equal(t, want, string(out))
}

func TestExport_PDF(t *testing.T) {
	out, err := NewExporter("Today", board()).Export("PDF")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := NewExporter("Today", nil).Export("docx")
	assert.ErrorContains(t, err, "unknown format")
}

func TestHexColor(t *testing.T) {
	r, g, b := hexColor("#7a66ff")
	assert.Equal(t, []int{0x7a, 0x66, 0xff}, []int{r, g, b})

	r, g, b = hexColor("#0f0")
	assert.Equal(t, []int{0, 255, 0}, []int{r, g, b})

	r, g, b = hexColor("teal")
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}
