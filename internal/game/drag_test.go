package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragSourceJSON(t *testing.T) {
	sources := []DragSource{
		WasteSource{},
		ColumnSource{Col: 0, FromIndex: 0},
		ColumnSource{Col: 6, FromIndex: 12},
	}

	for _, src := range sources {
		t.Run(src.String(), func(t *testing.T) {
			data, err := json.Marshal(src)
			require.NoError(t, err)

			got, err := ParseDragSource(data)
			require.NoError(t, err)
			assert.Equal(t, src, got)
		})
	}
}

func TestParseDragSourceErrors(t *testing.T) {
	bad := []string{
		`{"type":"column"}`,
		`{"type":"column","col":1}`,
		`{"type":"column","col":7,"fromIndex":0}`,
		`{"type":"column","col":-1,"fromIndex":0}`,
		`{"type":"stock"}`,
		`{}`,
		`not json`,
	}

	for _, in := range bad {
		_, err := ParseDragSource([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestDragSessionJSON(t *testing.T) {
	d := DragSession{
		Cards:    []Card{up(Seven, Clubs)},
		Source:   ColumnSource{Col: 2, FromIndex: 3},
		Position: Point{X: 1, Y: 2},
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"cards": [{"id":"7C","suit":2,"rank":6,"faceUp":true}],
		"source": {"type":"column","col":2,"fromIndex":3},
		"position": {"x":1,"y":2}
	}`, string(data))
}
