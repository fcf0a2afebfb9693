package roomcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoomsCSVHeader(t *testing.T) {
	in := `Price,Name,Image_URL,Location,Description
1.5,Sea view loft,https://example.com/loft.jpg,Lisbon,"Two beds, balcony"
,,,,
2,Garden room,https://example.com/g.jpg,Porto,Quiet
`
	rooms, err := ParseRoomsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, fullFields(), rooms[0])
	assert.Equal(t, "Garden room", rooms[1].Name)
	assert.Equal(t, "2", rooms[1].Price)
}

func TestParseRoomsCSVPositional(t *testing.T) {
	in := "Loft,https://img,Nice,Lisbon,3\n\nAttic,https://img2,Small,Braga,0.4\n"
	rooms, err := ParseRoomsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, Fields{Name: "Attic", ImageURL: "https://img2", Description: "Small", Location: "Braga", Price: "0.4"}, rooms[1])

	_, err = ParseRoomsCSV(strings.NewReader("Loft,https://img,Nice\n"))
	assert.Error(t, err)
}

func TestParseRoomsJSON(t *testing.T) {
	in := `[
		{"name":"Sea view loft","imageUrl":"https://example.com/loft.jpg","description":"Two beds, balcony","location":"Lisbon","price":1.5},
		{"name":"Garden room","image":"https://example.com/g.jpg","description":"Quiet","location":"Porto","price":"2"},
		{}
	]`
	rooms, err := ParseRoomsJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, fullFields(), rooms[0])
	assert.Equal(t, "https://example.com/g.jpg", rooms[1].ImageURL)

	_, err = ParseRoomsJSON(strings.NewReader(`{"name":"x"}`))
	assert.Error(t, err)
}
