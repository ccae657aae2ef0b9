package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameTemplatePath(t *testing.T) {
	tmpl := NameTemplate{
		Head:      "data",
		HexGroups: []int{2, 1, 1},
		Ext:       ".bin",
	}

	path, err := tmpl.Path(0x0a3)
	require.NoError(t, err)
	require.Equal(t, "data/a3/0/0.bin", filepathSlashes(path))
}

func TestNameTemplatePathZero(t *testing.T) {
	tmpl := NameTemplate{Head: ".", HexGroups: []int{2}, Ext: ".bin"}

	path, err := tmpl.Path(0)
	require.NoError(t, err)
	require.Equal(t, "00.bin", filepathSlashes(path))
}

func TestNameTemplatePathNegative(t *testing.T) {
	tmpl := NameTemplate{Head: ".", HexGroups: []int{2}, Ext: ".bin"}

	_, err := tmpl.Path(-1)
	require.Error(t, err)
}

func TestNameTemplatePathOverflow(t *testing.T) {
	tmpl := NameTemplate{Head: ".", HexGroups: []int{1}, Ext: ".bin"}

	_, err := tmpl.Path(256)
	require.Error(t, err)
}

func TestNameTemplateNoGroups(t *testing.T) {
	tmpl := NameTemplate{Head: ".", Ext: ".bin"}

	_, err := tmpl.Path(1)
	require.Error(t, err)
}

func TestTimeTemplateFormat(t *testing.T) {
	tmpl := TimeTemplate{Pattern: "time%06d"}

	require.Equal(t, "time000042", tmpl.Format(42))
}

// filepathSlashes normalizes path separators so the test asserts platform
// independently of filepath.Separator.
func filepathSlashes(p string) string {
	out := make([]rune, 0, len(p))
	for _, r := range p {
		if r == '\\' {
			r = '/'
		}
		out = append(out, r)
	}

	return string(out)
}
