package engine

import (
	"path/filepath"

	"github.com/scidx/idx/descriptor"
)

// filePath computes the physical path of the file holding fileIndex for the
// given field and time step, nesting the filename template's rendering
// under the descriptor's directory, the field's name, and the time
// template's rendering, mirroring the reference layout's per-field,
// per-timestep directory structure.
func filePath(desc *descriptor.IdxFile, field descriptor.Field, timeStep int, fileIndex int64) (string, error) {
	rel, err := desc.FilenameTemplate.Path(fileIndex)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(desc.Path)
	timeDir := desc.TimeTemplate.Format(timeStep)

	return filepath.Join(dir, field.Name, timeDir, rel), nil
}
