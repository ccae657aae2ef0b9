package descriptor

import (
	"fmt"
	"os"
	"strings"

	"github.com/scidx/idx/block"
	"github.com/scidx/idx/errs"
	"github.com/scidx/idx/layout"
)

// Write serializes f to path as a v6 line-based IDX text descriptor.
func Write(path string, f *IdxFile) error {
	if err := os.WriteFile(path, []byte(f.text()), 0o644); err != nil {
		return errs.Wrap(errs.InvalidIdxFile, fmt.Sprintf("write descriptor %s", path), err)
	}

	return nil
}

func (f *IdxFile) text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "(version) %d\n", f.Version)

	fmt.Fprint(&b, "(logic_to_physic)")
	for _, v := range f.LogicToPhysic {
		fmt.Fprintf(&b, " %g", v)
	}
	fmt.Fprint(&b, "\n")

	fmt.Fprintf(&b, "(box) %d %d %d %d %d %d 0 0 0 0\n",
		f.Box.From.X, f.Box.To.X, f.Box.From.Y, f.Box.To.Y, f.Box.From.Z, f.Box.To.Z)

	fmt.Fprint(&b, "(fields)\n")
	for _, field := range f.Fields {
		fmt.Fprint(&b, field.Name, " ", field.Type.String())
		if field.Components > 1 {
			fmt.Fprintf(&b, "*%d", field.Components)
		}
		if field.Format != block.RowMajor {
			fmt.Fprintf(&b, " +%s", formatToken(field.Format))
		}
		if field.Compression != block.CompressionNone {
			fmt.Fprintf(&b, " +%s", compressionToken(field.Compression))
		}
		fmt.Fprint(&b, "\n")
	}
	fmt.Fprint(&b, "\n")

	fmt.Fprintf(&b, "(bits) %sV\n", f.Bits.String())
	fmt.Fprintf(&b, "(bitsperblock) %d\n", f.BitsPerBlock)
	fmt.Fprintf(&b, "(blocksperfile) %d\n", f.BlocksPerFile)
	fmt.Fprintf(&b, "(interleave block) %d\n", f.InterleaveBlock)
	fmt.Fprintf(&b, "(time) %d %d %s\n", f.TimeBegin, f.TimeEnd, f.TimeTemplate.Pattern)
	fmt.Fprintf(&b, "(filename_template) %s\n", filenameTemplateText(f.FilenameTemplate))

	return b.String()
}

func formatToken(fmtVal block.Format) string {
	if fmtVal == block.Hz {
		return "hz"
	}

	return "rowmajor"
}

func compressionToken(c block.CompressionTag) string {
	return strings.ToLower(c.String())
}

func filenameTemplateText(nt layout.NameTemplate) string {
	var b strings.Builder
	b.WriteString(nt.Head)
	if !strings.HasSuffix(nt.Head, "/") {
		b.WriteString("/")
	}
	for _, w := range nt.HexGroups {
		fmt.Fprintf(&b, "%%0%dx/", w)
	}

	return strings.TrimSuffix(b.String(), "/") + nt.Ext
}
