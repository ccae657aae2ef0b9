package descriptor

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/scidx/idx/block"
	"github.com/scidx/idx/errs"
	"github.com/scidx/idx/hz"
	"github.com/scidx/idx/layout"
)

// Parse reads a v6 line-based IDX text descriptor from path.
func Parse(path string) (*IdxFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.FileNotFound, fmt.Sprintf("read descriptor %s", path), err)
	}

	f, err := parseLines(string(data))
	if err != nil {
		return nil, err
	}
	f.Path = path
	f.buildFieldIndex()

	return f, nil
}

func parseLines(text string) (*IdxFile, error) {
	f := &IdxFile{}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tag, rest, err := splitTag(line)
		if err != nil {
			return nil, err
		}

		switch tag {
		case "version":
			v, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, errs.Wrap(errs.ParseError, "parse version", err)
			}
			f.Version = v

		case "logic_to_physic":
			vals := strings.Fields(rest)
			if len(vals) != 16 {
				return nil, errs.Newf(errs.ParseError, "logic_to_physic expects 16 floats, got %d", len(vals))
			}
			for i, v := range vals {
				x, err := strconv.ParseFloat(v, 32)
				if err != nil {
					return nil, errs.Wrap(errs.ParseError, "parse logic_to_physic", err)
				}
				f.LogicToPhysic[i] = float32(x)
			}

		case "box":
			box, err := parseBox(rest)
			if err != nil {
				return nil, err
			}
			f.Box = box

		case "fields":
			fields, err := parseFields(scanner)
			if err != nil {
				return nil, err
			}
			f.Fields = fields

		case "bits":
			bs, err := hz.ParseBitString(strings.TrimSpace(rest))
			if err != nil {
				return nil, err
			}
			f.Bits = bs

		case "bitsperblock":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, errs.Wrap(errs.ParseError, "parse bitsperblock", err)
			}
			f.BitsPerBlock = n

		case "blocksperfile":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, errs.Wrap(errs.ParseError, "parse blocksperfile", err)
			}
			f.BlocksPerFile = n

		case "interleave block":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return nil, errs.Wrap(errs.ParseError, "parse interleave block", err)
			}
			f.InterleaveBlock = n

		case "time":
			begin, end, tmpl, err := parseTime(rest)
			if err != nil {
				return nil, err
			}
			f.TimeBegin = begin
			f.TimeEnd = end
			f.TimeTemplate = layout.TimeTemplate{Pattern: tmpl}

		case "filename_template":
			nt, err := parseFilenameTemplate(strings.TrimSpace(rest))
			if err != nil {
				return nil, err
			}
			f.FilenameTemplate = nt

		default:
			return nil, errs.Newf(errs.ParseError, "unknown descriptor section %q", tag)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.ParseError, "scan descriptor", err)
	}

	return f, nil
}

// splitTag splits a "(tag) rest" line into its tag and remainder.
func splitTag(line string) (string, string, error) {
	if !strings.HasPrefix(line, "(") {
		return "", "", errs.Newf(errs.ParseError, "expected '(' at start of line %q", line)
	}
	close := strings.Index(line, ")")
	if close < 0 {
		return "", "", errs.Newf(errs.ParseError, "missing ')' in line %q", line)
	}

	return line[1:close], line[close+1:], nil
}

func parseBox(rest string) (hz.Box, error) {
	vals := strings.Fields(rest)
	if len(vals) < 6 {
		return hz.Box{}, errs.Newf(errs.ParseError, "box expects at least 6 integers, got %d", len(vals))
	}

	ints := make([]int64, 6)
	for i := 0; i < 6; i++ {
		n, err := strconv.ParseInt(vals[i], 10, 64)
		if err != nil {
			return hz.Box{}, errs.Wrap(errs.ParseError, "parse box", err)
		}
		ints[i] = n
	}

	return hz.Box{
		From: hz.Vec3{X: ints[0], Y: ints[2], Z: ints[4]},
		To:   hz.Vec3{X: ints[1], Y: ints[3], Z: ints[5]},
	}, nil
}

// parseFields consumes "(fields)"'s blank-line-terminated block of
// "name type [+format] [+compression]" lines.
func parseFields(scanner *bufio.Scanner) ([]Field, error) {
	var fields []Field
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		f, err := parseFieldLine(line)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	return fields, nil
}

func parseFieldLine(line string) (Field, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return Field{}, errs.Newf(errs.ParseError, "malformed field line %q", line)
	}

	f := Field{Name: parts[0], Components: 1}

	typeTok := parts[1]
	if i := strings.IndexByte(typeTok, '*'); i >= 0 {
		n, err := strconv.Atoi(typeTok[i+1:])
		if err != nil {
			return Field{}, errs.Wrap(errs.ParseError, "parse field component count", err)
		}
		f.Components = n
		typeTok = typeTok[:i]
	}

	st, err := ParseScalarType(typeTok)
	if err != nil {
		return Field{}, err
	}
	f.Type = st

	for _, mod := range parts[2:] {
		mod = strings.TrimPrefix(mod, "+")
		switch mod {
		case "rowmajor", "RowMajor":
			f.Format = block.RowMajor
		case "hz", "Hz":
			f.Format = block.Hz
		case "none", "None":
			f.Compression = block.CompressionNone
		case "zip", "Zip":
			f.Compression = block.CompressionZip
		case "lz4", "LZ4":
			f.Compression = block.CompressionLZ4
		case "zstd", "Zstd":
			f.Compression = block.CompressionZstd
		case "jpg", "Jpg":
			f.Compression = block.CompressionJpg
		case "png", "Png":
			f.Compression = block.CompressionPng
		case "exr", "Exr":
			f.Compression = block.CompressionExr
		case "zfp", "Zfp":
			f.Compression = block.CompressionZfp
		default:
			return Field{}, errs.Newf(errs.ParseError, "unknown field modifier %q", mod)
		}
	}

	return f, nil
}

func parseTime(rest string) (begin, end int, tmpl string, err error) {
	parts := strings.Fields(rest)
	if len(parts) < 2 {
		return 0, 0, "", errs.Newf(errs.ParseError, "malformed time section %q", rest)
	}

	begin, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, "", errs.Wrap(errs.ParseError, "parse time begin", err)
	}
	end, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, "", errs.Wrap(errs.ParseError, "parse time end", err)
	}
	if len(parts) >= 3 {
		tmpl = parts[2]
	}

	return begin, end, tmpl, nil
}

// parseFilenameTemplate parses a template like "./%02x/%01x/%01x.bin" into
// its head path, hex-digit group widths, and extension.
func parseFilenameTemplate(s string) (layout.NameTemplate, error) {
	idx := strings.Index(s, "%")
	if idx < 0 {
		return layout.NameTemplate{}, errs.Newf(errs.ParseError, "filename_template %q has no %%0Nx slots", s)
	}

	head := s[:idx]
	head = strings.TrimSuffix(head, "/")
	if head == "" {
		head = "."
	}

	rest := s[idx:]
	var groups []int
	for len(rest) > 0 {
		if rest[0] != '%' {
			break
		}
		rest = rest[1:]
		j := 0
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j == 0 || rest[j] != 'x' {
			return layout.NameTemplate{}, errs.Newf(errs.ParseError, "malformed hex group in filename_template %q", s)
		}
		width, err := strconv.Atoi(rest[:j])
		if err != nil {
			return layout.NameTemplate{}, errs.Wrap(errs.ParseError, "parse filename_template width", err)
		}
		groups = append(groups, width)
		rest = rest[j+1:]
		rest = strings.TrimPrefix(rest, "/")

		if !strings.HasPrefix(rest, "%") {
			break
		}
	}

	ext := rest
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return layout.NameTemplate{Head: head, HexGroups: groups, Ext: ext}, nil
}
