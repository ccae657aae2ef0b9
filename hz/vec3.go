package hz

// Vec3 is a 3-component integer coordinate or extent, matching the
// reference format's Vector3i (x fastest-varying, then y, then z).
type Vec3 struct {
	X, Y, Z int64
}

// Get returns the component for axis a.
func (v Vec3) Get(a Axis) int64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// Set assigns the component for axis a.
func (v *Vec3) Set(a Axis, val int64) {
	switch a {
	case AxisX:
		v.X = val
	case AxisY:
		v.Y = val
	default:
		v.Z = val
	}
}

// Grid is a (from, to, stride) sample set: a box of inclusive bounds sampled
// every stride steps along each axis.
type Grid struct {
	From, To, Stride Vec3
}

// Dims returns the per-axis sample counts of the grid.
func (g Grid) Dims() Vec3 {
	var d Vec3
	for _, a := range axes {
		stride := g.Stride.Get(a)
		if stride <= 0 {
			stride = 1
		}
		d.Set(a, (g.To.Get(a)-g.From.Get(a))/stride+1)
	}

	return d
}

// SampleCount returns the total number of samples addressed by the grid.
func (g Grid) SampleCount() int64 {
	d := g.Dims()

	return d.X * d.Y * d.Z
}

// Box discards the grid's stride, returning its inclusive bounding box.
func (g Grid) Box() Box {
	return Box{From: g.From, To: g.To}
}

// Box is an inclusive, stride-1 axis-aligned bounding box in full-resolution
// coordinate space.
type Box struct {
	From, To Vec3
}

// Dims returns the per-axis sample counts of the box.
func (b Box) Dims() Vec3 {
	var d Vec3
	for _, a := range axes {
		d.Set(a, b.To.Get(a)-b.From.Get(a)+1)
	}

	return d
}

// Contains reports whether b entirely contains other.
func (b Box) Contains(other Box) bool {
	for _, a := range axes {
		if other.From.Get(a) < b.From.Get(a) || other.To.Get(a) > b.To.Get(a) {
			return false
		}
	}

	return true
}

// IntersectBox returns the overlap of a and b, or ok=false if they are
// disjoint on any axis.
func IntersectBox(a, b Box) (Box, bool) {
	var out Box
	for _, ax := range axes {
		lo := maxInt64(a.From.Get(ax), b.From.Get(ax))
		hi := minInt64(a.To.Get(ax), b.To.Get(ax))
		if lo > hi {
			return Box{}, false
		}
		out.From.Set(ax, lo)
		out.To.Set(ax, hi)
	}

	return out, true
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}

	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}

	return b
}
