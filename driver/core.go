// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

// GPU is the main interface to an underlying driver
// implementation.
// It is used to create other types and to issue
// commands. A GPU is obtained from a call to Driver.Open.
// None of its methods are safe for concurrent use.
type GPU interface {
	// Driver returns the Driver that owns the GPU.
	Driver() Driver

	// NewProgram compiles and links a new program from
	// vertex and fragment shader sources.
	NewProgram(vertex, fragment string) (Program, error)

	// NewBuffer creates a new vertex buffer containing
	// a copy of data.
	NewBuffer(data []float32) (Buffer, error)

	// NewVertexArray creates a new vertex array with no
	// attributes set.
	NewVertexArray() (VertexArray, error)

	// SetViewport sets the viewport bounds in pixels.
	SetViewport(vp Viewport)

	// SetClearColor sets the color used by Clear.
	SetClearColor(r, g, b, a float32)

	// SetDepthTest enables or disables depth testing.
	SetDepthTest(enabled bool)

	// SetCullMode sets the face culling mode.
	SetCullMode(mode CullMode)

	// Clear clears the color and depth of the default
	// framebuffer.
	Clear()

	// BindVertexArray binds the vertex array from which
	// Draw sources vertices. A nil va unbinds it.
	BindVertexArray(va VertexArray)

	// Draw draws count vertices, starting at first, from
	// the bound vertex array using the current program.
	Draw(topology Topology, first, count int)

	// Check reports errors that the underlying API
	// raised since the last call. The returned error,
	// if any, wraps ErrFatal.
	Check() error
}

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface may allocate external
// memory that is not managed by GC, so Destroy must be
// called explicitly to ensure such memory is deallocated.
type Destroyer interface {
	Destroy()
}

// Uniform is the location of a uniform variable in a
// Program.
type Uniform int

// Program is the interface that defines a linked GPU
// program with named uniform and attribute lookup.
type Program interface {
	Destroyer

	// Use makes the program current.
	// Set* methods must only be called on the current
	// program.
	Use()

	// Uniform returns the location of the named uniform.
	// It fails if the program has no active uniform
	// with such name.
	Uniform(name string) (Uniform, error)

	// Attrib returns the location of the named vertex
	// attribute.
	// It fails if the program has no active attribute
	// with such name.
	Attrib(name string) (int, error)

	// SetM4 sets a mat4 uniform from 16 column-major
	// values.
	SetM4(u Uniform, m []float32)

	// SetM3 sets a mat3 uniform from 9 column-major
	// values.
	SetM3(u Uniform, m []float32)

	// SetV3 sets a vec3 uniform.
	SetV3(u Uniform, v []float32)

	// SetF sets a float uniform.
	SetF(u Uniform, f float32)
}

// Buffer is the interface that defines a GPU vertex
// buffer. Its contents are immutable.
type Buffer interface {
	Destroyer

	// Len returns the number of float32 values in
	// the buffer.
	Len() int
}

// VertexArray is the interface that defines the mapping
// of vertex buffers to vertex attributes.
type VertexArray interface {
	Destroyer

	// SetAttrib sources the attribute at location nr from
	// buf, reading comps tightly packed float32 values per
	// vertex.
	SetAttrib(nr int, buf Buffer, comps int) error
}

// Topology is the type of primitive topologies,
// which determines how vertex data is assembled.
type Topology int

// Primitive topologies.
const (
	TPoint Topology = iota
	TLine
	TLnStrip
	TLnLoop
	TTriangle
	TTriStrip
)

// Viewport defines the bounds of a viewport.
type Viewport struct {
	X, Y, Width, Height int
}

// CullMode is the type of cull modes.
type CullMode int

// Cull modes.
const (
	CNone CullMode = iota
	CFront
	CBack
)
