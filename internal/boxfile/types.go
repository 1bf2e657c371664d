package boxfile

// API version and kind constants for Boxfile versioning.
const (
	// APIVersionV1 is the current API version for Boxfiles.
	APIVersionV1 = "boxes.io/v1"

	// KindStack identifies a Boxfile describing images and services.
	KindStack = "Stack"
)

// SupportedAPIVersions lists all API versions that can be loaded.
var SupportedAPIVersions = []string{APIVersionV1}

// SupportedKinds lists all valid Boxfile kinds.
var SupportedKinds = []string{KindStack}

// Boxfile is the decoded form of a stack definition.
type Boxfile struct {
	// APIVersion identifies the schema version (e.g., "boxes.io/v1").
	APIVersion string `yaml:"apiVersion,omitempty"`

	// Kind identifies the document type (e.g., "Stack").
	Kind string `yaml:"kind,omitempty"`

	// Version is the composition format version. Empty means the default.
	Version string `yaml:"version,omitempty"`

	// Images are the build manifests, in declaration order.
	Images []Image `yaml:"images,omitempty"`

	// Services are the composition services, in declaration order.
	Services []Service `yaml:"services,omitempty"`

	// dir is the directory the Boxfile was loaded from. Relative env_file
	// paths resolve against it.
	dir string
}

// Image describes one build manifest.
type Image struct {
	Name  string `yaml:"name"`
	From  string `yaml:"from"`
	Tag   string `yaml:"tag,omitempty"`
	Steps []Step `yaml:"steps,omitempty"`
}

// Step is one directive of an image. Exactly one field is set.
type Step struct {
	Run     *string           `yaml:"run,omitempty"`
	Copy    *Transfer         `yaml:"copy,omitempty"`
	Add     *Transfer         `yaml:"add,omitempty"`
	Workdir *string           `yaml:"workdir,omitempty"`
	User    *string           `yaml:"user,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	Expose  *int              `yaml:"expose,omitempty"`
	Cmd     []string          `yaml:"cmd,omitempty"`
}

// Transfer is the source and destination of a COPY or ADD step.
type Transfer struct {
	Src  string `yaml:"src"`
	Dest string `yaml:"dest"`
}

// Service describes one composition service.
type Service struct {
	// Name is the service name in the rendered document.
	Name string `yaml:"name"`

	// Image names an entry of Boxfile.Images.
	Image string `yaml:"image"`

	// Ports are port specs such as "8080:80" or "9000-9001". When empty
	// the image's exposed ports are used.
	Ports []string `yaml:"ports,omitempty"`

	// Environment holds overrides, applied in sorted key order.
	Environment map[string]string `yaml:"environment,omitempty"`

	// EnvFile lists dotenv files applied before Environment.
	EnvFile []string `yaml:"env_file,omitempty"`

	// DependsOn names other services. Cycles are allowed.
	DependsOn []string `yaml:"depends_on,omitempty"`
}

// Dir returns the directory the Boxfile was loaded from.
func (b *Boxfile) Dir() string {
	return b.dir
}
