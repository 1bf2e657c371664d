package directive

import (
	"strconv"
	"strings"
)

// DefaultTag is the tag used by NewBaseImage.
const DefaultTag = "latest"

// Directive is a single build manifest instruction.
type Directive interface {
	// Render returns the manifest text for the directive, without a
	// trailing newline.
	Render() string

	// sealed keeps the variant set closed to this package.
	sealed()
}

// BaseImage is the FROM instruction.
type BaseImage struct {
	Repository string
	Tag        string
}

// NewBaseImage returns a BaseImage for repository tagged DefaultTag.
func NewBaseImage(repository string) BaseImage {
	return BaseImage{Repository: repository, Tag: DefaultTag}
}

// Reference returns the repository:tag pair.
func (b BaseImage) Reference() string {
	return b.Repository + ":" + b.Tag
}

func (b BaseImage) Render() string {
	return "FROM " + b.Reference()
}

// RunCommand is the RUN instruction.
type RunCommand struct {
	Command string
}

func (r RunCommand) Render() string {
	return "RUN " + r.Command
}

// CopyFile is the COPY instruction.
type CopyFile struct {
	Source string
	Dest   string
}

func (c CopyFile) Render() string {
	return "COPY " + c.Source + " " + c.Dest
}

// AddFile is the ADD instruction.
type AddFile struct {
	Source string
	Dest   string
}

func (a AddFile) Render() string {
	return "ADD " + a.Source + " " + a.Dest
}

// SetWorkdir is the WORKDIR instruction.
type SetWorkdir struct {
	Dir string
}

func (w SetWorkdir) Render() string {
	return "WORKDIR " + w.Dir
}

// SetUser is the USER instruction.
type SetUser struct {
	User string
}

func (u SetUser) Render() string {
	return "USER " + u.User
}

// ExposePort is the EXPOSE instruction.
type ExposePort struct {
	Port int
}

func (e ExposePort) Render() string {
	return "EXPOSE " + strconv.Itoa(e.Port)
}

// EntryCommand is the CMD instruction in exec form.
type EntryCommand struct {
	args []string
}

// NewEntryCommand returns an EntryCommand holding a copy of args.
func NewEntryCommand(args ...string) EntryCommand {
	return EntryCommand{args: append([]string(nil), args...)}
}

// Args returns a copy of the command arguments.
func (c EntryCommand) Args() []string {
	return append([]string(nil), c.args...)
}

func (c EntryCommand) Render() string {
	quoted := make([]string, len(c.args))
	for i, arg := range c.args {
		quoted[i] = `"` + arg + `"`
	}
	return "CMD [" + strings.Join(quoted, ", ") + "]"
}

func (BaseImage) sealed()    {}
func (RunCommand) sealed()   {}
func (CopyFile) sealed()     {}
func (AddFile) sealed()      {}
func (SetWorkdir) sealed()   {}
func (SetUser) sealed()      {}
func (ExposePort) sealed()   {}
func (EntryCommand) sealed() {}
func (*Env) sealed()         {}
