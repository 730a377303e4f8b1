package filedupe

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ActionKind selects what is done with each confirmed-duplicate group.
type ActionKind int

const (
	// List reports each group without touching the filesystem.
	List ActionKind = iota
	// Hardlink consolidates each group onto one inode per device.
	Hardlink
	// ExternalCommand runs a caller-supplied program once per group with
	// the group's paths appended to its arguments.
	ExternalCommand
)

// Action is the immutable per-run configuration consumed by a Dispatcher.
// Exactly one Action applies to every group of a run.
type Action struct {
	Kind    ActionKind
	DryRun  bool   // Hardlink only
	Program string // ExternalCommand only
	Args    []string
}

// Dispatcher applies one Action uniformly to every confirmed-duplicate
// group. The report stream is separate from the diagnostic log.
type Dispatcher struct {
	action Action
	linker *Linker
	out    io.Writer
}

// NewDispatcher returns a Dispatcher writing its report to out and
// performing any mutation through d.
func NewDispatcher(action Action, d Driver, out io.Writer, log *logrus.Entry) *Dispatcher {
	return &Dispatcher{
		action: action,
		linker: NewLinker(d, action.DryRun, log),
		out:    out,
	}
}

// Dispatch handles one group. The returned byte count is meaningful only
// for the Hardlink action. A returned error is fatal for the whole run: it
// signals a misconfigured action, not a per-file condition.
func (dp *Dispatcher) Dispatch(group []*File) (int64, error) {
	switch dp.action.Kind {
	case Hardlink:
		return dp.linker.LinkGroup(group), nil
	case ExternalCommand:
		return 0, dp.execGroup(group)
	default:
		return 0, dp.listGroup(group)
	}
}

func (dp *Dispatcher) listGroup(group []*File) error {
	w := tabwriter.NewWriter(dp.out, 0, 2, 2, ' ', 0)
	for _, f := range group {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", f.Nlink, f.Inode, humanize.IBytes(uint64(f.Size)), f.Path)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(dp.out)
	return err
}

func (dp *Dispatcher) execGroup(group []*File) error {
	args := append([]string{}, dp.action.Args...)
	for _, f := range group {
		args = append(args, f.Path)
	}

	cmd := exec.Command(dp.action.Program, args...)
	cmd.Stdout = dp.out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The program ran; its exit status is its own business.
			return nil
		}
		return errors.Wrapf(err, "exec %s", dp.action.Program)
	}
	return nil
}
