package scenario

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/graph-guard/assoclist/pkg/alloc"
	"github.com/graph-guard/assoclist/pkg/container/assoclist"
	plog "github.com/phuslu/log"
)

// Pair is the pair type of the replayed list.
type Pair = assoclist.Pair[string, string]

// Runner replays steps on a single list.
type Runner struct {
	list   *assoclist.List[string, string]
	budget *alloc.Budget[Pair]
	log    *plog.Logger
	steps  int
}

// NewRunner creates a runner with an empty list configured by s.
// Steps of s are not executed. log may be nil.
// Returns *ErrorAborted if the initial capacity can't be allocated.
func NewRunner(s *Scenario, log *plog.Logger) (*Runner, error) {
	r := &Runner{log: log}
	opts := []assoclist.Option[string, string]{
		assoclist.WithLogger[string, string](log),
	}
	if s.Budget != nil {
		r.budget = alloc.NewBudget[Pair](*s.Budget)
		opts = append(opts, assoclist.WithAllocator[string, string](r.budget))
	}
	r.list = assoclist.New(opts...)
	if err := r.list.TryReserveExact(s.Capacity); err != nil {
		return nil, &ErrorAborted{Step: -1, Op: opNew, Cause: err}
	}
	return r, nil
}

// List returns the replayed list.
func (r *Runner) List() *assoclist.List[string, string] { return r.list }

// Budget returns the bounded allocator or nil if the heap is used.
func (r *Runner) Budget() *alloc.Budget[Pair] { return r.budget }

// Exec executes a single step and returns its output line.
// An error is returned when an operation treating allocation
// failure as fatal fails. The list is left unchanged in this case.
func (r *Runner) Exec(s Step) (out string, err error) {
	index := r.steps
	r.steps++
	defer func() {
		if p := recover(); p != nil {
			err = aborted(p, index, s.Op)
		}
	}()

	l := r.list
	switch s.Op {
	case OpInsert:
		if prev, replaced := l.Insert(s.Key, s.Value); replaced {
			return s.String() + ": replaced " + prev, nil
		}
		return s.String() + ": new", nil
	case OpRemove:
		if v, ok := l.Remove(s.Key); ok {
			return s.String() + ": " + v, nil
		}
		return s.String() + ": absent", nil
	case OpGet:
		if v, ok := l.Get(s.Key); ok {
			return s.String() + ": " + v, nil
		}
		return s.String() + ": absent", nil
	case OpContains:
		return s.String() + ": " + strconv.FormatBool(l.ContainsKey(s.Key)), nil
	case OpReserve:
		l.Reserve(s.N)
	case OpReserveExact:
		l.ReserveExact(s.N)
	case OpTryReserve:
		if err := l.TryReserve(s.N); err != nil {
			return s.String() + ": error: " + Classify(err), nil
		}
	case OpTryReserveExact:
		if err := l.TryReserveExact(s.N); err != nil {
			return s.String() + ": error: " + Classify(err), nil
		}
	case OpShrink:
		l.Shrink(s.N)
	case OpShrinkToFit:
		l.ShrinkToFit()
	case OpClear:
		l.Clear()
	case OpDump:
		return fmt.Sprintf(
			"%s: %s len=%d cap=%d", s.String(), l.String(), l.Len(), l.Cap(),
		), nil
	default:
		return "", errors.Newf("unknown op %q", s.Op)
	}
	return s.String() + ": cap=" + strconv.Itoa(l.Cap()), nil
}

// aborted converts the panic value p of a failed step into
// *ErrorAborted. Anything but an allocation failure is re-panicked.
func aborted(p any, step int, op string) error {
	cause, ok := p.(error)
	if !ok || allocClass(cause) == nil {
		panic(p)
	}
	return &ErrorAborted{Step: step, Op: op, Cause: cause}
}

func allocClass(err error) error {
	for _, class := range []error{
		alloc.ErrCapacityOverflow,
		alloc.ErrExhausted,
		alloc.ErrInvalidSize,
	} {
		if errors.Is(err, class) {
			return class
		}
	}
	return nil
}

// Classify returns the message of the allocation
// error class err belongs to.
func Classify(err error) string {
	if class := allocClass(err); class != nil {
		return class.Error()
	}
	return err.Error()
}

// Run replays all steps of s and reports the final state.
// The run stops at the first aborted step.
func Run(s *Scenario, log *plog.Logger) (*Report, error) {
	r, err := NewRunner(s, log)
	if err != nil {
		return nil, err
	}
	outputs := make([]string, 0, len(s.Steps))
	for _, st := range s.Steps {
		out, err := r.Exec(st)
		if err != nil {
			return nil, err
		}
		if log != nil {
			log.Info().Str("step", st.String()).Msg(out)
		}
		outputs = append(outputs, out)
	}
	return NewReport(r.List(), outputs), nil
}
