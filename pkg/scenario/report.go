package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	humanize "github.com/dustin/go-humanize"
	"github.com/graph-guard/assoclist/pkg/alloc"
	"github.com/graph-guard/assoclist/pkg/container/assoclist"
	"github.com/zeebo/xxh3"
)

// Report is the final state of a replayed list.
type Report struct {
	Steps  []string     `json:"steps"`
	Pairs  []ReportPair `json:"pairs"`
	Len    int          `json:"len"`
	Cap    int          `json:"cap"`
	Size   string       `json:"size"`
	Digest string       `json:"digest"`
}

type ReportPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewReport captures the state of l.
func NewReport(l *assoclist.List[string, string], steps []string) *Report {
	r := &Report{
		Steps:  steps,
		Pairs:  make([]ReportPair, 0, l.Len()),
		Len:    l.Len(),
		Cap:    l.Cap(),
		Size:   humanize.IBytes(uint64(alloc.SizeOf[Pair](l.Cap()))),
		Digest: Digest(l),
	}
	for k, v := range l.All() {
		r.Pairs = append(r.Pairs, ReportPair{Key: k, Value: v})
	}
	return r
}

// Digest returns the XXH3 hash of the pairs of l in storage order.
// Lists holding equal pairs in the same order have equal digests.
func Digest(l *assoclist.List[string, string]) string {
	h := xxh3.New()
	var n [8]byte
	for k, v := range l.All() {
		for _, s := range [2]string{k, v} {
			writeLen(&n, len(s))
			_, _ = h.Write(n[:])
			_, _ = h.WriteString(s)
		}
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func writeLen(b *[8]byte, n int) {
	for i := range b {
		b[i] = byte(n >> (8 * i))
	}
}

// WriteText writes the report in a human readable form.
func (r *Report) WriteText(w io.Writer) error {
	for _, s := range r.Steps {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w,
		"\nlen: %d\ncap: %d (%s)\ndigest: %s\n",
		r.Len, r.Cap, r.Size, r.Digest,
	)
	if err != nil {
		return err
	}
	for i, p := range r.Pairs {
		_, err := fmt.Fprintf(w, "%s. %s = %s\n", strconv.Itoa(i), p.Key, p.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(r)
}
