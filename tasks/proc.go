package tasks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrNoProcfs is returned when the proc root can't be listed.
var ErrNoProcfs = errors.New("proc filesystem unavailable")

// Proc reads threads from a procfs tree: <Root>/<pid>/task/<tid>/stat.
type Proc struct {
	Root string
}

func (p Proc) root() string {
	if p.Root == "" {
		return "/proc"
	}
	return p.Root
}

func (p Proc) Collect(limit int) (Snapshot, error) {
	limit = min(limit, MaxTasks)
	pids, err := numericEntries(p.root())
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrNoProcfs, err)
	}

	records := make([]Record, 0, min(max(limit, 0), 256))
	for _, pid := range pids {
		if len(records) >= limit {
			break
		}
		tids, err := numericEntries(filepath.Join(p.root(), strconv.Itoa(pid), "task"))
		if err != nil {
			// process exited between the two listings
			continue
		}
		for _, tid := range tids {
			if len(records) >= limit {
				break
			}
			rec, ok := readTaskStat(filepath.Join(p.root(), strconv.Itoa(pid), "task", strconv.Itoa(tid), "stat"), pid, tid)
			if !ok {
				continue
			}
			records = append(records, rec)
		}
	}
	return Snapshot{Records: records, Taken: time.Now()}, nil
}

// numericEntries lists the all-digit names in dir, ascending.
func numericEntries(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(entries))
	for _, ent := range entries {
		if !isNumeric(ent.Name()) {
			continue
		}
		id, err := strconv.Atoi(ent.Name())
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func readTaskStat(path string, pid, tid int) (Record, bool) {
	// a thread that exits mid-scan shows up as ENOENT or ESRCH; either way skip it
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, false
	}
	comm, state, ok := parseStat(string(data))
	if !ok {
		return Record{}, false
	}
	return NewRecord(pid, tid, comm, ParseState(state)), true
}

// parseStat pulls comm and the state letter out of a stat line. comm is
// whatever sits between the first '(' and the last ')', so names holding
// spaces or parens survive.
func parseStat(line string) (comm string, state byte, ok bool) {
	line = strings.TrimSpace(line)
	l := strings.IndexByte(line, '(')
	r := strings.LastIndexByte(line, ')')
	if l < 0 || r < 0 || r <= l {
		return "", 0, false
	}
	comm = line[l+1 : r]
	fields := strings.Fields(line[r+1:])
	if len(fields) == 0 || fields[0] == "" {
		return "", 0, false
	}
	return comm, fields[0][0], true
}
