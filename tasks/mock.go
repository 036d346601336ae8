package tasks

import "time"

var mockCommands = []string{
	"systemd", "kthreadd", "bash", "vim", "firefox",
	"chrome", "docker", "nginx", "postgres", "python3",
	"gcc", "make", "ssh", "sshd", "cron",
	"dbus-daemon", "NetworkManager", "pulseaudio", "Xorg", "gnome-shell",
}

var mockStates = []State{
	Running, Sleeping, Sleeping, Sleeping, DiskWait,
	Sleeping, Sleeping, Sleeping, Sleeping, Sleeping,
}

const mockProcesses = 50

// Mock generates a fixed, deterministic listing: 50 processes with pids
// 100, 110, ... each with one to four threads.
type Mock struct {
	Now func() time.Time
}

func (m Mock) Collect(max int) (Snapshot, error) {
	max = min(max, MaxTasks)
	if max < 0 {
		max = 0
	}
	records := make([]Record, 0, min(max, 128))
	for i := 0; i < mockProcesses && len(records) < max; i++ {
		pid := 100 + i*10
		threads := 1 + i%4
		for t := 0; t < threads && len(records) < max; t++ {
			records = append(records, NewRecord(pid, pid+t, mockCommands[i%len(mockCommands)], mockStates[len(records)%len(mockStates)]))
		}
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return Snapshot{Records: records, Taken: now()}, nil
}
