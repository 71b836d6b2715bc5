package bench

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// memMonitor samples the heap while a single measurement runs.
type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
	done     chan struct{}
}

func newMemMonitor(interval time.Duration) *memMonitor {
	mm := &memMonitor{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(mm.done)
		for {
			alloc := currentAlloc()
			if alloc > mm.maxAlloc {
				mm.maxAlloc = alloc
			}
			select {
			case <-mm.stop:
				return
			case <-time.After(interval):
			}
		}
	}()
	return mm
}

// Stop ends sampling and returns the largest heap size observed.
func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	<-mm.done
	if alloc := currentAlloc(); alloc > mm.maxAlloc {
		mm.maxAlloc = alloc
	}
	return mm.maxAlloc
}

func currentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

// residentMemory returns the resident set size of the process, 0 if unavailable.
func residentMemory() uint64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	memInfo, err := p.MemoryInfo()
	if err != nil || memInfo == nil {
		return 0
	}
	return memInfo.RSS
}
