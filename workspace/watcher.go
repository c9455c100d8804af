package workspace

import (
	"os"
	"time"
)

// Change describes the files one poll found modified or removed.
type Change struct {
	Updated []*Document
	Removed []string
}

func (c Change) Empty() bool {
	return len(c.Updated) == 0 && len(c.Removed) == 0
}

// FileWatcher polls the workspace directories and reparses files whose
// modification time moved forward.
type FileWatcher struct {
	workspace    *Workspace
	paths        []string
	stopCh       chan struct{}
	doneCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(Change)
}

// NewFileWatcher watches paths, or the workspace root when none are given.
// onChange, when set, runs on the watcher goroutine after every poll that
// saw a change.
func NewFileWatcher(w *Workspace, onChange func(Change), paths ...string) *FileWatcher {
	if len(paths) == 0 {
		paths = []string{w.RootDir()}
	}
	return &FileWatcher{
		workspace:    w,
		paths:        paths,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
		onChange:     onChange,
	}
}

func (fw *FileWatcher) SetPollInterval(d time.Duration) {
	fw.pollInterval = d
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

// Stop ends polling and waits for the watcher goroutine to exit.
func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
	<-fw.doneCh
}

func (fw *FileWatcher) run() {
	defer close(fw.doneCh)
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	fw.poll()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.poll()
		}
	}
}

func (fw *FileWatcher) poll() {
	change := fw.Scan()
	if !change.Empty() && fw.onChange != nil {
		fw.onChange(change)
	}
}

// Scan polls once. The first scan reports every file as updated.
func (fw *FileWatcher) Scan() Change {
	var change Change
	current := make(map[string]bool)

	var files []string
	for _, root := range fw.paths {
		found, err := fw.workspace.Collect(root)
		if err != nil {
			log.Debugf("watch: %s", err)
			continue
		}
		files = append(files, found...)
	}

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		current[path] = true

		lastMod, known := fw.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			continue
		}
		fw.modTimes[path] = info.ModTime()
		doc, err := fw.workspace.ScanFile(path)
		if err != nil {
			log.Warningf("watch: %s", err)
			continue
		}
		change.Updated = append(change.Updated, doc)
	}

	for path := range fw.modTimes {
		if !current[path] {
			delete(fw.modTimes, path)
			fw.workspace.RemoveFile(path)
			change.Removed = append(change.Removed, path)
		}
	}
	return change
}
