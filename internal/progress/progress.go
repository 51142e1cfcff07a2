package progress

import (
	"sort"
	"sync"
	"sync/atomic"
)

// State is the shared progress model of one orchestrator run: an outer
// chapters counter across all manga in the batch and one inner images
// counter per active chapter. It is written by the chapter coordinators and
// image downloads and read by the display surface, so every mutation is an
// atomic increment.
type State struct {
	chaptersTotal atomic.Int64
	chaptersDone  atomic.Int64
	finished      atomic.Bool

	mu     sync.Mutex
	active map[string]*Chapter
}

// Chapter tracks the images of one in-flight chapter.
type Chapter struct {
	ID    string
	Name  string
	total int64
	done  atomic.Int64
	bytes atomic.Int64
}

func NewState() *State {
	return &State{
		active: make(map[string]*Chapter),
	}
}

// AddChapters grows the outer total, called once per resolved manga.
func (s *State) AddChapters(n int) {
	s.chaptersTotal.Add(int64(n))
}

// StartChapter registers an active chapter with its manifest size.
func (s *State) StartChapter(id, name string, totalImages int) *Chapter {
	c := &Chapter{
		ID:    id,
		Name:  name,
		total: int64(totalImages),
	}

	s.mu.Lock()
	s.active[id] = c
	s.mu.Unlock()

	return c
}

// ImageDone advances the inner counter by one processed image, whether the
// download succeeded or not.
func (c *Chapter) ImageDone(bytes int64) {
	c.done.Add(1)
	if bytes > 0 {
		c.bytes.Add(bytes)
	}
}

// FinishChapter retires an active chapter and advances the outer counter.
func (s *State) FinishChapter(id string) {
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()

	s.chaptersDone.Add(1)
}

// ChapterProcessed advances the outer counter for a chapter that never
// became active, e.g. one whose manifest fetch failed or that was skipped.
func (s *State) ChapterProcessed() {
	s.chaptersDone.Add(1)
}

// Finish marks the run as torn down. Readers stop after observing it.
func (s *State) Finish() {
	s.finished.Store(true)
}

type Snapshot struct {
	ChaptersDone  int
	ChaptersTotal int
	Active        []ChapterSnapshot
	Finished      bool
}

type ChapterSnapshot struct {
	ID    string
	Name  string
	Done  int
	Total int
	Bytes int64
}

// Snapshot returns a consistent copy for rendering.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		ChaptersDone:  int(s.chaptersDone.Load()),
		ChaptersTotal: int(s.chaptersTotal.Load()),
		Finished:      s.finished.Load(),
	}

	s.mu.Lock()
	for _, c := range s.active {
		snap.Active = append(snap.Active, ChapterSnapshot{
			ID:    c.ID,
			Name:  c.Name,
			Done:  int(c.done.Load()),
			Total: int(c.total),
			Bytes: c.bytes.Load(),
		})
	}
	s.mu.Unlock()

	sort.Slice(snap.Active, func(i, j int) bool {
		return snap.Active[i].Name < snap.Active[j].Name
	})

	return snap
}
