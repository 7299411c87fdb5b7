package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ksenia-gurenko/film-catalog/internal/movie"
)

// SearchResult is one emission of the live search stream.
type SearchResult struct {
	Query  string
	Movies []movie.Movie
	Err    error // normalized *Error when the fetch failed
}

type searchFunc func(ctx context.Context, query string) ([]movie.Movie, error)

// searchStream turns a stream of raw query text into search results:
// trailing-edge debounce, consecutive duplicates dropped, and only the
// newest query's result delivered (older in-flight fetches are left to
// finish but their results are discarded by generation).
type searchStream struct {
	debounce time.Duration
	search   searchFunc
	log      *slog.Logger

	// Pending input. Only the newest value matters to a debounce, so pushes
	// overwrite next and poke notify without ever blocking.
	inMu    sync.Mutex
	next    string
	hasNext bool
	notify  chan struct{}

	subMu  sync.Mutex
	subs   map[chan SearchResult]struct{}
	latest *SearchResult
	closed bool
}

type fetched struct {
	gen    uint64
	result SearchResult
}

func newSearchStream(debounce time.Duration, search searchFunc, log *slog.Logger) *searchStream {
	s := &searchStream{
		debounce: debounce,
		search:   search,
		log:      log,
		notify:   make(chan struct{}, 1),
		subs:     make(map[chan SearchResult]struct{}),
	}
	// The stream starts out with an empty query, i.e. the unfiltered list.
	s.push("")
	return s
}

func (s *searchStream) push(query string) {
	s.inMu.Lock()
	s.next, s.hasNext = query, true
	s.inMu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *searchStream) take() (string, bool) {
	s.inMu.Lock()
	defer s.inMu.Unlock()
	q, ok := s.next, s.hasNext
	s.hasNext = false
	return q, ok
}

func (s *searchStream) run(ctx context.Context) error {
	defer s.close()

	var (
		timer    *time.Timer
		timerC   <-chan time.Time
		pending  string
		last     string
		haveLast bool
		gen      uint64
	)
	results := make(chan fetched)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case <-s.notify:
			q, ok := s.take()
			if !ok {
				continue
			}
			pending = q
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(s.debounce)
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if haveLast && pending == last {
				s.log.Debug("search query unchanged", "query", pending)
				continue
			}
			last, haveLast = pending, true
			gen++
			go s.fetch(ctx, gen, pending, results)

		case f := <-results:
			if f.gen != gen {
				s.log.Debug("discarding superseded search result", "query", f.result.Query)
				continue
			}
			s.publish(f.result)
		}
	}
}

func (s *searchStream) fetch(ctx context.Context, gen uint64, query string, out chan<- fetched) {
	movies, err := s.search(ctx, query)
	r := fetched{gen: gen, result: SearchResult{Query: query, Movies: movies, Err: err}}
	select {
	case out <- r:
	case <-ctx.Done():
	}
}

func (s *searchStream) publish(r SearchResult) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.latest = &r
	for ch := range s.subs {
		offer(ch, r)
	}
}

func (s *searchStream) subscribe() (<-chan SearchResult, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	ch := make(chan SearchResult, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	if s.latest != nil {
		ch <- *s.latest
	}
	s.subs[ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

func (s *searchStream) close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.closed = true
	for ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

// offer delivers r to a buffered channel of size one, replacing an unread
// older result. Only publish sends, so the drain cannot race another sender.
func offer(ch chan SearchResult, r SearchResult) {
	select {
	case ch <- r:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- r:
	default:
	}
}
