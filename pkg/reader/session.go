package reader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/kerem-kaynak/visual-reader/pkg/highlight"
	"github.com/kerem-kaynak/visual-reader/pkg/illustrate"
	"github.com/kerem-kaynak/visual-reader/pkg/render"
	"github.com/kerem-kaynak/visual-reader/pkg/tokenizer"
)

// Session owns the canonical document and its highlights.
//
// Replacing the document swaps the document and a fresh highlight store in a
// single step, so a render never sees highlights of another document.
// Illustration requests run in the background and update their highlight by
// id only while it is still in the store it was created in.
type Session struct {
	mu    sync.RWMutex
	doc   *Document
	store *highlight.Store

	tok         *tokenizer.Tokenizer
	norm        *tokenizer.Normalizer
	policy      highlight.Policy
	illustrator illustrate.Illustrator
	html        *render.HTML
	radius      int
	logger      *slog.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

// Option configures a Session.
type Option func(*Session)

// WithPolicy sets how new highlights combine with existing ones.
func WithPolicy(p highlight.Policy) Option {
	return func(s *Session) {
		s.policy = p
	}
}

// WithIllustrator sets the backend asked for an image of each new highlight.
// Without one, highlights are created without an illustration request.
func WithIllustrator(i illustrate.Illustrator) Option {
	return func(s *Session) {
		s.illustrator = i
	}
}

// WithNormalizer sets the normalizer used for selection matching.
func WithNormalizer(n *tokenizer.Normalizer) Option {
	return func(s *Session) {
		s.norm = n
	}
}

// WithContextRadius sets how many words around a highlight are sent as context.
func WithContextRadius(radius int) Option {
	return func(s *Session) {
		s.radius = radius
	}
}

// WithHTML sets the markup serializer used by Render.
func WithHTML(h *render.HTML) Option {
	return func(s *Session) {
		s.html = h
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession creates a session holding an empty document.
func NewSession(opts ...Option) *Session {
	s := &Session{
		tok:    tokenizer.NewTokenizer(),
		norm:   tokenizer.NewNormalizer(),
		policy: highlight.ReplaceAll{},
		html:   render.NewHTML(),
		radius: DefaultContextRadius,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	doc, err := newDocument("", "", s.tok, s.norm)
	if err != nil {
		// An empty vocabulary has nothing to build.
		panic(err)
	}
	s.doc = doc
	s.store = highlight.NewStore()

	return s
}

// Load replaces the canonical document and clears all highlights.
func (s *Session) Load(title, text string) error {
	doc, err := newDocument(title, text, s.tok, s.norm)
	if err != nil {
		return err
	}

	// The previous document stays usable by callers still holding it.
	s.mu.Lock()
	s.doc = doc
	s.store = highlight.NewStore()
	s.mu.Unlock()

	s.logger.Info("document loaded", "title", title, "id", doc.ID, "words", doc.WordCount)
	return nil
}

// LoadFile reads an uploaded file and loads it. Unsupported files leave the
// current document untouched.
func (s *Session) LoadFile(name string, r io.Reader) error {
	title, text, err := ReadText(name, r)
	if err != nil {
		s.logger.Warn("upload rejected", "file", name, "error", err)
		return err
	}
	return s.Load(title, text)
}

// Document returns the current document.
func (s *Session) Document() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Empty reports whether the current document has no words.
func (s *Session) Empty() bool {
	return s.Document().Empty()
}

// Select resolves a selected string and highlights it. Selections that match
// nothing are discarded and report false.
func (s *Session) Select(text string) (highlight.Highlight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.doc.Resolve(text)
	if !ok {
		s.logger.Debug("selection discarded", "reason", "no match", "length", len(text))
		return highlight.Highlight{}, false
	}

	s.logger.Debug("selection resolved", "start", m.StartWordIndex, "end", m.EndWordIndex, "strategy", m.Strategy)
	return s.create(m.StartWordIndex, m.EndWordIndex, m.Text), true
}

// SelectFrom highlights a platform selection. Selections spanning more than
// one container return ErrCrossBoundary; selections shorter than
// MinSelectionLength are ignored.
func (s *Session) SelectFrom(src SelectionSource) (highlight.Highlight, bool, error) {
	if src.ContainerBoundary() == "" {
		return highlight.Highlight{}, false, ErrCrossBoundary
	}

	text := src.SelectedText()
	if tooShort(text) {
		s.logger.Debug("selection discarded", "reason", "too short", "length", len(text))
		return highlight.Highlight{}, false, nil
	}

	h, ok := s.Select(text)
	return h, ok, nil
}

// AddRange highlights the words start..end directly.
func (s *Session) AddRange(start, end int) (highlight.Highlight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if start < 0 || start > end || end >= s.doc.WordCount {
		return highlight.Highlight{}, fmt.Errorf("%w: [%d, %d] in %d words", ErrOutOfRange, start, end, s.doc.WordCount)
	}
	return s.create(start, end, s.doc.RangeText(start, end)), nil
}

// create applies a new highlight and starts its illustration request.
// The caller holds s.mu for reading.
func (s *Session) create(start, end int, text string) highlight.Highlight {
	h := highlight.New(start, end, text)
	h.Generating = s.illustrator != nil
	s.policy.Apply(s.store, h)

	if s.illustrator != nil {
		window := ContextWindow(s.doc.Tokens, start, end, s.radius)
		s.inflight.Add(1)
		go s.illustrate(s.store, h.ID, text, window)
	}

	return h
}

func (s *Session) illustrate(store *highlight.Store, id, passage, window string) {
	defer s.inflight.Done()

	url, err := s.illustrator.Illustrate(s.ctx, passage, window)
	if err != nil {
		s.logger.Error("illustration failed", "highlight", id, "error", err)
	}

	applied := store.Update(id, func(h *highlight.Highlight) {
		h.Generating = false
		if err == nil {
			h.ImageURL = url
		}
	})
	if !applied {
		s.logger.Debug("illustration dropped", "highlight", id, "reason", "highlight removed")
		return
	}
	if err == nil {
		s.logger.Info("illustration ready", "highlight", id, "url", url)
	}
}

// Remove deletes a highlight. It reports false if the id is unknown.
func (s *Session) Remove(id string) bool {
	return s.currentStore().Remove(id)
}

// Clear removes all highlights.
func (s *Session) Clear() {
	s.currentStore().Clear()
}

// Highlight returns the highlight with the given id.
func (s *Session) Highlight(id string) (highlight.Highlight, bool) {
	return s.currentStore().Get(id)
}

// Highlights returns the current highlights in insertion order.
func (s *Session) Highlights() []highlight.Highlight {
	return s.currentStore().All()
}

func (s *Session) currentStore() *highlight.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Blocks decorates the document with the current highlights and splits it
// into blocks.
//
// A highlight outside the document, or unbalanced markers in the result, is
// a broken invariant and panics.
func (s *Session) Blocks() []render.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.store.Snapshot()
	for _, h := range snap.Highlights() {
		if !h.Valid(s.doc.WordCount) {
			panic(fmt.Sprintf("highlight %s [%d, %d] outside document of %d words",
				h.ID, h.StartWordIndex, h.EndWordIndex, s.doc.WordCount))
		}
	}

	blocks := render.Segment(render.Decorate(s.doc.Tokens, snap))
	if err := render.CheckBalanced(blocks); err != nil {
		panic(err)
	}
	return blocks
}

// Render returns the decorated document as HTML.
func (s *Session) Render() string {
	return s.html.Render(s.Blocks())
}

// Wait blocks until all in-flight illustration requests have completed.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Close cancels in-flight illustration requests and waits for them.
func (s *Session) Close() {
	s.cancel()
	s.inflight.Wait()
}
