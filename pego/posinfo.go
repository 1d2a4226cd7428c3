package pego

import "github.com/cespare/xxhash/v2"

// MemoRec is a packrat memoization record: the position just past a
// successful match and the Node it produced, or a nil Value to record that
// the application failed at this position. Apply installs the record, with
// Pos at the start position and a nil Value, before evaluating the body; if
// the body re-applies the same rule at the same position, that record is
// the failing seed, and LRFrameIdx then points at the PosInfo.lrFrames
// entry growing it, stored as an index rather than a pointer so the record
// stays a plain value type.
type MemoRec struct {
	Pos        int
	Value      *Node
	Trace      *TraceEntry
	LRFrameIdx int // -1 unless this record is (or was) a seed placeholder
}

func (r *MemoRec) isSeedPlaceholder() bool { return r.LRFrameIdx >= 0 }

// LRFrame overlays a seed MemoRec once left recursion is detected. HeadKey
// identifies the application whose Apply.eval grows the seed to a fixpoint
// (see growSeed); the involved set tracks every application entered while
// this frame is open, so that growSeed can evict their memo entries before
// each growth iteration.
//
// Membership in the involved set is tested via a hashed key rather than a
// map of raw memo-key strings: every Apply evaluated while an LR frame is
// open pays this check, and xxhash turns it into a single uint64 compare
// instead of a string compare against a growing set.
type LRFrame struct {
	HeadKey            string
	NextLR             int // index of the enclosing frame in PosInfo.lrFrames, or -1
	FirstInvolvedIndex int // index into applicationStack where this frame began
	involved           map[uint64]bool
}

func newLRFrame(headKey string, nextLR, firstInvolvedIndex int) *LRFrame {
	return &LRFrame{
		HeadKey:            headKey,
		NextLR:             nextLR,
		FirstInvolvedIndex: firstInvolvedIndex,
		involved:           make(map[uint64]bool),
	}
}

func hashMemoKey(key string) uint64 { return xxhash.Sum64String(key) }

// isInvolved reports whether the application identified by memoKey was
// entered at any point while this frame has been open.
func (f *LRFrame) isInvolved(memoKey string) bool {
	return f.involved[hashMemoKey(memoKey)]
}

// markInvolved records that memoKey was entered while this frame is open.
// Idempotent; called from PosInfo.enter for every application entered
// anywhere underneath an open LR frame.
func (f *LRFrame) markInvolved(memoKey string) {
	f.involved[hashMemoKey(memoKey)] = true
}

// PosInfo is the per-input-position state touched by Apply: the stack of
// currently active applications, the packrat memo table, and any open left
// recursion frames.
type PosInfo struct {
	applicationStack []string
	memo             map[string]*MemoRec
	lrFrames         []*LRFrame
	currentLR        int // index into lrFrames, or -1
}

func newPosInfo() *PosInfo {
	return &PosInfo{
		memo:      make(map[string]*MemoRec),
		currentLR: -1,
	}
}

// lookupMemo returns the memo record for memoKey, or nil if none exists.
func (p *PosInfo) lookupMemo(memoKey string) *MemoRec {
	return p.memo[memoKey]
}

// installMemo records rec as the memoization result for memoKey,
// overwriting any previous record (e.g. a seed placeholder being replaced
// by the converged value is not expected to go through this path — see
// growSeed, which mutates the record in place).
func (p *PosInfo) installMemo(memoKey string, rec *MemoRec) {
	p.memo[memoKey] = rec
}

// enter pushes app onto the active-application stack and, if an LR frame
// is currently open at this position, marks app as involved in it.
func (p *PosInfo) enter(memoKey string) {
	p.applicationStack = append(p.applicationStack, memoKey)
	if p.currentLR >= 0 {
		p.lrFrames[p.currentLR].markInvolved(memoKey)
	}
}

// exit pops the most recently entered application. It is an assertion
// failure to call exit without a matching enter.
func (p *PosInfo) exit(memoKey string) {
	n := len(p.applicationStack)
	assert(n > 0, "PosInfo.exit: application stack underflow")
	top := p.applicationStack[n-1]
	assert(top == memoKey, "PosInfo.exit: stack top %q does not match %q", top, memoKey)
	p.applicationStack = p.applicationStack[:n-1]
}

// isActive reports whether memoKey is anywhere on the active-application
// stack — i.e. whether applying it again right now would be left recursion.
func (p *PosInfo) isActive(memoKey string) bool {
	for i := len(p.applicationStack) - 1; i >= 0; i-- {
		if p.applicationStack[i] == memoKey {
			return true
		}
	}
	return false
}

// currentLeftRecursion returns the innermost open LR frame, or nil.
func (p *PosInfo) currentLeftRecursion() *LRFrame {
	if p.currentLR < 0 {
		return nil
	}
	return p.lrFrames[p.currentLR]
}

// startLeftRecursion installs a new LR frame headed by headKey, computing
// its initial involved set as the suffix of the application stack strictly
// inside the head, and links it ahead of any already-open frame.
func (p *PosInfo) startLeftRecursion(headKey string, rec *MemoRec) *LRFrame {
	headIdx := -1
	for i := len(p.applicationStack) - 1; i >= 0; i-- {
		if p.applicationStack[i] == headKey {
			headIdx = i
			break
		}
	}
	assert(headIdx >= 0, "startLeftRecursion: head application %q is not active", headKey)

	frame := newLRFrame(headKey, p.currentLR, headIdx+1)
	for _, key := range p.applicationStack[headIdx+1:] {
		frame.markInvolved(key)
	}

	idx := len(p.lrFrames)
	p.lrFrames = append(p.lrFrames, frame)
	rec.LRFrameIdx = idx
	p.currentLR = idx
	return frame
}

// endLeftRecursion closes the innermost LR frame, restoring whatever frame
// (if any) was open before it. It is an assertion failure to call this with
// no frame open.
func (p *PosInfo) endLeftRecursion() {
	assert(p.currentLR >= 0, "endLeftRecursion: no left-recursion frame is open")
	p.currentLR = p.lrFrames[p.currentLR].NextLR
}

// invalidateInvolved evicts every memo entry at this position — other
// than exceptKey, the frame's own head, which its caller is about to
// overwrite directly — that was entered while frame has been open. Their
// cached answers may have been computed against a seed that has since
// grown, so they must be recomputed on the next lookup.
func (p *PosInfo) invalidateInvolved(frame *LRFrame, exceptKey string) {
	for key := range p.memo {
		if key == exceptKey {
			continue
		}
		if frame.isInvolved(key) {
			delete(p.memo, key)
		}
	}
}
