package search

import "github.com/technelab/techne/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterVectorSearch(ids []uint64)
	AfterKeywordScan(ids []uint64)
	HybridHit(record *core.ChunkRecord)
	VectorHit(record *core.ChunkRecord)
	KeywordHit(record *core.ChunkRecord)
	Finish(results []*core.ScoredResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                   {}
func (n *noopMonitor) AfterVectorSearch(_ []uint64)     {}
func (n *noopMonitor) AfterKeywordScan(_ []uint64)      {}
func (n *noopMonitor) HybridHit(_ *core.ChunkRecord)    {}
func (n *noopMonitor) VectorHit(_ *core.ChunkRecord)    {}
func (n *noopMonitor) KeywordHit(_ *core.ChunkRecord)   {}
func (n *noopMonitor) Finish(_ []*core.ScoredResult)    {}
