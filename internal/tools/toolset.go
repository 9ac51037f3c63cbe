package tools

import (
	"valyuagent/internal/agent"
	"valyuagent/internal/valyu"
)

// Toolset bundles all seven search tools built against one client with
// shared options.
type Toolset struct {
	Web       *searchTool
	Finance   *searchTool
	Paper     *searchTool
	Bio       *searchTool
	Patent    *searchTool
	SEC       *searchTool
	Economics *searchTool
}

func NewToolset(client *valyu.Client, opts Options) *Toolset {
	return &Toolset{
		Web:       NewWebSearch(client, opts),
		Finance:   NewFinanceSearch(client, opts),
		Paper:     NewPaperSearch(client, opts),
		Bio:       NewBioSearch(client, opts),
		Patent:    NewPatentSearch(client, opts),
		SEC:       NewSECSearch(client, opts),
		Economics: NewEconomicsSearch(client, opts),
	}
}

// All returns every search tool.
func (s *Toolset) All() []agent.Tool {
	return []agent.Tool{s.Web, s.Finance, s.Paper, s.Bio, s.Patent, s.SEC, s.Economics}
}

// FinancialTools returns the finance-focused subset.
func (s *Toolset) FinancialTools() []agent.Tool {
	return []agent.Tool{s.Finance, s.SEC, s.Economics}
}

// ResearchTools returns the research-focused subset (academic + patents).
func (s *Toolset) ResearchTools() []agent.Tool {
	return []agent.Tool{s.Paper, s.Bio, s.Patent}
}

// Register adds every tool in the set to the registry.
func (s *Toolset) Register(r *agent.Registry) {
	for _, t := range s.All() {
		r.Register(t)
	}
}
