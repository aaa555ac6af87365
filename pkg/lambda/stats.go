package lambda

// Stats holds reduction statistics.
type Stats struct {
	TotalReductions uint64
	Beta            uint64 // parameter used exactly once
	Erasures        uint64 // parameter unused, argument discarded
	Duplications    uint64 // parameter used more than once
	Substitutions   uint64 // variable occurrences replaced
	NodesCopied     uint64
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.TotalReductions += o.TotalReductions
	s.Beta += o.Beta
	s.Erasures += o.Erasures
	s.Duplications += o.Duplications
	s.Substitutions += o.Substitutions
	s.NodesCopied += o.NodesCopied
}
