package markov

import "math/rand/v2"

// Counts tallies the emphasis seen on a word's training occurrences.
// Total counts occurrences, so a token carrying two sigils adds one to Total
// and one to each matching style.
type Counts struct {
	Normal    int
	Bold      int
	Italic    int
	Underline int
	Total     int
}

// Node is one distinct word of a chain. Links are arena indices into the
// owning Chain; a successor appears once per observed transition.
type Node struct {
	Key         string
	Display     string
	SentenceEnd bool

	counts Counts
	links  []int
}

// RecordOccurrence counts one training occurrence with the given emphasis.
func (n *Node) RecordOccurrence(st Style) {
	n.counts.Total++
	if st.IsNormal() {
		n.counts.Normal++
		return
	}
	if st.Bold {
		n.counts.Bold++
	}
	if st.Italic {
		n.counts.Italic++
	}
	if st.Underline {
		n.counts.Underline++
	}
}

// Counts returns the emphasis counters.
func (n *Node) Counts() Counts {
	return n.counts
}

// Probabilities returns the fraction of occurrences that were bold, italic
// and underlined. All are zero for a node with no occurrences.
func (n *Node) Probabilities() (bold, italic, underline float64) {
	if n.counts.Total == 0 {
		return 0, 0, 0
	}
	total := float64(n.counts.Total)
	return float64(n.counts.Bold) / total,
		float64(n.counts.Italic) / total,
		float64(n.counts.Underline) / total
}

// SampleStyle draws one emphasis decision per kind, weighted by the training
// frequencies. The node is not modified.
func (n *Node) SampleStyle(r *rand.Rand) Style {
	bold, italic, underline := n.Probabilities()
	return Style{
		Bold:      r.Float64() < bold,
		Italic:    r.Float64() < italic,
		Underline: r.Float64() < underline,
	}
}

// AddLink appends a transition to the node at index to.
func (n *Node) AddLink(to int) {
	n.links = append(n.links, to)
}

// HasLinks reports whether the node has any successor.
func (n *Node) HasLinks() bool {
	return len(n.links) > 0
}

// Links returns the successor indices, repeats included.
func (n *Node) Links() []int {
	return n.links
}

// PickLink returns a uniformly chosen entry of the link list, which weights
// successors by how often the transition was observed.
func (n *Node) PickLink(r *rand.Rand) (int, bool) {
	if len(n.links) == 0 {
		return 0, false
	}
	return n.links[r.IntN(len(n.links))], true
}
