package election

// Leaders returns every eligible candidate sharing the highest vote count,
// in load order. It is empty when no candidate is eligible.
func (e *Election) Leaders() []Candidate {
	var leaders []Candidate
	best := -1
	for _, c := range e.candidates {
		if !c.Eligible {
			continue
		}
		switch {
		case c.Votes > best:
			best = c.Votes
			leaders = append(leaders[:0], c)
		case c.Votes == best:
			leaders = append(leaders, c)
		}
	}
	return leaders
}

// Eliminate makes every candidate not listed in keep ineligible and returns
// how many candidates lost eligibility.
func (e *Election) Eliminate(keep []CandidateID) int {
	kept := make(map[CandidateID]struct{}, len(keep))
	for _, id := range keep {
		kept[id] = struct{}{}
	}
	eliminated := 0
	for _, code := range e.order {
		for _, id := range e.constituencies[code] {
			c := &e.candidates[id]
			if _, ok := kept[id]; ok || !c.Eligible {
				continue
			}
			c.Eligible = false
			eliminated++
		}
	}
	return eliminated
}
