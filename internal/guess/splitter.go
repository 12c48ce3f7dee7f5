package guess

// Split partitions candidates by a question's predicate.
func Split(candidates []Candidate, q Question) (yes, no []Candidate) {
	for _, c := range candidates {
		if Matches(c, q) {
			yes = append(yes, c)
		} else {
			no = append(no, c)
		}
	}
	return yes, no
}

// SelectNext picks the question whose worst-case partition is smallest
// (minimax). Questions where every candidate falls on one side carry no
// information and are skipped. Ties go to the earliest question in bank
// order so repeated runs over the same pool ask the same things.
//
// The full scan is O(candidates × available); both stay small enough
// (a few hundred cards, a few dozen questions) that this is fine.
func SelectNext(candidates []Candidate, available []Question) *Question {
	var best *Question
	bestWorst := 0

	for i := range available {
		q := &available[i]
		yes := 0
		for _, c := range candidates {
			if Matches(c, *q) {
				yes++
			}
		}
		no := len(candidates) - yes
		if yes == 0 || no == 0 {
			continue
		}
		worst := yes
		if no > worst {
			worst = no
		}
		if best == nil || worst < bestWorst {
			best = q
			bestWorst = worst
		}
	}

	return best
}
