package rhythm

// episodeState tracks a VF episode from trigger to outcome
type episodeState int

const (
	stateIdle episodeState = iota
	stateCandidate
	stateConfirmed
	stateRetracted
)

// minVFEpisode is the shortest run of VF-qualifying intervals that stands
const minVFEpisode = 4

// vfScan is a single VF episode candidate. start is the trigger index and
// end the last index that satisfied the continuation rule.
type vfScan struct {
	state episodeState
	start int
	end   int
}

// vfTriggered reports whether index i opens a VF episode
func vfTriggered(rr []float64, i int) bool {
	rr1, rr2 := rr[i-1], rr[i]
	return rr2 < 0.6 && 1.8*rr2 < rr1
}

// vfContinues reports whether index k extends an open VF episode
func vfContinues(rr []float64, k int) bool {
	rr1, rr2, rr3 := rr[k-1], rr[k], rr[k+1]
	return (rr1 < 0.7 && rr2 < 0.7 && rr3 < 0.7) || rr1+rr2+rr3 < 1.7
}

// scanVF opens a candidate episode at trigger index i, extends it forward
// while the continuation rule holds and then confirms or retracts it.
// labels is updated in place: confirmed episodes stay VF, retracted ones are
// reset to Normal.
func scanVF(rr []float64, labels []Label, i int) vfScan {
	scan := vfScan{state: stateIdle, start: i, end: i}

	last := len(rr) - 2
	for scan.state == stateIdle || scan.state == stateCandidate {
		switch scan.state {
		case stateIdle:
			labels[i] = VF
			scan.state = stateCandidate

		case stateCandidate:
			k := scan.end + 1
			if k <= last && vfContinues(rr, k) {
				labels[k] = VF
				scan.end = k
				continue
			}

			if scan.end-scan.start+1 >= minVFEpisode {
				scan.state = stateConfirmed
			} else {
				for j := scan.start; j <= scan.end; j++ {
					labels[j] = Normal
				}
				scan.state = stateRetracted
			}
		}
	}

	return scan
}
