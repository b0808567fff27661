package valueobject

// BureauBranch records which side of the bureau rule scored a record.
type BureauBranch int

const (
	// BranchNone is used by pipelines that have no bureau branching.
	BranchNone BureauBranch = iota
	// BranchBureau scores the bureau score; the no-hit score is zero or absent.
	BranchBureau
	// BranchNoHit scores the no-hit score because the bureau score is zero.
	BranchNoHit
	// BranchNoData means the bureau score is absent.
	BranchNoData
	// BranchInconsistent means both scores are nonzero.
	BranchInconsistent
)

func (b BureauBranch) String() string {
	switch b {
	case BranchBureau:
		return "BUREAU"
	case BranchNoHit:
		return "NO_HIT"
	case BranchNoData:
		return "NO_DATA"
	case BranchInconsistent:
		return "INCONSISTENT"
	default:
		return ""
	}
}
