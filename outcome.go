package festin

// OutcomeKind tags the variant held by a ProbeOutcome.
type OutcomeKind int

// Probe outcome kinds.
const (
	OutcomeEmpty OutcomeKind = iota
	OutcomeFound
	OutcomeRedirect
	OutcomeFailed
)

// String returns the lowercase name of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFound:
		return "found"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeFailed:
		return "failed"
	default:
		return "empty"
	}
}

// ProbeOutcome is the result of checking one candidate bucket.
// Exactly one of Bucket, Redirect or Err is set, according to Kind.
type ProbeOutcome struct {
	Kind OutcomeKind

	// Bucket is set for OutcomeFound.
	Bucket *BucketResult

	// Redirect is the host the provider pointed at, set for OutcomeRedirect.
	// Callers feed it back into the frontier instead of following it.
	Redirect string

	// Err is set for OutcomeFailed.
	Err error
}

// Found returns an outcome carrying a listed bucket.
func Found(b *BucketResult) ProbeOutcome {
	return ProbeOutcome{Kind: OutcomeFound, Bucket: b}
}

// Redirect returns an outcome pointing at another host.
func Redirect(host string) ProbeOutcome {
	return ProbeOutcome{Kind: OutcomeRedirect, Redirect: host}
}

// Empty returns an outcome with nothing to report.
func Empty() ProbeOutcome {
	return ProbeOutcome{Kind: OutcomeEmpty}
}

// Failed returns an outcome for a probe that could not complete.
func Failed(err error) ProbeOutcome {
	return ProbeOutcome{Kind: OutcomeFailed, Err: err}
}
