package entity

// DuplicateCheckResult is the advisory outcome of checking a candidate
// transaction against a user's recent history. It is never persisted and
// never blocks transaction creation.
type DuplicateCheckResult struct {
	IsDuplicate         bool
	Confidence          Confidence
	SimilarTransactions []*Transaction
	Reason              string
}

// DuplicateGroup is a cluster of persisted transactions that look like
// duplicates of each other, produced by the duplicates report.
type DuplicateGroup struct {
	Transactions []*Transaction
	Confidence   Confidence
	Reason       string
}
