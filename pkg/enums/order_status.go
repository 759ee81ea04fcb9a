package enums

// OrderStatus tracks an order through the commit pipeline. Only
// OrderStatusCompleted is ever persisted; the other states exist in
// memory while a commit is in flight.
type OrderStatus string

const (
	// OrderStatusDraft covers a quote that has not entered a commit yet.
	OrderStatusDraft OrderStatus = "draft"
	// OrderStatusCommitPending marks a commit transaction in progress.
	OrderStatusCommitPending OrderStatus = "commit_pending"
	// OrderStatusCompleted is the only persisted terminal state.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusAborted marks a rolled-back commit; nothing is persisted.
	OrderStatusAborted OrderStatus = "aborted"
)
