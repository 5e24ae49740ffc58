package purchaseorder

// transitions maps a current status to the statuses an operator may select
// next. Orders only move forward: review, then ordered, then received, with
// cancellation possible at every stage.
var transitions = map[Status][]Status{
	StatusUnderReview: {StatusUnderReview, StatusOrdered, StatusCancelled},
	StatusOrdered:     {StatusOrdered, StatusReceived, StatusCancelled},
	StatusReceived:    {StatusReceived, StatusCancelled},
	StatusCancelled:   {StatusCancelled},
}

// NextStatuses returns the ordered set of statuses reachable from cur.
// An unrecognized status offers the full vocabulary.
func NextStatuses(cur Status) []Status {
	next, ok := transitions[cur]
	if !ok {
		return AllStatuses()
	}

	out := make([]Status, len(next))
	copy(out, next)

	return out
}
