package invoice

// transitions maps a current status to the statuses an operator may select
// next. The current status is always included so an edit that touches other
// fields does not force a status change. Cancelled is reachable from every
// state; Paid and Cancelled are (near-)terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusPending, StatusApproved, StatusPaid, StatusOverdue, StatusCancelled},
	StatusApproved:  {StatusApproved, StatusPaid, StatusOverdue, StatusCancelled},
	StatusPaid:      {StatusPaid, StatusCancelled},
	StatusOverdue:   {StatusOverdue, StatusPaid, StatusCancelled},
	StatusCancelled: {StatusCancelled},
}

// NextStatuses returns the ordered set of statuses reachable from cur.
// An unrecognized status offers the full vocabulary rather than locking
// the record.
func NextStatuses(cur Status) []Status {
	next, ok := transitions[cur]
	if !ok {
		return AllStatuses()
	}

	out := make([]Status, len(next))
	copy(out, next)

	return out
}
