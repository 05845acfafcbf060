package request

type Status string

const (
	StatusPending           Status = "pending"
	StatusInReview          Status = "in_review"
	StatusApproved          Status = "approved"
	StatusRejected          Status = "rejected"
	StatusPartiallyApproved Status = "partially_approved"
)

// ApprovedStatuses are the terminal statuses that count toward goal
// achievement.
var ApprovedStatuses = []Status{StatusApproved, StatusPartiallyApproved}

var OpenStatuses = []Status{StatusPending, StatusInReview}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)
