package enums

// OutboxEventType enumerates the domain events emitted through the outbox.
type OutboxEventType string

const (
	EventOrderConfirmed            OutboxEventType = "order.confirmed"
	EventOrderStatusChanged        OutboxEventType = "order.status_changed"
	EventSubmissionInclusionChange OutboxEventType = "submission.inclusion_changed"
	EventSubmissionReviewed        OutboxEventType = "submission.reviewed"
	EventLineItemStatusChanged     OutboxEventType = "line_item.status_changed"
	EventEarningsRecorded          OutboxEventType = "earnings.recorded"
)

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateOrder         OutboxAggregateType = "order"
	AggregateSubmission    OutboxAggregateType = "submission"
	AggregateLineItem      OutboxAggregateType = "line_item"
	AggregateEarningsEntry OutboxAggregateType = "earnings_entry"
)
