package mq

import "time"

// Routing keys
const (
	RoutingLoanIssued   = "loan.issued"
	RoutingLoanReturned = "loan.returned"
	RoutingBookAdded    = "book.added"
	RoutingBookRemoved  = "book.removed"
)

// LoanEvent 借出/归还事件
type LoanEvent struct {
	MemberID   string    `json:"member_id"`
	ISBN       string    `json:"isbn"`
	DaysKept   int       `json:"days_kept,omitempty"`
	Fine       float64   `json:"fine,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookEvent 图书上架/下架事件
type BookEvent struct {
	Title      string    `json:"title,omitempty"`
	Author     string    `json:"author,omitempty"`
	ISBN       string    `json:"isbn"`
	Removed    int       `json:"removed,omitempty"` // 下架时删除的条目数
	OccurredAt time.Time `json:"occurred_at"`
}
