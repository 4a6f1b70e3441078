package dto

// IssueBookRequest HTTP借书请求
type IssueBookRequest struct {
	MemberID string `json:"member_id" binding:"required" example:"M001"`
	ISBN     string `json:"isbn" binding:"required" example:"9780132350884"`
}

// IssueBookResponse HTTP借书响应
type IssueBookResponse struct {
	MemberID string `json:"member_id" example:"M001"`
	ISBN     string `json:"isbn" example:"9780132350884"`
}

// ReturnBookRequest HTTP还书请求
// days_kept为负数时按0天计算罚金
type ReturnBookRequest struct {
	MemberID string `json:"member_id" binding:"required" example:"M001"`
	ISBN     string `json:"isbn" binding:"required" example:"9780132350884"`
	DaysKept int    `json:"days_kept" example:"20"`
}

// ReturnBookResponse HTTP还书响应
type ReturnBookResponse struct {
	MemberID string  `json:"member_id" example:"M001"`
	ISBN     string  `json:"isbn" example:"9780132350884"`
	DaysKept int     `json:"days_kept" example:"20"`
	Fine     float64 `json:"fine" example:"60"`
}
