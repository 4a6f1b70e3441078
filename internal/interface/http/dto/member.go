package dto

// AddMemberRequest HTTP会员注册请求
type AddMemberRequest struct {
	MemberID string `json:"member_id" binding:"required,max=64" example:"M003"`
	Name     string `json:"name" binding:"required,max=100" example:"Carol"`
}

// MemberResponse 会员响应
type MemberResponse struct {
	MemberID      string   `json:"member_id" example:"M001"`
	Name          string   `json:"name" example:"Alice"`
	BorrowedISBNs []string `json:"borrowed_isbns"`
}
