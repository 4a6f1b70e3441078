package dto

// AddBookRequest HTTP上架请求
// ISBN不要求唯一，允许同一ISBN录入多本
type AddBookRequest struct {
	Title  string `json:"title" binding:"required,max=200" example:"Clean Code"`
	Author string `json:"author" binding:"max=100" example:"Robert C. Martin"`
	ISBN   string `json:"isbn" binding:"required,max=32" example:"9780132350884"`
}

// ListBooksRequest HTTP图书列表请求
// keyword为空时返回全部图书
type ListBooksRequest struct {
	Keyword string `form:"keyword" binding:"omitempty,max=100" example:"code"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	Title     string `json:"title" example:"Clean Code"`
	Author    string `json:"author" example:"Robert C. Martin"`
	ISBN      string `json:"isbn" example:"9780132350884"`
	Available bool   `json:"available" example:"true"`
}

// RemoveBookResponse HTTP下架响应
type RemoveBookResponse struct {
	ISBN    string `json:"isbn" example:"9780132350884"`
	Removed int    `json:"removed" example:"1"` // 删除的条目数，0表示ISBN不存在
}
