package book

import (
	"context"
	"strings"

	"github.com/xiebiao/library/internal/domain/catalog"
)

// GetBookUseCase 按ISBN查询图书（重复ISBN取第一条）
type GetBookUseCase struct {
	cat *catalog.Catalog
}

// NewGetBookUseCase 创建查询用例
func NewGetBookUseCase(cat *catalog.Catalog) *GetBookUseCase {
	return &GetBookUseCase{cat: cat}
}

// Execute 执行查询
func (uc *GetBookUseCase) Execute(_ context.Context, isbn string) (*BookInfo, error) {
	b, err := uc.cat.FindByISBN(isbn).OrErr(catalog.ErrBookNotFound)
	if err != nil {
		return nil, err
	}
	info := toBookInfo(b)
	return &info, nil
}

// ListBooksUseCase 图书列表
// Keyword为空时返回全部，否则按书名模糊匹配（不区分大小写），保持录入顺序
type ListBooksUseCase struct {
	cat *catalog.Catalog
}

// NewListBooksUseCase 创建列表用例
func NewListBooksUseCase(cat *catalog.Catalog) *ListBooksUseCase {
	return &ListBooksUseCase{cat: cat}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Keyword string
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List  []BookInfo `json:"list"`
	Total int        `json:"total"`
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(_ context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	var books []catalog.Book
	if keyword := strings.TrimSpace(req.Keyword); keyword != "" {
		books = uc.cat.SearchByTitle(keyword)
	} else {
		books = uc.cat.ListAllBooks()
	}

	list := toBookInfos(books)
	return &ListBooksResponse{List: list, Total: len(list)}, nil
}
