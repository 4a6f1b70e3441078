package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
// 查询接口公开，上架/下架挂在管理员路由组下
type BookHandler struct {
	addBookUseCase    *appbook.AddBookUseCase
	removeBookUseCase *appbook.RemoveBookUseCase
	getBookUseCase    *appbook.GetBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	addBookUseCase *appbook.AddBookUseCase,
	removeBookUseCase *appbook.RemoveBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
) *BookHandler {
	return &BookHandler{
		addBookUseCase:    addBookUseCase,
		removeBookUseCase: removeBookUseCase,
		getBookUseCase:    getBookUseCase,
		listBooksUseCase:  listBooksUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  keyword为空返回全部图书，否则按书名模糊搜索（不区分大小写）
// @Tags         图书
// @Produce      json
// @Param        keyword query string false "书名关键词"
// @Success      200 {object} response.Response{data=response.ListData{list=[]dto.BookResponse}}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{Keyword: req.Keyword})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookResponse, len(result.List))
	for i, b := range result.List {
		list[i] = toBookResponse(b)
	}
	response.SuccessWithList(c, list, result.Total)
}

// GetBook 按ISBN查询图书
// @Summary      查询图书
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "40402 图书不存在"
// @Router       /api/v1/books/{isbn} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	result, err := h.getBookUseCase.Execute(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toBookResponse(*result))
}

// AddBook 图书上架
// @Summary      图书上架
// @Tags         管理员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "40900 参数错误 / 40100 未登录"
// @Router       /api/v1/admin/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.addBookUseCase.Execute(c.Request.Context(), appbook.AddBookRequest{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toBookResponse(*result))
}

// RemoveBook 图书下架
// @Summary      图书下架
// @Description  删除所有匹配ISBN的条目，ISBN不存在时removed=0
// @Tags         管理员
// @Produce      json
// @Security     BearerAuth
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.RemoveBookResponse}
// @Router       /api/v1/admin/books/{isbn} [delete]
func (h *BookHandler) RemoveBook(c *gin.Context) {
	result, err := h.removeBookUseCase.Execute(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.RemoveBookResponse{ISBN: result.ISBN, Removed: result.Removed})
}

func toBookResponse(b appbook.BookInfo) dto.BookResponse {
	return dto.BookResponse{
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Available: b.Available,
	}
}
