package book

import "github.com/xiebiao/library/internal/domain/catalog"

// BookInfo 图书信息DTO
type BookInfo struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Available bool   `json:"available"`
}

func toBookInfo(b catalog.Book) BookInfo {
	return BookInfo{
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		Available: b.Available,
	}
}

func toBookInfos(books []catalog.Book) []BookInfo {
	list := make([]BookInfo, len(books))
	for i, b := range books {
		list[i] = toBookInfo(b)
	}
	return list
}
