package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	appadmin "github.com/xiebiao/library/internal/application/admin"
	appbook "github.com/xiebiao/library/internal/application/book"
	applending "github.com/xiebiao/library/internal/application/lending"
	"github.com/xiebiao/library/internal/application/library"
	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Deps 控制台依赖的用例
type Deps struct {
	Verifier    *appadmin.PasswordVerifier
	AddBook     *appbook.AddBookUseCase
	RemoveBook  *appbook.RemoveBookUseCase
	ListBooks   *appbook.ListBooksUseCase
	AddMember   *appmember.AddMemberUseCase
	ListMembers *appmember.ListMembersUseCase
	IssueBook   *applending.IssueBookUseCase
	ReturnBook  *applending.ReturnBookUseCase
	Save        *library.SaveCatalogUseCase
	Log         *slog.Logger
}

// Console 交互式菜单
// 设计说明:
// 1. 只依赖io.Reader/io.Writer，测试时用字符串驱动
// 2. 数字输入不合法时重新提示，不会退出
// 3. 输入结束（EOF）等同于Save & Exit
type Console struct {
	in  *bufio.Scanner
	out io.Writer
	Deps
}

// New 创建控制台
func New(in io.Reader, out io.Writer, deps Deps) *Console {
	return &Console{
		in:   bufio.NewScanner(in),
		out:  out,
		Deps: deps,
	}
}

// errInputClosed 输入流已结束
var errInputClosed = errors.New("input closed")

// Run 运行主菜单，直到选择Save & Exit或输入结束
func (c *Console) Run(ctx context.Context) error {
	for {
		c.println("\n--- Digital Library ---")
		c.println("1. Admin Login")
		c.println("2. User Menu")
		c.println("3. Save & Exit")

		choice, err := c.readInt("Choose: ")
		if err != nil {
			return c.saveAndExit(ctx)
		}

		switch choice {
		case 1:
			pwd, err := c.readLine("Enter admin password: ")
			if err != nil {
				return c.saveAndExit(ctx)
			}
			if err := c.Verifier.Verify(pwd); err != nil {
				c.println("Wrong password.")
				continue
			}
			if err := c.adminMenu(ctx); err != nil {
				return c.saveAndExit(ctx)
			}
		case 2:
			if err := c.userMenu(ctx); err != nil {
				return c.saveAndExit(ctx)
			}
		case 3:
			return c.saveAndExit(ctx)
		default:
			c.println("Invalid choice.")
		}
	}
}

func (c *Console) saveAndExit(ctx context.Context) error {
	if _, err := c.Save.Execute(ctx); err != nil {
		c.printf("Failed to save data: %v\n", err)
		c.println("Exiting.")
		return err
	}
	c.println("Data saved. Exiting.")
	return nil
}

func (c *Console) adminMenu(ctx context.Context) error {
	for {
		c.println("\n--- Admin Menu ---")
		c.println("1. Add Book")
		c.println("2. Remove Book")
		c.println("3. Add Member")
		c.println("4. View All Books")
		c.println("5. View All Members")
		c.println("6. Back")

		choice, err := c.readInt("Choose: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			fields, err := c.readLines("Title: ", "Author: ", "ISBN: ")
			if err != nil {
				return err
			}
			_, err = c.AddBook.Execute(ctx, appbook.AddBookRequest{Title: fields[0], Author: fields[1], ISBN: fields[2]})
			if err != nil {
				c.println(message(err))
				continue
			}
			c.println("Book added.")
		case 2:
			isbn, err := c.readLine("ISBN to remove: ")
			if err != nil {
				return err
			}
			if _, err := c.RemoveBook.Execute(ctx, isbn); err != nil {
				c.println(message(err))
				continue
			}
			c.println("Book removed (if existed).")
		case 3:
			fields, err := c.readLines("Member Id: ", "Name: ")
			if err != nil {
				return err
			}
			if _, err := c.AddMember.Execute(ctx, appmember.AddMemberRequest{MemberID: fields[0], Name: fields[1]}); err != nil {
				c.println(message(err))
				continue
			}
			c.println("Member added.")
		case 4:
			c.displayBooks(ctx)
		case 5:
			c.displayMembers(ctx)
		case 6:
			return nil
		default:
			c.println("Invalid choice.")
		}
	}
}

func (c *Console) userMenu(ctx context.Context) error {
	for {
		c.println("\n--- User Menu ---")
		c.println("1. Search by Title")
		c.println("2. Display All Books")
		c.println("3. Issue Book")
		c.println("4. Return Book")
		c.println("5. Back")

		choice, err := c.readInt("Choose: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			keyword, err := c.readLine("Keyword: ")
			if err != nil {
				return err
			}
			c.searchBooks(ctx, keyword)
		case 2:
			c.displayBooks(ctx)
		case 3:
			fields, err := c.readLines("Member Id: ", "ISBN: ")
			if err != nil {
				return err
			}
			_, err = c.IssueBook.Execute(ctx, applending.IssueBookRequest{MemberID: fields[0], ISBN: fields[1]})
			if err != nil {
				c.println(message(err))
				continue
			}
			c.println("Book issued successfully.")
		case 4:
			fields, err := c.readLines("Member Id: ", "ISBN: ")
			if err != nil {
				return err
			}
			days, err := c.readInt("Days kept: ")
			if err != nil {
				return err
			}
			resp, err := c.ReturnBook.Execute(ctx, applending.ReturnBookRequest{
				MemberID: fields[0],
				ISBN:     fields[1],
				DaysKept: days,
			})
			if err != nil {
				c.println(message(err))
				continue
			}
			c.printf("Book returned. Fine: %.1f\n", resp.Fine)
		case 5:
			return nil
		default:
			c.println("Invalid choice.")
		}
	}
}

func (c *Console) displayBooks(ctx context.Context) {
	resp, err := c.ListBooks.Execute(ctx, appbook.ListBooksRequest{})
	if err != nil {
		c.println(message(err))
		return
	}
	if resp.Total == 0 {
		c.println("No books in library.")
		return
	}
	for _, b := range resp.List {
		c.println(FormatBook(b))
	}
}

func (c *Console) searchBooks(ctx context.Context, keyword string) {
	resp, err := c.ListBooks.Execute(ctx, appbook.ListBooksRequest{Keyword: keyword})
	if err != nil {
		c.println(message(err))
		return
	}
	if resp.Total == 0 {
		c.println("No matching books.")
		return
	}
	for _, b := range resp.List {
		c.println(FormatBook(b))
	}
}

func (c *Console) displayMembers(ctx context.Context) {
	resp, err := c.ListMembers.Execute(ctx)
	if err != nil {
		c.println(message(err))
		return
	}
	if resp.Total == 0 {
		c.println("No members.")
		return
	}
	for _, m := range resp.List {
		c.printf("Id: %s Name: %s Borrowed: [%s]\n", m.MemberID, m.Name, strings.Join(m.BorrowedISBNs, ", "))
	}
}

// FormatBook 图书的单行展示
func FormatBook(b appbook.BookInfo) string {
	return fmt.Sprintf("Title: %s | Author: %s | ISBN: %s | Available: %t", b.Title, b.Author, b.ISBN, b.Available)
}

// message 业务错误对应的提示语
func message(err error) string {
	switch {
	case errors.Is(err, catalog.ErrMemberNotFound):
		return "Member not found."
	case errors.Is(err, catalog.ErrBookNotFound):
		return "Book not found."
	case errors.Is(err, catalog.ErrBookAlreadyIssued):
		return "Book is already issued."
	case errors.Is(err, catalog.ErrInvalidReturn):
		return "Invalid return operation."
	case errors.Is(err, catalog.ErrNotBorrowedByMember):
		return "This member did not borrow this ISBN."
	case apperrors.CodeOf(err) == apperrors.ErrCodeInvalidParams:
		return "Required field is empty."
	default:
		return "Error: " + apperrors.GetAppError(err).Message
	}
}

// =========================================
// 输入输出
// =========================================

func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			c.Log.Error("读取输入失败", "error", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) readLines(prompts ...string) ([]string, error) {
	out := make([]string, len(prompts))
	for i, p := range prompts {
		line, err := c.readLine(p)
		if err != nil {
			return nil, err
		}
		out[i] = line
	}
	return out, nil
}

// readInt 读取整数，不是数字时重新提示
func (c *Console) readInt(prompt string) (int, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr == nil {
			return n, nil
		}
		c.println("Please enter a number.")
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}
