package service

import (
	"strconv"
	"strings"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/vo"
)

// Page 分页计算结果，页码从 1 开始
type Page struct {
	Number   int
	NumPages int
	PerPage  int
	Total    int64
}

// Offset 当前页第一条记录的偏移量
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) HasPrevious() bool { return p.Number > 1 }
func (p Page) HasNext() bool     { return p.Number < p.NumPages }

// Paginate 计算第 rawPage 页的分页信息。
// - 非数字的页码视为第 1 页，"last" 表示最后一页
// - 小于 1 的页码取第 1 页，超过总页数的页码取最后一页
// - 没有任何记录时仍返回一页 (空页)
func Paginate(total int64, rawPage string, perPage int) Page {
	if perPage <= 0 {
		perPage = constant.DefaultPostsPerPage
	}
	numPages := 1
	if total > 0 {
		numPages = int((total + int64(perPage) - 1) / int64(perPage))
	}

	number := parsePageNumber(rawPage, numPages)
	number = max(1, min(number, numPages))

	return Page{Number: number, NumPages: numPages, PerPage: perPage, Total: total}
}

func parsePageNumber(raw string, numPages int) int {
	raw = strings.TrimSpace(raw)
	if raw == "last" {
		return numPages
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// ToVO 转换为响应结构
func (p Page) ToVO() vo.PageVO {
	out := vo.PageVO{
		Number:      p.Number,
		NumPages:    p.NumPages,
		PerPage:     p.PerPage,
		Total:       p.Total,
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
	}
	if out.HasPrevious {
		prev := p.Number - 1
		out.PreviousPage = &prev
	}
	if out.HasNext {
		next := p.Number + 1
		out.NextPage = &next
	}
	return out
}
