package utils

import (
	"math"
	"strconv"
)

// Page 一页切片的元数据
type Page struct {
	Number     int // 1-based，已钳制到合法范围
	TotalPages int
	PerPage    int
	Offset     int
	HasNext    bool
	HasPrev    bool
}

// Paginate 根据 page 查询参数、总条数和每页条数计算分页。
// 非数字或小于 1 时退到第一页，超出范围时退到最后一页；
// 空结果集返回一个空的第一页。
func Paginate(pageParam string, total int64, perPage int) Page {
	page := 1
	if n, err := strconv.Atoi(pageParam); err == nil && n > 0 {
		page = n
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return Page{
		Number:     page,
		TotalPages: totalPages,
		PerPage:    perPage,
		Offset:     (page - 1) * perPage,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
