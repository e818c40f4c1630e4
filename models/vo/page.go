package vo

// PageVO 分页信息，页码从 1 开始
type PageVO struct {
	Number       int   `json:"number"`
	NumPages     int   `json:"num_pages"`
	PerPage      int   `json:"per_page"`
	Total        int64 `json:"total"`
	HasPrevious  bool  `json:"has_previous"`
	HasNext      bool  `json:"has_next"`
	PreviousPage *int  `json:"previous_page,omitempty"`
	NextPage     *int  `json:"next_page,omitempty"`
}

// PostPageVO 帖子列表的一页
type PostPageVO struct {
	Posts []*PostResponse `json:"posts"`
	Page  PageVO          `json:"page"`
}

// CategoryPageVO 分类页: 分类信息 + 该分类下可见帖子的一页
type CategoryPageVO struct {
	Category *CategoryVO `json:"category"`
	PostPageVO
}
