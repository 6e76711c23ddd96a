package ui

const (
	messageTitle                = "中文RSS搜索"
	messagePlaceholder          = "输入搜索关键词..."
	messageSubmit               = "搜索"
	messageLoading              = "加载中..."
	messageNoResults            = "没有找到相关结果"
	messageResultsHeader        = "搜索结果"
	messageSearchFailed         = "搜索失败"
	messageSearchFailedFallback = "搜索失败，请稍后再试"
	messageFooter               = "© 2023 中文RSS搜索应用"
)
