package constants

import "time"

const (
	// 词库/岗位数据的内置版本号（文件加载时会被文件自身的版本覆盖）
	EmbeddedDataVersion = "builtin-1.0"

	// 引擎输入限制默认值
	DefaultMaxInputChars  = 200000           // 单次请求文本（简历+JD）的最大字符数
	DefaultAnalyzeTimeout = 10 * time.Second // 单次分析的硬超时

	// 匹配档位阈值（上边界取下档位：恰好70为Good，恰好40为Limited）
	TierExcellentThreshold = 70.0
	TierGoodThreshold      = 40.0
)

// 脱敏占位符，按检测类别区分
// 全大写方括号形式保证不会被任何检测规则再次命中（重跑幂等）
const (
	PlaceholderName        = "[CANDIDATE NAME]"
	PlaceholderEmail       = "[EMAIL]"
	PlaceholderPhone       = "[PHONE]"
	PlaceholderAddress     = "[ADDRESS]"
	PlaceholderDemographic = "[DEMOGRAPHIC]"
)

// 各档位的推荐话术模板（确定性输出，不做自由生成）
const (
	RecommendationExcellent = "Excellent match! This candidate meets most job requirements."
	RecommendationGood      = "Good match with some skill gaps that could be addressed through training."
	RecommendationLimited   = "Limited match. Consider if the candidate has transferable skills or potential for growth."
)
