package types

// Tier 匹配质量档位
type Tier string

const (
	TierExcellent Tier = "Excellent" // 百分比 > 70
	TierGood      Tier = "Good"      // 40 < 百分比 <= 70
	TierLimited   Tier = "Limited"   // 百分比 <= 40
)

// SkillWeight 岗位要求的单项技能及其权重，权重取值(0,1]
type SkillWeight struct {
	Name   string  `yaml:"name" json:"name"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// JobRole 岗位定义：标识、展示名、JD文本与带权重的技能要求
// 技能顺序即岗位声明顺序，匹配/缺失列表按此顺序输出以保证结果稳定
type JobRole struct {
	ID             string        `yaml:"id" json:"id"`
	Title          string        `yaml:"title" json:"title"`
	Description    string        `yaml:"description" json:"description"`
	RequiredSkills []SkillWeight `yaml:"skills" json:"skills"`
}

// MatchResult 简历与岗位的匹配结果
type MatchResult struct {
	Percentage     float64  `json:"percentage"` // [0,100]
	Tier           Tier     `json:"tier"`
	Recommendation string   `json:"recommendation"`
	MatchingSkills []string `json:"matching_skills"` // 按岗位声明顺序
	MissingSkills  []string `json:"missing_skills"`  // 按岗位声明顺序
}

// BiasMatch 单个偏见类别的命中结果
type BiasMatch struct {
	Category string   `json:"category"`
	Words    []string `json:"words"` // 词库声明顺序，按规范大小写去重
}

// BiasReport 岗位描述的偏见扫描报告
// 零命中的类别不会出现在Matches中
type BiasReport struct {
	Detected bool        `json:"detected"`
	Matches  []BiasMatch `json:"matches"`
}

// RedactionKind 脱敏span的类别
type RedactionKind string

const (
	RedactionName        RedactionKind = "name"
	RedactionEmail       RedactionKind = "email"
	RedactionPhone       RedactionKind = "phone"
	RedactionAddress     RedactionKind = "address"
	RedactionDemographic RedactionKind = "demographic_term"
)

// RedactionSpan 原始文本坐标系下的一段被替换文本
// 同一文档内的span互不重叠；重叠候选按"更长者优先、等长取更靠左"消解
type RedactionSpan struct {
	Kind         RedactionKind `json:"kind"`
	OriginalText string        `json:"original_text"`
	Start        int           `json:"start"` // 原文偏移，字节
	End          int           `json:"end"`   // 开区间
}

// AnonymizedDocument 脱敏后的文档与按原文顺序排列的脱敏记录
type AnonymizedDocument struct {
	Text  string          `json:"text"`
	Spans []RedactionSpan `json:"spans"`
}

// AnalysisResult 单次请求的完整分析结果，请求级所有权，响应后即丢弃
type AnalysisResult struct {
	RequestID  string              `json:"request_id"`
	Match      *MatchResult        `json:"match"`
	Bias       *BiasReport         `json:"bias"`
	Anonymized *AnonymizedDocument `json:"anonymized"`
}

// AnalyzeRequest 引擎消费的请求体（由上传层或JSON接口产生）
type AnalyzeRequest struct {
	JobRole            string `json:"job_role"`
	ResumeText         string `json:"resume_text"`
	JobDescriptionText string `json:"job_description_text"` // 留空时回退到岗位自带的JD文本
}

// AnalyzeResponse UI层渲染的JSON契约
// 引擎级失败时只返回Error字段，客户端必须先检查error再读取其他字段
type AnalyzeResponse struct {
	Error            string      `json:"error,omitempty"`
	MatchPercentage  float64     `json:"match_percentage"`
	Recommendation   string      `json:"recommendation"`
	MatchingSkills   []string    `json:"matching_skills"`
	MissingSkills    []string    `json:"missing_skills"`
	BiasDetected     bool        `json:"bias_detected"`
	BiasDetails      []BiasMatch `json:"bias_details"`
	AnonymizedResume string      `json:"anonymized_resume"`
}

// JobRoleSummary 岗位列表接口的条目
type JobRoleSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// BiasScanRequest 独立偏见审计接口的请求体
type BiasScanRequest struct {
	JobDescriptionText string `json:"job_description_text"`
}

// BiasScanResponse 独立偏见审计接口的响应：报告加中性措辞改写建议
type BiasScanResponse struct {
	Error       string      `json:"error,omitempty"`
	Detected    bool        `json:"detected"`
	Matches     []BiasMatch `json:"matches"`
	Suggestions []string    `json:"suggestions"`
}

// BiasSampleResult 自评中单条标注样本的判定结果
type BiasSampleResult struct {
	Text      string `json:"text"`
	Predicted bool   `json:"predicted"`
	Actual    bool   `json:"actual"`
	Correct   bool   `json:"correct"`
}

// BiasEvaluation 偏见检测对标注样本集的自评结果
// 混淆矩阵以"样本含任意偏见命中"作为预测为偏见的判据
type BiasEvaluation struct {
	TruePositives  int `json:"true_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`

	Accuracy  float64 `json:"accuracy"`  // (TP+TN)/total
	Precision float64 `json:"precision"` // TP/(TP+FP)，分母为0时取0
	Recall    float64 `json:"recall"`    // TP/(TP+FN)，分母为0时取0
	F1        float64 `json:"f1_score"`  // 2PR/(P+R)，分母为0时取0

	Samples []BiasSampleResult `json:"samples"`
}
