package handler

import (
	"context"
	"io"

	"resume-screen-go/internal/engine"
	"resume-screen-go/internal/lexicon"
	"resume-screen-go/internal/logger"
	"resume-screen-go/internal/parser"
	"resume-screen-go/internal/tracing"
	"resume-screen-go/internal/types"
)

// AnalysisHandler 简历分析处理器，负责协调请求的完整分析流程
type AnalysisHandler struct {
	store        *lexicon.Store
	analyzer     *engine.Analyzer
	pdfExtractor *parser.PDFExtractor
}

// NewAnalysisHandler 创建一个新的分析处理器
func NewAnalysisHandler(
	store *lexicon.Store,
	analyzer *engine.Analyzer,
	pdfExtractor *parser.PDFExtractor,
) *AnalysisHandler {
	return &AnalysisHandler{
		store:        store,
		analyzer:     analyzer,
		pdfExtractor: pdfExtractor,
	}
}

// HandleAnalyze 处理纯文本分析请求
// 引擎级失败原样返回错误，由路由层按契约产出只含error字段的响应
func (h *AnalysisHandler) HandleAnalyze(ctx context.Context, req *types.AnalyzeRequest) (*types.AnalyzeResponse, error) {
	// 单个请求全程使用同一份词库快照，重载不影响进行中的请求
	set := h.store.Current()

	result, err := h.analyzer.Analyze(ctx, set, req)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("job_role", req.JobRole).
			Str("resume_preview", tracing.SafeResumeContent(req.ResumeText)).
			Str("jd_preview", tracing.SafeJDContent(req.JobDescriptionText)).
			Msg("简历分析失败")
		return nil, err
	}

	return buildResponse(result), nil
}

// HandleUploadAnalyze 处理PDF上传分析请求：先做边界侧文本提取，再走同一分析流程
// 文件名常带候选人姓名，日志中按敏感字段规则掩码
func (h *AnalysisHandler) HandleUploadAnalyze(ctx context.Context, fileReader io.Reader, filename, jobRole, jobDescription string) (*types.AnalyzeResponse, error) {
	safeFilename := tracing.SafeAttributeValue("upload.filename", filename, tracing.MaxHeaderLength)

	resumeText, metadata, err := h.pdfExtractor.ExtractTextFromReader(ctx, fileReader)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("filename", safeFilename).
			Msg("PDF文本提取失败")
		return nil, err
	}

	logger.Debug().
		Str("filename", safeFilename).
		Interface("metadata", metadata).
		Msg("PDF文本提取成功")

	return h.HandleAnalyze(ctx, &types.AnalyzeRequest{
		JobRole:            jobRole,
		ResumeText:         resumeText,
		JobDescriptionText: jobDescription,
	})
}

// HandleBiasScan 处理独立的JD偏见审计请求：偏见报告加中性措辞改写建议
func (h *AnalysisHandler) HandleBiasScan(ctx context.Context, jdText string) *types.BiasScanResponse {
	set := h.store.Current()
	return h.analyzer.ScanBias(ctx, set, jdText)
}

// HandleBiasEvaluation 用当前快照的标注样本对偏见词库跑混淆矩阵自评
func (h *AnalysisHandler) HandleBiasEvaluation(ctx context.Context) *types.BiasEvaluation {
	set := h.store.Current()
	return h.analyzer.EvaluateBias(ctx, set)
}

// HandleListJobRoles 返回可选岗位列表（ID与展示名）
func (h *AnalysisHandler) HandleListJobRoles() []types.JobRoleSummary {
	roles := h.store.Current().Taxonomy.Roles()
	out := make([]types.JobRoleSummary, 0, len(roles))
	for _, role := range roles {
		out = append(out, types.JobRoleSummary{ID: role.ID, Title: role.Title})
	}
	return out
}

// buildResponse 把内部分析结果映射为UI层的JSON契约
// 列表字段保证非nil，序列化为[]而不是null
func buildResponse(result *types.AnalysisResult) *types.AnalyzeResponse {
	resp := &types.AnalyzeResponse{
		MatchPercentage:  result.Match.Percentage,
		Recommendation:   result.Match.Recommendation,
		MatchingSkills:   result.Match.MatchingSkills,
		MissingSkills:    result.Match.MissingSkills,
		BiasDetected:     result.Bias.Detected,
		BiasDetails:      result.Bias.Matches,
		AnonymizedResume: result.Anonymized.Text,
	}
	if resp.MatchingSkills == nil {
		resp.MatchingSkills = []string{}
	}
	if resp.MissingSkills == nil {
		resp.MissingSkills = []string{}
	}
	if resp.BiasDetails == nil {
		resp.BiasDetails = []types.BiasMatch{}
	}
	return resp
}
